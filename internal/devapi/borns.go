package devapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// GET /borns — the production endpoint answers with a bare array, babies
// and appointments preloaded.
func (s *Server) listBorns(w http.ResponseWriter, r *http.Request) {
	var borns []Born
	if err := s.db.Preload("Babies").Preload("Appointments").
		Order("created_at desc").Find(&borns).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, borns)
}

func (s *Server) getBorn(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var born Born
	if err := s.db.Preload("Babies").Preload("Appointments").First(&born, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "born record not found")
		return
	}
	writeJSON(w, http.StatusOK, born)
}

// createBornIn carries babies inline the way the creation form sends them.
type createBornIn struct {
	Born
	Babies []babyIn `json:"babies"`
}

type babyIn struct {
	Name            string          `json:"name"`
	Gender          string          `json:"gender"`
	BirthWeight     float64         `json:"birthWeight"`
	DischargeWeight float64         `json:"dischargebirthWeight"`
	Medications     json.RawMessage `json:"medications"`
}

func (s *Server) createBorn(w http.ResponseWriter, r *http.Request) {
	var in createBornIn
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.MotherName == "" || in.MotherPhone == "" {
		writeError(w, http.StatusBadRequest, "mother name and phone are required")
		return
	}

	born := in.Born
	born.ID = 0
	if born.Status == "" {
		born.Status = "pending"
	}
	born.Babies = nil
	born.Appointments = nil
	born.BabyCount = len(in.Babies)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&born).Error; err != nil {
			return err
		}
		for _, b := range in.Babies {
			baby := Baby{
				BornID:          born.ID,
				Name:            b.Name,
				Gender:          b.Gender,
				BirthWeight:     b.BirthWeight,
				DischargeWeight: b.DischargeWeight,
				Medications:     []byte(b.Medications),
			}
			if len(b.Medications) == 0 {
				baby.Medications = []byte("[]")
			}
			if err := tx.Create(&baby).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}

	s.notifySupervisors("New born record", "A new born record for "+born.MotherName+" is pending review.")
	writeJSON(w, http.StatusCreated, born)
}

// bornPatch covers both the edit form and the status-transition PUT, which
// share this endpoint in production. Pointers distinguish "absent" from
// zero values.
type bornPatch struct {
	DateOfBirth      *string `json:"dateOfBirth"`
	DeliveryType     *string `json:"deliveryType"`
	MotherName       *string `json:"motherName"`
	MotherPhone      *string `json:"motherPhone"`
	MotherNationalID *string `json:"motherNationalId"`
	FatherName       *string `json:"fatherName"`
	FatherPhone      *string `json:"fatherPhone"`
	FatherNationalID *string `json:"fatherNationalId"`
	BabyCount        *int    `json:"babyCount"`
	Status           *string `json:"status"`
	RejectReason     *string `json:"rejectReason"`
	Leave            *string `json:"leave"`
	DischargeDate    *string `json:"dischargeDate"`
	HomeVisitDate    *string `json:"homeVisitDate"`
	HomeVisitComment *string `json:"homeVisitComment"`
	HealthCenterID   *int    `json:"healthCenterId"`
	SectorID         *int    `json:"sector_id"`
	CellID           *int    `json:"cell_id"`
	VillageID        *int    `json:"village_id"`
}

func (s *Server) updateBorn(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var born Born
	if err := s.db.First(&born, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "born record not found")
		return
	}

	var in bornPatch
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if in.Status != nil && *in.Status == "rejected" {
		reason := born.RejectReason
		if in.RejectReason != nil {
			reason = *in.RejectReason
		}
		if reason == "" {
			writeError(w, http.StatusBadRequest, "rejectReason is required when rejecting")
			return
		}
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&born.DateOfBirth, in.DateOfBirth)
	apply(&born.DeliveryType, in.DeliveryType)
	apply(&born.MotherName, in.MotherName)
	apply(&born.MotherPhone, in.MotherPhone)
	apply(&born.MotherNationalID, in.MotherNationalID)
	apply(&born.FatherName, in.FatherName)
	apply(&born.FatherPhone, in.FatherPhone)
	apply(&born.FatherNationalID, in.FatherNationalID)
	apply(&born.Status, in.Status)
	apply(&born.RejectReason, in.RejectReason)
	apply(&born.Leave, in.Leave)
	apply(&born.DischargeDate, in.DischargeDate)
	apply(&born.HomeVisitDate, in.HomeVisitDate)
	apply(&born.HomeVisitComment, in.HomeVisitComment)
	if in.BabyCount != nil {
		born.BabyCount = *in.BabyCount
	}
	if in.HealthCenterID != nil {
		born.HealthCenterID = *in.HealthCenterID
	}
	if in.SectorID != nil {
		born.SectorID = *in.SectorID
	}
	if in.CellID != nil {
		born.CellID = *in.CellID
	}
	if in.VillageID != nil {
		born.VillageID = *in.VillageID
	}
	// Approval clears any previous rejection reason.
	if in.Status != nil && *in.Status == "approved" && in.RejectReason == nil {
		born.RejectReason = ""
	}

	if err := s.db.Save(&born).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, born)
}

// deleteBorn cascades to the record's babies, appointments and feedback.
func (s *Server) deleteBorn(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var born Born
	if err := s.db.First(&born, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "born record not found")
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var apptIDs []int
		if err := tx.Model(&Appointment{}).Where("born_id = ?", id).
			Pluck("id", &apptIDs).Error; err != nil {
			return err
		}
		if len(apptIDs) > 0 {
			if err := tx.Where("appointment_id IN ?", apptIDs).
				Delete(&AppointmentFeedback{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("born_id = ?", id).Delete(&Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("born_id = ?", id).Delete(&Baby{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Born{}, id).Error
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "born record deleted"})
}

func (s *Server) createBaby(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BornID int `json:"bornId"`
		babyIn
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "baby name is required")
		return
	}
	var born Born
	if err := s.db.First(&born, in.BornID).Error; err != nil {
		writeError(w, http.StatusNotFound, "born record not found")
		return
	}

	baby := Baby{
		BornID:          in.BornID,
		Name:            in.Name,
		Gender:          in.Gender,
		BirthWeight:     in.BirthWeight,
		DischargeWeight: in.DischargeWeight,
		Medications:     []byte(in.Medications),
	}
	if len(in.Medications) == 0 {
		baby.Medications = []byte("[]")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&baby).Error; err != nil {
			return err
		}
		return tx.Model(&Born{}).Where("id = ?", in.BornID).
			UpdateColumn("baby_count", gorm.Expr("baby_count + 1")).Error
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusCreated, baby)
}

func (s *Server) updateBaby(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var baby Baby
	if err := s.db.First(&baby, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "baby not found")
		return
	}

	var in babyIn
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name != "" {
		baby.Name = in.Name
	}
	if in.Gender != "" {
		baby.Gender = in.Gender
	}
	if in.BirthWeight > 0 {
		baby.BirthWeight = in.BirthWeight
	}
	if in.DischargeWeight > 0 {
		baby.DischargeWeight = in.DischargeWeight
	}
	if len(in.Medications) > 0 {
		baby.Medications = []byte(in.Medications)
	}

	if err := s.db.Save(&baby).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, baby)
}

func (s *Server) deleteBaby(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var baby Baby
	if err := s.db.First(&baby, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "baby not found")
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Baby{}, id).Error; err != nil {
			return err
		}
		return tx.Model(&Born{}).Where("id = ? AND baby_count > 0", baby.BornID).
			UpdateColumn("baby_count", gorm.Expr("baby_count - 1")).Error
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "baby deleted"})
}

// notifySupervisors fans a notification out to every reviewer account.
func (s *Server) notifySupervisors(title, message string) {
	var ids []int
	if err := s.db.Model(&User{}).
		Where("role = ?", "head_of_community_workers_at_health_center").
		Pluck("id", &ids).Error; err != nil {
		return
	}
	for _, id := range ids {
		s.db.Create(&Notification{UserID: id, Title: title, Message: message})
	}
}
