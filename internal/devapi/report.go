package devapi

import (
	"encoding/json"
	"net/http"
)

// GET /borns/report/generated?fromDate=&toDate= — denormalized rows plus a
// totals block, wrapped as {bornRecords, summary}.
func (s *Server) bornReport(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("fromDate")
	to := r.URL.Query().Get("toDate")

	q := s.db.Preload("Babies").Preload("Appointments")
	if from != "" && to != "" {
		q = q.Where("date_of_birth BETWEEN ? AND ?", from, to)
	}
	var borns []Born
	if err := q.Order("date_of_birth").Find(&borns).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}

	centers := map[int]string{}
	var centerRows []HealthCenter
	if err := s.db.Find(&centerRows).Error; err == nil {
		for _, c := range centerRows {
			centers[c.ID] = c.Name
		}
	}

	records := make([]map[string]any, 0, len(borns))
	totalBabies, totalAppts, discharged := 0, 0, 0
	for _, b := range borns {
		totalBabies += len(b.Babies)
		totalAppts += len(b.Appointments)
		if b.DischargeDate != "" {
			discharged++
		}

		babies := make([]map[string]any, 0, len(b.Babies))
		for _, baby := range b.Babies {
			babies = append(babies, map[string]any{
				"babyName":    baby.Name,
				"gender":      baby.Gender,
				"birthWeight": baby.BirthWeight,
				"medications": medicationNames(baby.Medications),
			})
		}

		appts := make([]map[string]any, 0, len(b.Appointments))
		for _, a := range b.Appointments {
			var fbs []AppointmentFeedback
			s.db.Where("appointment_id = ?", a.ID).Find(&fbs)
			appts = append(appts, map[string]any{
				"appointmentDate": a.Date,
				"feedback":        fbs,
			})
		}

		records = append(records, map[string]any{
			"dateOfBirth":  b.DateOfBirth,
			"healthCenter": centers[b.HealthCenterID],
			"motherName":   b.MotherName,
			"deliveryType": b.DeliveryType,
			"leave":        b.Leave,
			"babies":       babies,
			"appointments": appts,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bornRecords": records,
		"summary": map[string]int{
			"totalRecords":      len(records),
			"totalBabies":       totalBabies,
			"totalAppointments": totalAppts,
			"discharged":        discharged,
		},
	})
}

// medicationNames flattens a baby's medication JSON to the name strings the
// report exposes.
func medicationNames(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var meds []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &meds); err != nil {
		return []string{}
	}
	names := make([]string, 0, len(meds))
	for _, m := range meds {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names
}
