package devapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	var appts []Appointment
	if err := s.db.Order("date desc, time desc").Find(&appts).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var in Appointment
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.BornID == 0 || in.Date == "" {
		writeError(w, http.StatusBadRequest, "bornId and date are required")
		return
	}
	var born Born
	if err := s.db.First(&born, in.BornID).Error; err != nil {
		writeError(w, http.StatusNotFound, "born record not found")
		return
	}
	in.ID = 0
	if in.Status == "" {
		in.Status = "Scheduled"
	}
	if err := s.db.Create(&in).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var appt Appointment
	if err := s.db.First(&appt, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	var in struct {
		Date    *string `json:"date"`
		Time    *string `json:"time"`
		Purpose *string `json:"purpose"`
		Status  *string `json:"status"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Date != nil {
		appt.Date = *in.Date
	}
	if in.Time != nil {
		appt.Time = *in.Time
	}
	if in.Purpose != nil {
		appt.Purpose = *in.Purpose
	}
	if in.Status != nil {
		appt.Status = *in.Status
	}

	if err := s.db.Save(&appt).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// createFeedback records a visit outcome and marks the appointment
// completed in the same transaction.
func (s *Server) createFeedback(w http.ResponseWriter, r *http.Request) {
	var in AppointmentFeedback
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.AppointmentID == 0 {
		writeError(w, http.StatusBadRequest, "appointmentId is required")
		return
	}
	var appt Appointment
	if err := s.db.First(&appt, in.AppointmentID).Error; err != nil {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	in.ID = 0
	if err := s.db.Create(&in).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	s.db.Model(&Appointment{}).Where("id = ?", in.AppointmentID).
		Update("status", "Completed")

	writeJSON(w, http.StatusCreated, in)
}

// GET /appointmentFeedbacks/{id} — the id is the appointment's, and the
// production API 404s instead of returning an empty list.
func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var fbs []AppointmentFeedback
	if err := s.db.Where("appointment_id = ?", id).Order("created_at").Find(&fbs).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	if len(fbs) == 0 {
		writeError(w, http.StatusNotFound, "no feedback found for this appointment")
		return
	}
	writeJSON(w, http.StatusOK, fbs)
}
