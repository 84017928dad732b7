package devapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listHealthCenters(w http.ResponseWriter, r *http.Request) {
	var centers []HealthCenter
	if err := s.db.Order("name").Find(&centers).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, centers)
}

func (s *Server) createHealthCenter(w http.ResponseWriter, r *http.Request) {
	var in HealthCenter
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	in.ID = 0
	if err := s.db.Create(&in).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateHealthCenter(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var center HealthCenter
	if err := s.db.First(&center, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "health center not found")
		return
	}

	var in struct {
		Name       *string `json:"name"`
		SectorID   *int    `json:"sector_id"`
		HeadUserID *int    `json:"headUserId"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name != nil {
		center.Name = *in.Name
	}
	if in.SectorID != nil {
		center.SectorID = *in.SectorID
	}
	if in.HeadUserID != nil {
		center.HeadUserID = *in.HeadUserID
	}

	if err := s.db.Save(&center).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, center)
}

func (s *Server) deleteHealthCenter(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var center HealthCenter
	if err := s.db.First(&center, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "health center not found")
		return
	}

	var borns int64
	s.db.Model(&Born{}).Where("health_center_id = ?", id).Count(&borns)
	if borns > 0 {
		writeError(w, http.StatusConflict, "health center has born records attached")
		return
	}

	if err := s.db.Delete(&HealthCenter{}, id).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "health center deleted"})
}
