package devapi

import "net/http"

// GET /address/ — the whole province→village tree in one {data: [...]}
// payload.
func (s *Server) addressTree(w http.ResponseWriter, r *http.Request) {
	var provinces []Province
	err := s.db.
		Preload("Districts").
		Preload("Districts.Sectors").
		Preload("Districts.Sectors.Cells").
		Preload("Districts.Sectors.Cells.Villages").
		Order("name").Find(&provinces).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": provinces})
}
