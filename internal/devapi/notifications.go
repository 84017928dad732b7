package devapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GET /notification — wrapped in {success, data, unreadCount}, scoped to
// the authenticated user.
func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	var notifs []Notification
	if err := s.db.Where("user_id = ?", u.ID).Order("created_at desc").Find(&notifs).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	var unread int64
	s.db.Model(&Notification{}).Where("user_id = ? AND is_read = ?", u.ID, false).Count(&unread)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"data":        notifs,
		"unreadCount": unread,
	})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	u := currentUser(r)

	res := s.db.Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, u.ID).
		Update("is_read", true)
	if res.Error != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if err := s.db.Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", u.ID, false).
		Update("is_read", true).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	u := currentUser(r)

	res := s.db.Where("id = ? AND user_id = ?", id, u.ID).Delete(&Notification{})
	if res.Error != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) deleteAllNotifications(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if err := s.db.Where("user_id = ?", u.ID).Delete(&Notification{}).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
