package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cedrotech1/digitalretransfer/internal/listview"
	"github.com/cedrotech1/digitalretransfer/internal/models"
	"github.com/cedrotech1/digitalretransfer/internal/session"
)

// GET /notifications
func (e *Env) NotificationsList() http.HandlerFunc {
	view := e.page("notifications.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		q := r.URL.Query()

		inbox, err := e.client(r).ListNotifications(r.Context())
		flash := MakeFlash(r)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			flash = &Flash{Kind: "error", Text: err.Error()}
		}

		term := strings.TrimSpace(q.Get("q"))
		rows := listview.Search(inbox.Notifications, term, func(n models.Notification) []string {
			return []string{n.Title, n.Message}
		})

		// Newest first unless the oldest toggle is on.
		oldest := q.Get("order") == "oldest"
		rows = listview.Sort(rows, func(a, b models.Notification) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}, !oldest)

		pageRows, pager := listview.Paginate(rows, atoi(q.Get("page")), listview.DefaultPerPage)
		pager = pager.WithQuery(q)

		_ = view.ExecuteTemplate(w, "pages/notifications", map[string]any{
			"Title":         "Notifications",
			"Session":       s,
			"Flash":         flash,
			"Notifications": pageRows,
			"Pager":         pager,
			"UnreadCount":   inbox.UnreadCount,
			"Q":             term,
			"Oldest":        oldest,
		})
	}
}

// POST /notifications/{id}/read — opening a notification marks it read.
func (e *Env) NotificationRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := atoi(chi.URLParam(r, "id"))
		if err := e.client(r).MarkNotificationRead(r.Context(), id); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/notifications", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/notifications", http.StatusSeeOther)
	}
}

// POST /notifications/read-all
func (e *Env) NotificationsReadAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := e.client(r).MarkAllNotificationsRead(r.Context()); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/notifications", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/notifications?ok=all_read", http.StatusSeeOther)
	}
}

// POST /notifications/{id}/delete
func (e *Env) NotificationDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := atoi(chi.URLParam(r, "id"))
		if err := e.client(r).DeleteNotification(r.Context(), id); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/notifications", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/notifications?ok=notif_deleted", http.StatusSeeOther)
	}
}

// POST /notifications/delete-all
func (e *Env) NotificationsDeleteAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := e.client(r).DeleteAllNotifications(r.Context()); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/notifications", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/notifications?ok=all_notif_deleted", http.StatusSeeOther)
	}
}
