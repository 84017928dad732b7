package web

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cedrotech1/digitalretransfer/internal/config"
	"github.com/cedrotech1/digitalretransfer/internal/handlers"
)

func Router(cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	env := &handlers.Env{
		Tmpl:    mustParseTemplates("templates"),
		APIBase: cfg.APIBaseURL,
	}

	r.Get("/healthz", handlers.Health)

	// Public pages; an authenticated session bounces back to the dashboard.
	r.Group(func(pub chi.Router) {
		pub.Use(handlers.RedirectIfAuthed)
		pub.Get("/login", env.LoginForm())
		pub.Post("/login", env.LoginSubmit())
		pub.Get("/forgotten-password", env.ForgotPasswordForm())
		pub.Post("/forgotten-password/request", env.ForgotPasswordRequest())
		pub.Post("/forgotten-password/verify", env.ForgotPasswordVerify())
		pub.Post("/forgotten-password/reset", env.ForgotPasswordReset())
	})

	// Everything else requires the four session cookies.
	r.Group(func(auth chi.Router) {
		auth.Use(handlers.RequireSession)

		auth.Get("/", env.Dashboard())
		auth.Post("/logout", handlers.Logout)

		// Born records and their sub-entities
		auth.Get("/borns", env.BornsList())
		auth.Get("/borns/new", env.BornNewForm())
		auth.Post("/borns", env.BornCreate())
		auth.Get("/borns/{id}", env.BornShow())
		auth.Post("/borns/{id}", env.BornUpdate())
		auth.Post("/borns/{id}/delete", env.BornDelete())
		auth.Post("/borns/{id}/status", env.BornSetStatus())
		auth.Post("/borns/{id}/babies", env.BabyAdd())
		auth.Post("/borns/{id}/babies/{babyID}", env.BabyUpdate())
		auth.Post("/borns/{id}/babies/{babyID}/delete", env.BabyDelete())
		auth.Post("/borns/{id}/appointments", env.AppointmentAdd())

		// Appointments & feedback
		auth.Get("/appointments", env.AppointmentsList())
		auth.Post("/appointments/{id}/cancel", env.AppointmentCancel())
		auth.Post("/appointments/{id}/feedback", env.FeedbackSubmit())

		// Health centers
		auth.Get("/healthcenter", env.HealthCentersList())
		auth.Post("/healthcenter", env.HealthCenterCreate())
		auth.Post("/healthcenter/{id}", env.HealthCenterUpdate())
		auth.Post("/healthcenter/{id}/delete", env.HealthCenterDelete())

		// Users
		auth.Get("/users", env.UsersList())
		auth.Post("/users", env.UserAdd())
		auth.Post("/users/{id}", env.UserUpdate())
		auth.Post("/users/{id}/activate", env.UserSetActive(true))
		auth.Post("/users/{id}/deactivate", env.UserSetActive(false))
		auth.Post("/users/{id}/delete", env.UserDelete())

		// Notifications
		auth.Get("/notifications", env.NotificationsList())
		auth.Post("/notifications/{id}/read", env.NotificationRead())
		auth.Post("/notifications/read-all", env.NotificationsReadAll())
		auth.Post("/notifications/{id}/delete", env.NotificationDelete())
		auth.Post("/notifications/delete-all", env.NotificationsDeleteAll())

		// Report
		auth.Get("/report", env.Report())
		auth.Get("/report/export", env.ReportExport())

		// Account (the sidebar forms)
		auth.Get("/account", env.Account())
		auth.Post("/account", env.AccountUpdate())
		auth.Post("/account/password", env.AccountChangePassword())
	})

	r.NotFound(env.NotFound())

	return r
}

func mustParseTemplates(baseDir string) *template.Template {
	funcs := template.FuncMap{
		"year": func() string { return time.Now().Format("2006") },
		"fmtDate": func(s string) string {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return s
			}
			return t.Format("02 Jan 2006")
		},
		"fmtTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Mon, 02 Jan 2006 15:04")
		},
		"roleLabel": func(role string) string {
			if role == "head_of_community_workers_at_health_center" {
				return "Head of Community Workers"
			}
			words := strings.Split(role, "_")
			for i, w := range words {
				if w != "" {
					words[i] = strings.ToUpper(w[:1]) + w[1:]
				}
			}
			return strings.Join(words, " ")
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}

	p := template.New("").Funcs(funcs)
	p = template.Must(p.ParseGlob(filepath.Join(baseDir, "layouts", "*.tmpl")))
	p = template.Must(p.ParseGlob(filepath.Join(baseDir, "partials", "*.tmpl")))
	return p
}
