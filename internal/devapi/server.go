package devapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Server is the local stand-in for the hosted Digital Retransfer backend.
// It reproduces the production endpoints, envelopes and all, on top of
// sqlite so the dashboard can be developed and integration-tested offline.
type Server struct {
	db        *gorm.DB
	jwtSecret string
}

func NewServer(db *gorm.DB, jwtSecret string) *Server {
	return &Server{db: db, jwtSecret: jwtSecret}
}

// Handler builds the full /api/v1 router. corsOrigin may be empty to allow
// same-origin use only.
func (s *Server) Handler(corsOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Post("/auth/login", s.login)
		v1.Post("/users/check", s.requestResetCode)
		v1.Post("/users/code/{email}", s.verifyResetCode)
		v1.Put("/users/resetPassword/{email}", s.resetPassword)

		v1.Group(func(pr chi.Router) {
			pr.Use(s.requireAuth)

			pr.Get("/borns", s.listBorns)
			pr.Post("/borns", s.createBorn)
			pr.Get("/borns/report/generated", s.bornReport)
			pr.Get("/borns/{id}", s.getBorn)
			pr.Put("/borns/{id}", s.updateBorn)
			pr.Delete("/borns/{id}", s.deleteBorn)

			pr.Post("/babies", s.createBaby)
			pr.Put("/babies/{id}", s.updateBaby)
			pr.Delete("/babies/{id}", s.deleteBaby)

			pr.Get("/appointments", s.listAppointments)
			pr.Post("/appointments", s.createAppointment)
			pr.Put("/appointments/{id}", s.updateAppointment)

			pr.Post("/appointmentFeedbacks", s.createFeedback)
			pr.Get("/appointmentFeedbacks/{id}", s.listFeedback)

			pr.Get("/healthcenters", s.listHealthCenters)
			pr.Post("/healthcenters", s.createHealthCenter)
			pr.Put("/healthcenters/{id}", s.updateHealthCenter)
			pr.Delete("/healthcenters/{id}", s.deleteHealthCenter)

			pr.Get("/users", s.listUsers)
			pr.Get("/users/statistics", s.statistics)
			pr.Get("/users/{id}", s.getUser)
			pr.Post("/users/addUser", s.addUser)
			pr.Put("/users/update/{id}", s.updateUser)
			pr.Put("/users/activate/{id}", s.setUserStatus("active"))
			pr.Put("/users/deactivate/{id}", s.setUserStatus("inactive"))
			pr.Put("/users/changePassword/{id}", s.changePassword)
			pr.Delete("/users/delete/{id}", s.deleteUser)

			pr.Get("/notification", s.listNotifications)
			pr.Put("/notification/read/{id}", s.markNotificationRead)
			pr.Put("/notification/read-all", s.markAllNotificationsRead)
			pr.Delete("/notification/delete/{id}", s.deleteNotification)
			pr.Delete("/notification/delete-all", s.deleteAllNotifications)

			pr.Get("/address/", s.addressTree)
		})
	})

	if corsOrigin == "" {
		return r
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
