package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/cedrotech1/digitalretransfer/internal/listview"
	"github.com/cedrotech1/digitalretransfer/internal/models"
	"github.com/cedrotech1/digitalretransfer/internal/session"
	"github.com/cedrotech1/digitalretransfer/internal/validate"
)

var appointmentSchema = validate.Schema{Fields: []validate.Field{
	{Name: "date", Label: "Date", Required: true},
	{Name: "time", Label: "Time", Required: true},
	{Name: "purpose", Label: "Purpose", Required: true},
	{Name: "babyId", Label: "Baby", Required: true},
}}

var feedbackSchema = validate.Schema{Fields: []validate.Field{
	{Name: "weight", Label: "Weight", Required: true},
	{Name: "status", Label: "Status", Required: true},
	{Name: "note", Label: "Note"},
}}

// GET /appointments
func (e *Env) AppointmentsList() http.HandlerFunc {
	view := e.page("appointments.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		q := r.URL.Query()

		appts, err := e.client(r).ListAppointments(r.Context())
		flash := MakeFlash(r)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			flash = &Flash{Kind: "error", Text: err.Error()}
		}

		term := strings.TrimSpace(q.Get("q"))
		rows := listview.Search(appts, term, func(a models.Appointment) []string {
			return []string{a.Purpose, a.Date}
		})

		status := q.Get("status")
		if status != "" && status != "all" {
			rows = listview.Where(rows, func(a models.Appointment) bool { return a.Status == status })
		}

		rows = listview.Sort(rows, func(a, b models.Appointment) bool {
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.Time < b.Time
		}, q.Get("dir") == "desc")

		pageRows, pager := listview.Paginate(rows, atoi(q.Get("page")), listview.DefaultPerPage)
		pager = pager.WithQuery(q)

		_ = view.ExecuteTemplate(w, "pages/appointments", map[string]any{
			"Title":    "Appointments",
			"Session":  s,
			"Flash":    flash,
			"Rows":     pageRows,
			"Pager":    pager,
			"Q":        term,
			"Status":   status,
			"Dir":      q.Get("dir"),
			"Statuses": []string{models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled},
		})
	}
}

// POST /borns/{id}/appointments — scheduled from the born detail view.
func (e *Env) AppointmentAdd() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		bornID := atoi(chi.URLParam(r, "id"))
		back := "/borns/" + strconv.Itoa(bornID)

		if !s.CanCreateBorn() {
			http.Redirect(w, r, back+"?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()

		if errs := appointmentSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashText(back, errs[0]), http.StatusSeeOther)
			return
		}

		appt := models.Appointment{
			BornID:  bornID,
			BabyID:  atoi(r.FormValue("babyId")),
			Date:    r.FormValue("date"),
			Time:    r.FormValue("time"),
			Purpose: strings.TrimSpace(r.FormValue("purpose")),
			Status:  models.AppointmentScheduled,
		}
		if _, err := e.client(r).CreateAppointment(r.Context(), appt); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr(back, err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, back+"?ok=appt_added", http.StatusSeeOther)
	}
}

// POST /appointments/{id}/cancel — only a Scheduled appointment may be
// cancelled. The full record travels back on the PUT so the upstream keeps
// its other fields.
func (e *Env) AppointmentCancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanCreateBorn() {
			http.Redirect(w, r, "/appointments?error=not_allowed", http.StatusSeeOther)
			return
		}
		id := atoi(chi.URLParam(r, "id"))

		client := e.client(r)
		appts, err := client.ListAppointments(r.Context())
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/appointments", err), http.StatusSeeOther)
			return
		}
		appt, found := lo.Find(appts, func(a models.Appointment) bool { return a.ID == id })
		if !found {
			http.NotFound(w, r)
			return
		}
		if appt.Status != models.AppointmentScheduled {
			http.Redirect(w, r, "/appointments?error=bad_transition", http.StatusSeeOther)
			return
		}

		appt.Status = models.AppointmentCancelled
		if err := client.UpdateAppointment(r.Context(), appt); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/appointments", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/appointments?ok=appt_cancelled", http.StatusSeeOther)
	}
}

// POST /appointments/{id}/feedback — submitting feedback completes the
// appointment upstream.
func (e *Env) FeedbackSubmit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apptID := atoi(chi.URLParam(r, "id"))
		_ = r.ParseForm()

		back := r.FormValue("return")
		if back == "" {
			back = "/appointments"
		}

		if errs := feedbackSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashErr(back, errFromText(errs[0])), http.StatusSeeOther)
			return
		}

		fb := models.AppointmentFeedback{
			AppointmentID: apptID,
			BabyID:        atoi(r.FormValue("babyId")),
			Weight:        atof(r.FormValue("weight")),
			Status:        r.FormValue("status"),
			Note:          strings.TrimSpace(r.FormValue("note")),
		}
		if err := e.client(r).CreateFeedback(r.Context(), fb); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr(back, err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, withOK(back, "feedback_saved"), http.StatusSeeOther)
	}
}

type textError string

func (t textError) Error() string { return string(t) }

func errFromText(s string) error { return textError(s) }

func withOK(base, code string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "ok=" + code
}
