package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cedrotech1/digitalretransfer/internal/listview"
	"github.com/cedrotech1/digitalretransfer/internal/models"
	"github.com/cedrotech1/digitalretransfer/internal/session"
	"github.com/cedrotech1/digitalretransfer/internal/validate"
)

var bornSchema = validate.Schema{Fields: []validate.Field{
	{Name: "motherName", Label: "Mother name", Required: true},
	{Name: "motherPhone", Label: "Mother phone", Required: true},
	{Name: "dateOfBirth", Label: "Date of birth", Required: true},
	{Name: "healthCenterId", Label: "Health center", Required: true},
	{Name: "fatherName", Label: "Father name"},
	{Name: "fatherPhone", Label: "Father phone"},
}}

// bornSortKeys maps the ?sort= values to comparison functions.
var bornSortKeys = map[string]func(a, b models.Born) bool{
	"motherName":  func(a, b models.Born) bool { return a.MotherName < b.MotherName },
	"dateOfBirth": func(a, b models.Born) bool { return a.DateOfBirth < b.DateOfBirth },
	"babyCount":   func(a, b models.Born) bool { return a.BabyCount < b.BabyCount },
	"status":      func(a, b models.Born) bool { return a.Status < b.Status },
}

// GET /borns
func (e *Env) BornsList() http.HandlerFunc {
	view := e.page("borns.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		q := r.URL.Query()

		borns, err := e.client(r).ListBorns(r.Context())
		flash := MakeFlash(r)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			flash = &Flash{Kind: "error", Text: err.Error()}
		}

		term := strings.TrimSpace(q.Get("q"))
		rows := listview.Search(borns, term, func(b models.Born) []string {
			fields := []string{b.MotherName, b.MotherPhone}
			for _, baby := range b.Babies {
				fields = append(fields, baby.Name)
			}
			return fields
		})

		status := q.Get("status")
		if status != "" && status != "all" {
			rows = listview.Where(rows, func(b models.Born) bool { return b.Status == status })
		}
		leave := q.Get("leave")
		if leave != "" && leave != "all" {
			rows = listview.Where(rows, func(b models.Born) bool { return b.Leave == leave })
		}

		sortKey := q.Get("sort")
		if less, ok := bornSortKeys[sortKey]; ok {
			rows = listview.Sort(rows, less, q.Get("dir") == "desc")
		}

		pageRows, pager := listview.Paginate(rows, atoi(q.Get("page")), listview.DefaultPerPage)
		pager = pager.WithQuery(q)

		_ = view.ExecuteTemplate(w, "pages/borns", map[string]any{
			"Title":   "Born Records",
			"Session": s,
			"Flash":   flash,
			"Borns":   pageRows,
			"Pager":   pager,
			"Q":       term,
			"Status":  status,
			"Leave":   leave,
			"Sort":    sortKey,
			"Dir":     q.Get("dir"),
		})
	}
}

// GET /borns/new
func (e *Env) BornNewForm() http.HandlerFunc {
	view := e.page("born_new.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanCreateBorn() {
			http.Redirect(w, r, "/borns?error=not_allowed", http.StatusSeeOther)
			return
		}

		client := e.client(r)
		sectors, err := client.Sectors(r.Context())
		if err != nil && unauthorized(w, r, err) {
			return
		}
		centers, err := client.ListHealthCenters(r.Context())
		if err != nil && unauthorized(w, r, err) {
			return
		}

		_ = view.ExecuteTemplate(w, "pages/born_new", map[string]any{
			"Title":         "New Born Record",
			"Session":       s,
			"Flash":         MakeFlash(r),
			"Sectors":       sectors,
			"HealthCenters": centers,
		})
	}
}

// POST /borns
func (e *Env) BornCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanCreateBorn() {
			http.Redirect(w, r, "/borns?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()

		if errs := bornSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashText("/borns/new", errs[0]), http.StatusSeeOther)
			return
		}

		born := bornFromForm(r)
		born.Status = models.StatusPending
		born.Babies = babiesFromForm(r)
		if len(born.Babies) == 0 {
			http.Redirect(w, r, flashText("/borns/new", "At least one baby is required"), http.StatusSeeOther)
			return
		}
		born.BabyCount = len(born.Babies)

		if err := e.client(r).CreateBorn(r.Context(), born); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/borns/new", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/borns?ok=born_created", http.StatusSeeOther)
	}
}

// GET /borns/{id}
func (e *Env) BornShow() http.HandlerFunc {
	view := e.page("born_show.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		id := atoi(chi.URLParam(r, "id"))

		client := e.client(r)
		born, err := client.GetBorn(r.Context(), id)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.NotFound(w, r)
			return
		}

		// Feedback is fetched lazily per appointment; a missing entry just
		// means none was recorded yet.
		feedback := map[int][]models.AppointmentFeedback{}
		for _, appt := range born.Appointments {
			fb, err := client.ListFeedback(r.Context(), appt.ID)
			if err != nil {
				continue
			}
			feedback[appt.ID] = fb
		}

		sectors, _ := client.Sectors(r.Context())
		centers, _ := client.ListHealthCenters(r.Context())

		_ = view.ExecuteTemplate(w, "pages/born_show", map[string]any{
			"Title":         "Born Record • " + born.MotherName,
			"Session":       s,
			"Flash":         MakeFlash(r),
			"Born":          born,
			"Feedback":      feedback,
			"Sectors":       sectors,
			"HealthCenters": centers,
			"Edit":          r.URL.Query().Get("edit") == "1" && s.CanCreateBorn(),
		})
	}
}

// POST /borns/{id}
func (e *Env) BornUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		id := atoi(chi.URLParam(r, "id"))
		back := "/borns/" + strconv.Itoa(id)
		if !s.CanCreateBorn() {
			http.Redirect(w, r, back+"?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()

		if errs := bornSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashText(back+"?edit=1", errs[0]), http.StatusSeeOther)
			return
		}

		client := e.client(r)
		current, err := client.GetBorn(r.Context(), id)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.NotFound(w, r)
			return
		}

		born := bornFromForm(r)
		born.ID = id
		born.Status = current.Status
		born.RejectReason = current.RejectReason
		born.BabyCount = current.BabyCount

		if err := client.UpdateBorn(r.Context(), born); err != nil {
			http.Redirect(w, r, flashErr(back+"?edit=1", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, back+"?ok=born_updated", http.StatusSeeOther)
	}
}

// POST /borns/{id}/delete
//
// The success path is gated on the actual DELETE outcome; an upstream error
// leaves the record (and the list) untouched.
func (e *Env) BornDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := atoi(chi.URLParam(r, "id"))
		if err := e.client(r).DeleteBorn(r.Context(), id); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/borns/"+strconv.Itoa(id), err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/borns?ok=born_deleted", http.StatusSeeOther)
	}
}

// POST /borns/{id}/status — approve or reject (supervisor only).
func (e *Env) BornSetStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		id := atoi(chi.URLParam(r, "id"))
		back := "/borns/" + strconv.Itoa(id)

		if !s.CanReview() {
			http.Redirect(w, r, back+"?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()
		status := r.FormValue("status")
		reason := strings.TrimSpace(r.FormValue("rejectReason"))

		// Rejection without a reason never reaches the upstream.
		if status == models.StatusRejected && reason == "" {
			http.Redirect(w, r, back+"?error=reason_needed", http.StatusSeeOther)
			return
		}

		client := e.client(r)
		born, err := client.GetBorn(r.Context(), id)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.NotFound(w, r)
			return
		}
		if !models.CanTransition(born.Status, status) {
			http.Redirect(w, r, back+"?error=bad_transition", http.StatusSeeOther)
			return
		}

		if err := client.SetBornStatus(r.Context(), id, status, born.HealthCenterID, reason); err != nil {
			http.Redirect(w, r, flashErr(back, err), http.StatusSeeOther)
			return
		}
		ok := "approved"
		if status == models.StatusRejected {
			ok = "rejected"
		}
		http.Redirect(w, r, back+"?ok="+ok, http.StatusSeeOther)
	}
}

// bornFromForm reads the shared born fields from a create/edit submission.
func bornFromForm(r *http.Request) models.Born {
	return models.Born{
		DateOfBirth:      r.FormValue("dateOfBirth"),
		DeliveryType:     r.FormValue("deliveryType"),
		MotherName:       strings.TrimSpace(r.FormValue("motherName")),
		MotherPhone:      strings.TrimSpace(r.FormValue("motherPhone")),
		MotherNationalID: strings.TrimSpace(r.FormValue("motherNationalId")),
		FatherName:       strings.TrimSpace(r.FormValue("fatherName")),
		FatherPhone:      strings.TrimSpace(r.FormValue("fatherPhone")),
		FatherNationalID: strings.TrimSpace(r.FormValue("fatherNationalId")),
		Leave:            r.FormValue("leave"),
		DischargeDate:    r.FormValue("dischargeDate"),
		HomeVisitDate:    r.FormValue("homeVisitDate"),
		HomeVisitComment: strings.TrimSpace(r.FormValue("homeVisitComment")),
		HealthCenterID:   atoi(r.FormValue("healthCenterId")),
		SectorID:         atoi(r.FormValue("sector_id")),
		CellID:           atoi(r.FormValue("cell_id")),
		VillageID:        atoi(r.FormValue("village_id")),
	}
}

// babiesFromForm reads the variable-length baby rows. Baby fields arrive as
// parallel slices (babyName, babyGender, ...); each baby's medication rows
// arrive as med_name_<i>/med_dose_<i>/med_freq_<i> slices keyed by the baby
// index. Rows with a blank name are dropped.
func babiesFromForm(r *http.Request) []models.Baby {
	names := r.Form["babyName"]
	genders := r.Form["babyGender"]
	weights := r.Form["babyBirthWeight"]
	discharges := r.Form["babyDischargeWeight"]

	pick := func(vals []string, i int) string {
		if i < len(vals) {
			return vals[i]
		}
		return ""
	}

	var babies []models.Baby
	for i := range names {
		name := strings.TrimSpace(names[i])
		if name == "" {
			continue
		}
		baby := models.Baby{
			Name:            name,
			Gender:          pick(genders, i),
			BirthWeight:     atof(pick(weights, i)),
			DischargeWeight: atof(pick(discharges, i)),
			Medications:     medicationsFromForm(r, i),
		}
		babies = append(babies, baby)
	}
	return babies
}

func medicationsFromForm(r *http.Request, babyIndex int) []models.Medication {
	names := r.Form[fmt.Sprintf("med_name_%d", babyIndex)]
	doses := r.Form[fmt.Sprintf("med_dose_%d", babyIndex)]
	freqs := r.Form[fmt.Sprintf("med_freq_%d", babyIndex)]

	pick := func(vals []string, i int) string {
		if i < len(vals) {
			return vals[i]
		}
		return ""
	}

	var meds []models.Medication
	for i := range names {
		name := strings.TrimSpace(names[i])
		if name == "" {
			continue
		}
		meds = append(meds, models.Medication{
			Name:      name,
			Dose:      pick(doses, i),
			Frequency: pick(freqs, i),
		})
	}
	return meds
}
