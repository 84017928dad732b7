package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cedrotech1/digitalretransfer/internal/listview"
	"github.com/cedrotech1/digitalretransfer/internal/models"
	"github.com/cedrotech1/digitalretransfer/internal/session"
	"github.com/cedrotech1/digitalretransfer/internal/validate"
)

var centerSchema = validate.Schema{Fields: []validate.Field{
	{Name: "name", Label: "Name", Required: true},
	{Name: "sector_id", Label: "Sector", Required: true},
}}

// GET /healthcenter
func (e *Env) HealthCentersList() http.HandlerFunc {
	view := e.page("healthcenters.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		q := r.URL.Query()

		client := e.client(r)
		centers, err := client.ListHealthCenters(r.Context())
		flash := MakeFlash(r)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			flash = &Flash{Kind: "error", Text: err.Error()}
		}
		sectors, _ := client.Sectors(r.Context())

		term := strings.TrimSpace(q.Get("q"))
		rows := listview.Search(centers, term, func(hc models.HealthCenter) []string {
			return []string{hc.Name}
		})
		rows = listview.Sort(rows, func(a, b models.HealthCenter) bool { return a.Name < b.Name },
			q.Get("dir") == "desc")

		pageRows, pager := listview.Paginate(rows, atoi(q.Get("page")), listview.DefaultPerPage)
		pager = pager.WithQuery(q)

		_ = view.ExecuteTemplate(w, "pages/healthcenters", map[string]any{
			"Title":   "Health Centers",
			"Session": s,
			"Flash":   flash,
			"Centers": pageRows,
			"Pager":   pager,
			"Sectors": sectors,
			"Q":       term,
			"Dir":     q.Get("dir"),
		})
	}
}

// POST /healthcenter
func (e *Env) HealthCenterCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanManageUsers() {
			http.Redirect(w, r, "/healthcenter?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()
		if errs := centerSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashText("/healthcenter", errs[0]), http.StatusSeeOther)
			return
		}
		hc := models.HealthCenter{
			Name:       strings.TrimSpace(r.FormValue("name")),
			SectorID:   atoi(r.FormValue("sector_id")),
			HeadUserID: atoi(r.FormValue("headUserId")),
		}
		if err := e.client(r).CreateHealthCenter(r.Context(), hc); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/healthcenter", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/healthcenter?ok=center_created", http.StatusSeeOther)
	}
}

// POST /healthcenter/{id}
func (e *Env) HealthCenterUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanManageUsers() {
			http.Redirect(w, r, "/healthcenter?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()
		if errs := centerSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashText("/healthcenter", errs[0]), http.StatusSeeOther)
			return
		}
		hc := models.HealthCenter{
			ID:         atoi(chi.URLParam(r, "id")),
			Name:       strings.TrimSpace(r.FormValue("name")),
			SectorID:   atoi(r.FormValue("sector_id")),
			HeadUserID: atoi(r.FormValue("headUserId")),
		}
		if err := e.client(r).UpdateHealthCenter(r.Context(), hc); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/healthcenter", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/healthcenter?ok=center_updated", http.StatusSeeOther)
	}
}

// POST /healthcenter/{id}/delete
func (e *Env) HealthCenterDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanManageUsers() {
			http.Redirect(w, r, "/healthcenter?error=not_allowed", http.StatusSeeOther)
			return
		}
		id := atoi(chi.URLParam(r, "id"))
		if err := e.client(r).DeleteHealthCenter(r.Context(), id); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/healthcenter", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/healthcenter?ok=center_deleted", http.StatusSeeOther)
	}
}
