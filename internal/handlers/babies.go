package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cedrotech1/digitalretransfer/internal/models"
	"github.com/cedrotech1/digitalretransfer/internal/session"
)

// Baby sub-entity actions live under the born detail page. The upstream
// keeps babyCount in step when babies are added or removed.

// POST /borns/{id}/babies
func (e *Env) BabyAdd() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		bornID := atoi(chi.URLParam(r, "id"))
		back := "/borns/" + strconv.Itoa(bornID)

		if !s.CanCreateBorn() {
			http.Redirect(w, r, back+"?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Redirect(w, r, flashText(back, "Baby name is required"), http.StatusSeeOther)
			return
		}

		baby := models.Baby{
			BornID:          bornID,
			Name:            name,
			Gender:          r.FormValue("gender"),
			BirthWeight:     atof(r.FormValue("birthWeight")),
			DischargeWeight: atof(r.FormValue("dischargeWeight")),
			Medications:     medicationsFromForm(r, 0),
		}
		if _, err := e.client(r).CreateBaby(r.Context(), baby); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr(back, err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, back+"?ok=baby_added", http.StatusSeeOther)
	}
}

// POST /borns/{id}/babies/{babyID}
func (e *Env) BabyUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		bornID := atoi(chi.URLParam(r, "id"))
		babyID := atoi(chi.URLParam(r, "babyID"))
		back := "/borns/" + strconv.Itoa(bornID)

		if !s.CanCreateBorn() {
			http.Redirect(w, r, back+"?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Redirect(w, r, flashText(back, "Baby name is required"), http.StatusSeeOther)
			return
		}

		baby := models.Baby{
			ID:              babyID,
			BornID:          bornID,
			Name:            name,
			Gender:          r.FormValue("gender"),
			BirthWeight:     atof(r.FormValue("birthWeight")),
			DischargeWeight: atof(r.FormValue("dischargeWeight")),
			Medications:     medicationsFromForm(r, 0),
		}
		if _, err := e.client(r).UpdateBaby(r.Context(), baby); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr(back, err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, back+"?ok=baby_updated", http.StatusSeeOther)
	}
}

// POST /borns/{id}/babies/{babyID}/delete
func (e *Env) BabyDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		bornID := atoi(chi.URLParam(r, "id"))
		babyID := atoi(chi.URLParam(r, "babyID"))
		back := "/borns/" + strconv.Itoa(bornID)

		if !s.CanCreateBorn() {
			http.Redirect(w, r, back+"?error=not_allowed", http.StatusSeeOther)
			return
		}
		if err := e.client(r).DeleteBaby(r.Context(), babyID); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr(back, err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, back+"?ok=baby_deleted", http.StatusSeeOther)
	}
}
