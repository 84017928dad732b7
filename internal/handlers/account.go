package handlers

import (
	"net/http"
	"strings"

	"github.com/cedrotech1/digitalretransfer/internal/models"
	"github.com/cedrotech1/digitalretransfer/internal/session"
	"github.com/cedrotech1/digitalretransfer/internal/validate"
)

var profileSchema = validate.Schema{Fields: []validate.Field{
	{Name: "firstname", Label: "First name", Required: true},
	{Name: "lastname", Label: "Last name", Required: true},
	{Name: "phone", Label: "Phone"},
}}

// GET /account — the current user's profile plus the password-change form.
func (e *Env) Account() http.HandlerFunc {
	view := e.page("account.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)

		var user models.User
		flash := MakeFlash(r)
		user, err := e.client(r).GetUser(r.Context(), atoi(s.UserID))
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			flash = &Flash{Kind: "error", Text: err.Error()}
		}

		_ = view.ExecuteTemplate(w, "pages/account", map[string]any{
			"Title":   "Account Settings",
			"Session": s,
			"Flash":   flash,
			"User":    user,
		})
	}
}

// POST /account
func (e *Env) AccountUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		_ = r.ParseForm()

		if errs := profileSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashText("/account", errs[0]), http.StatusSeeOther)
			return
		}

		client := e.client(r)
		current, err := client.GetUser(r.Context(), atoi(s.UserID))
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/account", err), http.StatusSeeOther)
			return
		}

		// Role, status and health center are not self-service.
		current.Firstname = strings.TrimSpace(r.FormValue("firstname"))
		current.Lastname = strings.TrimSpace(r.FormValue("lastname"))
		current.Phone = normPhone(r.FormValue("phone"))
		if g := r.FormValue("gender"); g != "" {
			current.Gender = g
		}

		if err := client.UpdateUser(r.Context(), current); err != nil {
			http.Redirect(w, r, flashErr("/account", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/account?ok=profile_saved", http.StatusSeeOther)
	}
}

// POST /account/password
func (e *Env) AccountChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		_ = r.ParseForm()

		oldPw := r.FormValue("currentPassword")
		newPw := r.FormValue("newPassword")
		confirm := r.FormValue("confirmPassword")

		if oldPw == "" || newPw == "" {
			http.Redirect(w, r, "/account?error=missing", http.StatusSeeOther)
			return
		}
		if newPw != confirm {
			http.Redirect(w, r, "/account?error=password_match", http.StatusSeeOther)
			return
		}

		if err := e.client(r).ChangePassword(r.Context(), atoi(s.UserID), oldPw, newPw, confirm); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/account", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/account?ok=password_changed", http.StatusSeeOther)
	}
}
