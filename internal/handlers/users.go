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

var userSchema = validate.Schema{Fields: []validate.Field{
	{Name: "firstname", Label: "First name", Required: true},
	{Name: "lastname", Label: "Last name", Required: true},
	{Name: "email", Label: "Email", Required: true},
	{Name: "role", Label: "Role", Required: true},
	{Name: "phone", Label: "Phone"},
}}

// roleOption feeds the role select and filter.
type roleOption struct {
	Value string
	Label string
}

var roleOptions = []roleOption{
	{models.RoleDataManager, "Data Manager"},
	{models.RoleSupervisor, "Head of Community Workers"},
	{models.RoleDoctor, "Doctor"},
	{models.RoleNurse, "Nurse"},
}

// GET /users
func (e *Env) UsersList() http.HandlerFunc {
	view := e.page("users.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		q := r.URL.Query()

		client := e.client(r)
		users, err := client.ListUsers(r.Context())
		flash := MakeFlash(r)
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			flash = &Flash{Kind: "error", Text: err.Error()}
		}
		centers, _ := client.ListHealthCenters(r.Context())

		term := strings.TrimSpace(q.Get("q"))
		rows := listview.Search(users, term, func(u models.User) []string {
			return []string{u.FullName(), u.Email}
		})

		role := q.Get("role")
		if role != "" {
			rows = listview.Where(rows, func(u models.User) bool { return u.Role == role })
		}

		rows = listview.Sort(rows, func(a, b models.User) bool { return a.FullName() < b.FullName() },
			q.Get("dir") == "desc")

		pageRows, pager := listview.Paginate(rows, atoi(q.Get("page")), listview.DefaultPerPage)
		pager = pager.WithQuery(q)

		_ = view.ExecuteTemplate(w, "pages/users", map[string]any{
			"Title":         "Users",
			"Session":       s,
			"Flash":         flash,
			"Users":         pageRows,
			"Pager":         pager,
			"Roles":         roleOptions,
			"HealthCenters": centers,
			"Q":             term,
			"Role":          role,
			"Dir":           q.Get("dir"),
		})
	}
}

// POST /users
func (e *Env) UserAdd() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanManageUsers() {
			http.Redirect(w, r, "/users?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()
		if errs := userSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashText("/users", errs[0]), http.StatusSeeOther)
			return
		}

		role := r.FormValue("role")
		centerID := atoi(r.FormValue("healthCenterId"))
		// The supervisor role is bound to a health center.
		if role == models.RoleSupervisor && centerID == 0 {
			http.Redirect(w, r, flashText("/users", "Please select a health center for this role"), http.StatusSeeOther)
			return
		}

		u := models.User{
			Firstname:      strings.TrimSpace(r.FormValue("firstname")),
			Lastname:       strings.TrimSpace(r.FormValue("lastname")),
			Email:          strings.TrimSpace(r.FormValue("email")),
			Phone:          normPhone(r.FormValue("phone")),
			Gender:         r.FormValue("gender"),
			Role:           role,
			HealthCenterID: centerID,
		}
		if err := e.client(r).AddUser(r.Context(), u); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/users", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/users?ok=user_added", http.StatusSeeOther)
	}
}

// POST /users/{id}
func (e *Env) UserUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanManageUsers() {
			http.Redirect(w, r, "/users?error=not_allowed", http.StatusSeeOther)
			return
		}
		_ = r.ParseForm()
		if errs := userSchema.Validate(r.Form); len(errs) > 0 {
			http.Redirect(w, r, flashText("/users", errs[0]), http.StatusSeeOther)
			return
		}
		u := models.User{
			ID:             atoi(chi.URLParam(r, "id")),
			Firstname:      strings.TrimSpace(r.FormValue("firstname")),
			Lastname:       strings.TrimSpace(r.FormValue("lastname")),
			Email:          strings.TrimSpace(r.FormValue("email")),
			Phone:          normPhone(r.FormValue("phone")),
			Gender:         r.FormValue("gender"),
			Role:           r.FormValue("role"),
			HealthCenterID: atoi(r.FormValue("healthCenterId")),
		}
		if err := e.client(r).UpdateUser(r.Context(), u); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/users", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/users?ok=user_updated", http.StatusSeeOther)
	}
}

// POST /users/{id}/activate and /users/{id}/deactivate
func (e *Env) UserSetActive(activate bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanManageUsers() {
			http.Redirect(w, r, "/users?error=not_allowed", http.StatusSeeOther)
			return
		}
		id := atoi(chi.URLParam(r, "id"))

		var err error
		ok := "user_activated"
		if activate {
			err = e.client(r).ActivateUser(r.Context(), id)
		} else {
			err = e.client(r).DeactivateUser(r.Context(), id)
			ok = "user_deactivated"
		}
		if err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/users", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/users?ok="+ok, http.StatusSeeOther)
	}
}

// POST /users/{id}/delete
func (e *Env) UserDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.Read(r)
		if !s.CanManageUsers() {
			http.Redirect(w, r, "/users?error=not_allowed", http.StatusSeeOther)
			return
		}
		id := atoi(chi.URLParam(r, "id"))
		if err := e.client(r).DeleteUser(r.Context(), id); err != nil {
			if unauthorized(w, r, err) {
				return
			}
			http.Redirect(w, r, flashErr("/users", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/users?ok=user_deleted", http.StatusSeeOther)
	}
}

// normPhone prefixes local numbers with the country code the upstream
// expects.
func normPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, "+250") {
		return phone
	}
	return "+250" + phone
}
