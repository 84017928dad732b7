package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cedrotech1/digitalretransfer/internal/session"
)

// GET /login
func (e *Env) LoginForm() http.HandlerFunc {
	view := e.page("login.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		_ = view.ExecuteTemplate(w, "pages/login", map[string]any{
			"Title": "Digital Retransfer • Sign in",
			"Flash": MakeFlash(r),
		})
	}
}

// POST /login
func (e *Env) LoginSubmit() http.HandlerFunc {
	view := e.page("login.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		fail := func(msg string) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = view.ExecuteTemplate(w, "pages/login", map[string]any{
				"Title": "Digital Retransfer • Sign in",
				"Email": email,
				"Flash": &Flash{Kind: "error", Text: msg},
			})
		}

		if email == "" || password == "" {
			fail("Email and password are required")
			return
		}

		res, err := e.client(r).Login(r.Context(), email, password)
		if err != nil {
			fail(err.Error())
			return
		}
		if res.Token == "" {
			fail("Authentication failed. Please check your credentials.")
			return
		}

		session.Set(w, session.Session{
			Email:  email,
			Token:  res.Token,
			Role:   res.User.Role,
			UserID: strconv.Itoa(res.User.ID),
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// POST /logout
func Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
