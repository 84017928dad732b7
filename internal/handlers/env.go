package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/cedrotech1/digitalretransfer/internal/api"
	"github.com/cedrotech1/digitalretransfer/internal/session"
)

// Env is what every page handler needs: the parsed layout/partial templates
// and the upstream API base URL. The router builds one and hands it to each
// handler factory, so tests can point pages at an httptest server.
type Env struct {
	Tmpl    *template.Template
	APIBase string
}

// client builds a per-request gateway client carrying the session's bearer
// token. An empty session yields an unauthenticated client (login flow).
func (e *Env) client(r *http.Request) *api.Client {
	s, _ := session.Read(r)
	return api.New(e.APIBase, s.Token)
}

// page clones the shared templates and parses one page file into the clone.
// Called once per handler at construction, not per request.
func (e *Env) page(file string) *template.Template {
	view := template.Must(e.Tmpl.Clone())
	return template.Must(view.ParseFiles("templates/pages/" + file))
}

// unauthorized sends a stale-token request back through the login flow.
func unauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if api.IsUnauthorized(err) {
		session.Clear(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	return false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
