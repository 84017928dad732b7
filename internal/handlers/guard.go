package handlers

import (
	"net/http"

	"github.com/cedrotech1/digitalretransfer/internal/session"
)

// RequireSession is middleware: a request missing any of the four session
// cookies is sent to /login. No token-expiry check happens here; a stale
// token surfaces as a 401 on the first upstream call.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.Read(r); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectIfAuthed is the inverse guard on /login and /forgotten-password:
// an already-authenticated session goes straight to the dashboard.
func RedirectIfAuthed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.Read(r); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
