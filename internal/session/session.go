package session

import (
	"net/http"
	"time"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

// Cookie names shared with the upstream-facing login flow. All four are set
// together on login and cleared together on logout; the route guard treats
// the session as valid only when every one of them is present.
const (
	cookieEmail  = "email"
	cookieToken  = "token"
	cookieRole   = "role"
	cookieUserID = "userID"
)

const ttl = 24 * time.Hour

// Session is the cookie-backed identity of the logged-in user. Pages receive
// it read-only; login and logout are the only writers.
type Session struct {
	Email  string
	Token  string
	Role   string
	UserID string
}

func (s Session) IsDataManager() bool { return s.Role == models.RoleDataManager }
func (s Session) IsNurse() bool       { return s.Role == models.RoleNurse }
func (s Session) IsDoctor() bool      { return s.Role == models.RoleDoctor }
func (s Session) IsSupervisor() bool  { return s.Role == models.RoleSupervisor }

// CanCreateBorn gates the born creation form (nurse or doctor).
func (s Session) CanCreateBorn() bool { return s.IsNurse() || s.IsDoctor() }

// CanReview gates the approve/reject actions on born records.
func (s Session) CanReview() bool { return s.IsSupervisor() }

// CanManageUsers gates the users and health-center admin pages.
func (s Session) CanManageUsers() bool { return s.IsDataManager() }

// Set writes the four session cookies with a 1-day expiry on path /.
func Set(w http.ResponseWriter, s Session) {
	expires := time.Now().Add(ttl)
	for _, c := range []struct{ name, value string }{
		{cookieEmail, s.Email},
		{cookieToken, s.Token},
		{cookieRole, s.Role},
		{cookieUserID, s.UserID},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     c.name,
			Value:    c.value,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  expires,
		})
	}
}

// Read returns the session and whether all four cookies were present. A
// partially present session counts as unauthenticated.
func Read(r *http.Request) (Session, bool) {
	var s Session
	read := func(name string) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
	var ok bool
	if s.Email, ok = read(cookieEmail); !ok {
		return Session{}, false
	}
	if s.Token, ok = read(cookieToken); !ok {
		return Session{}, false
	}
	if s.Role, ok = read(cookieRole); !ok {
		return Session{}, false
	}
	if s.UserID, ok = read(cookieUserID); !ok {
		return Session{}, false
	}
	return s, true
}

// Clear expires all four cookies.
func Clear(w http.ResponseWriter) {
	for _, name := range []string{cookieEmail, cookieToken, cookieRole, cookieUserID} {
		http.SetCookie(w, &http.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			Expires: time.Unix(0, 0),
			MaxAge:  -1,
		})
	}
}
