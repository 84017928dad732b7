package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

func TestSetReadRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	Set(rec, Session{Email: "n@x.rw", Token: "tok", Role: models.RoleNurse, UserID: "7"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	s, ok := Read(req)
	if !ok {
		t.Fatal("Read: session not recognized")
	}
	if s.Email != "n@x.rw" || s.Token != "tok" || s.Role != models.RoleNurse || s.UserID != "7" {
		t.Errorf("round-tripped session = %+v", s)
	}
	if !s.IsNurse() || !s.CanCreateBorn() || s.CanReview() || s.CanManageUsers() {
		t.Errorf("nurse role helpers wrong: %+v", s)
	}
}

func TestReadPartialSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "email", Value: "n@x.rw"})
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok"})
	req.AddCookie(&http.Cookie{Name: "role", Value: models.RoleNurse})

	if _, ok := Read(req); ok {
		t.Error("three of four cookies should not count as a session")
	}
}

func TestClearExpiresCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	Clear(rec)

	cleared := 0
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared++
		}
	}
	if cleared != 4 {
		t.Errorf("%d cookies expired, want 4", cleared)
	}
}

func TestRoleHelpers(t *testing.T) {
	if !(Session{Role: models.RoleSupervisor}).CanReview() {
		t.Error("supervisor should review")
	}
	if !(Session{Role: models.RoleDataManager}).CanManageUsers() {
		t.Error("data manager should manage users")
	}
	if (Session{Role: models.RoleDoctor}).CanManageUsers() {
		t.Error("doctor should not manage users")
	}
	if !(Session{Role: models.RoleDoctor}).CanCreateBorn() {
		t.Error("doctor should create born records")
	}
}
