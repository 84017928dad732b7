package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/cedrotech1/digitalretransfer/internal/config"
)

// Template parsing resolves relative to the repo root.
func TestMain(m *testing.M) {
	if err := os.Chdir("../.."); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testRouter() http.Handler {
	return Router(config.Config{Addr: ":0", APIBaseURL: "http://127.0.0.1:0/api/v1"})
}

func withSession(req *http.Request) *http.Request {
	for _, c := range []struct{ name, value string }{
		{"email", "nurse@x.rw"},
		{"token", "tok"},
		{"role", "nurse"},
		{"userID", "4"},
	} {
		req.AddCookie(&http.Cookie{Name: c.name, Value: c.value})
	}
	return req
}

func TestHealthz(t *testing.T) {
	r := testRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// TestGuardRedirectsAnonymous — every data page needs the four session
// cookies; missing ones bounce to /login.
func TestGuardRedirectsAnonymous(t *testing.T) {
	r := testRouter()
	for _, path := range []string{"/", "/borns", "/appointments", "/users", "/report", "/account"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s: status %d, want 303", path, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s: redirected to %q, want /login", path, loc)
		}
	}
}

// TestPartialSessionIsAnonymous — three cookies out of four still count as
// logged out.
func TestPartialSessionIsAnonymous(t *testing.T) {
	r := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/borns", nil)
	req.AddCookie(&http.Cookie{Name: "email", Value: "x@x.rw"})
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok"})
	req.AddCookie(&http.Cookie{Name: "role", Value: "nurse"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("partial session: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}
}

// TestLoginRedirectsAuthed — an authenticated session on /login goes
// straight to the dashboard.
func TestLoginRedirectsAuthed(t *testing.T) {
	r := testRouter()
	req := withSession(httptest.NewRequest(http.MethodGet, "/login", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("authed /login: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginFormRenders(t *testing.T) {
	r := testRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rec.Code != 200 {
		t.Fatalf("GET /login: status %d, want 200", rec.Code)
	}
}

func TestNotFoundPage(t *testing.T) {
	r := testRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path: status %d, want 404", rec.Code)
	}
}
