package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cedrotech1/digitalretransfer/internal/models"
)

// Template parsing resolves relative to the repo root.
func TestMain(m *testing.M) {
	if err := os.Chdir("../.."); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testTemplates(t *testing.T) *template.Template {
	t.Helper()
	funcs := template.FuncMap{
		"year":      func() string { return time.Now().Format("2006") },
		"fmtDate":   func(s string) string { return s },
		"fmtTime":   func(tm time.Time) string { return tm.Format("2006-01-02") },
		"roleLabel": func(s string) string { return s },
		"title":     func(s string) string { return s },
	}
	p := template.New("").Funcs(funcs)
	p = template.Must(p.ParseGlob("templates/layouts/*.tmpl"))
	p = template.Must(p.ParseGlob("templates/partials/*.tmpl"))
	return p
}

func testEnv(t *testing.T, apiBase string) *Env {
	t.Helper()
	return &Env{Tmpl: testTemplates(t), APIBase: apiBase}
}

func sessionCookies(req *http.Request, role string) *http.Request {
	for _, c := range []struct{ name, value string }{
		{"email", "user@x.rw"},
		{"token", "tok"},
		{"role", role},
		{"userID", "4"},
	} {
		req.AddCookie(&http.Cookie{Name: c.name, Value: c.value})
	}
	return req
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// TestLoginSubmitSetsSessionCookies — a successful login writes all four
// session cookies and lands on the dashboard.
func TestLoginSubmitSetsSessionCookies(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected upstream call: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"jwt123","user":{"id":7,"email":"nurse@x.rw","role":"nurse"}}`))
	}))
	defer upstream.Close()

	env := testEnv(t, upstream.URL)
	rec := httptest.NewRecorder()
	env.LoginSubmit()(rec, postForm("/login", url.Values{
		"email":    {"nurse@x.rw"},
		"password": {"secret"},
	}))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("status %d location %q, want 303 /", rec.Code, rec.Header().Get("Location"))
	}

	got := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		got[c.Name] = c.Value
	}
	want := map[string]string{"email": "nurse@x.rw", "token": "jwt123", "role": "nurse", "userID": "7"}
	for name, value := range want {
		if got[name] != value {
			t.Errorf("cookie %s = %q, want %q", name, got[name], value)
		}
	}
}

// TestLoginSubmitBadCredentials — an upstream 401 re-renders the form, no
// cookies set.
func TestLoginSubmitBadCredentials(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid email or password"}`))
	}))
	defer upstream.Close()

	env := testEnv(t, upstream.URL)
	rec := httptest.NewRecorder()
	env.LoginSubmit()(rec, postForm("/login", url.Values{
		"email":    {"nurse@x.rw"},
		"password": {"wrong"},
	}))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401 (re-rendered form)", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Errorf("cookies set on failed login: %v", rec.Result().Cookies())
	}
	if !strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Error("error message missing from re-rendered form")
	}
}

// TestBornSetStatusRejectNeedsReason — a rejection with no reason never
// reaches the upstream.
func TestBornSetStatusRejectNeedsReason(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("upstream called: %s %s", r.Method, r.URL.Path)
	}))
	defer upstream.Close()

	env := testEnv(t, upstream.URL)
	router := chi.NewRouter()
	router.Post("/borns/{id}/status", env.BornSetStatus())

	req := sessionCookies(postForm("/borns/5/status", url.Values{
		"status": {"rejected"},
	}), "head_of_community_workers_at_health_center")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=reason_needed") {
		t.Errorf("redirected to %q, want reason_needed error", loc)
	}
}

// TestBornSetStatusForbiddenForNurse — only the supervisor role may review.
func TestBornSetStatusForbiddenForNurse(t *testing.T) {
	env := testEnv(t, "http://127.0.0.1:0")
	router := chi.NewRouter()
	router.Post("/borns/{id}/status", env.BornSetStatus())

	req := sessionCookies(postForm("/borns/5/status", url.Values{
		"status": {"approved"},
	}), "nurse")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=not_allowed") {
		t.Errorf("redirected to %q, want not_allowed error", loc)
	}
}

// TestBornSetStatusBlocksBadTransition — an approved record cannot be
// re-approved, and nothing ever returns to pending.
func TestBornSetStatusBlocksBadTransition(t *testing.T) {
	var statusCalls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			statusCalls++
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"status":"approved","healthCenterId":1}`))
	}))
	defer upstream.Close()

	env := testEnv(t, upstream.URL)
	router := chi.NewRouter()
	router.Post("/borns/{id}/status", env.BornSetStatus())

	req := sessionCookies(postForm("/borns/5/status", url.Values{
		"status": {"approved"},
	}), "head_of_community_workers_at_health_center")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=bad_transition") {
		t.Errorf("redirected to %q, want bad_transition error", loc)
	}
	if statusCalls != 0 {
		t.Errorf("%d status PUTs reached the upstream", statusCalls)
	}
}

// TestBornDeleteGatedOnOutcome — an upstream failure keeps the user on the
// record with the server's message; only success redirects to the list.
func TestBornDeleteGatedOnOutcome(t *testing.T) {
	fail := true
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"db error"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"born record deleted"}`))
	}))
	defer upstream.Close()

	env := testEnv(t, upstream.URL)
	router := chi.NewRouter()
	router.Post("/borns/{id}/delete", env.BornDelete())

	req := sessionCookies(postForm("/borns/5/delete", nil), "nurse")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "/borns/5?error=") {
		t.Errorf("failed delete redirected to %q, want error on the record page", loc)
	}

	fail = false
	req = sessionCookies(postForm("/borns/5/delete", nil), "nurse")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if loc := rec.Header().Get("Location"); loc != "/borns?ok=born_deleted" {
		t.Errorf("successful delete redirected to %q", loc)
	}
}

// TestBabiesFromForm — parallel baby arrays with per-baby medication rows.
func TestBabiesFromForm(t *testing.T) {
	form := url.Values{
		"babyName":        {"Aline", "", "Eric"},
		"babyGender":      {"female", "male", "male"},
		"babyBirthWeight": {"3.2", "2.8", "3.0"},
		"med_name_0":      {"Vitamin K"},
		"med_dose_0":      {"1mg"},
		"med_freq_0":      {"once"},
		"med_name_2":      {"BCG", ""},
	}
	req := postForm("/borns", form)
	_ = req.ParseForm()

	babies := babiesFromForm(req)
	if len(babies) != 2 {
		t.Fatalf("got %d babies, want 2 (blank name dropped)", len(babies))
	}
	if babies[0].Name != "Aline" || len(babies[0].Medications) != 1 {
		t.Errorf("baby 0: %+v", babies[0])
	}
	if babies[0].Medications[0].Dose != "1mg" {
		t.Errorf("medication dose = %q", babies[0].Medications[0].Dose)
	}
	// The second kept baby is at form index 2 and keeps its own medications.
	if babies[1].Name != "Eric" || len(babies[1].Medications) != 1 || babies[1].Medications[0].Name != "BCG" {
		t.Errorf("baby 1: %+v", babies[1])
	}
}

// TestBornsListPagingKeepsQuery — the next-page link must carry the active
// search term, not just the page number.
func TestBornsListPagingKeepsQuery(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		borns := make([]models.Born, 15)
		for i := range borns {
			borns[i] = models.Born{ID: i + 1, MotherName: "Amani Uwase", Status: "pending"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(borns)
	}))
	defer upstream.Close()

	env := testEnv(t, upstream.URL)
	req := sessionCookies(httptest.NewRequest(http.MethodGet, "/borns?q=amani&page=1", nil), "nurse")
	rec := httptest.NewRecorder()
	env.BornsList()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "page=2&amp;q=amani") {
		t.Error("next-page link dropped the search term")
	}
}

// TestDashboardCardsGatedByRole — user and health-center summaries are for
// the data manager only; clinical roles see the clinical cards.
func TestDashboardCardsGatedByRole(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalUsers":5,"users":{"nurse":3},"totalBorns":2,"totalBabies":2,"totalHealthCenters":1,"totalAppointments":4,"appointmentsByStatus":{"Scheduled":4}}`))
	}))
	defer upstream.Close()

	env := testEnv(t, upstream.URL)

	render := func(role string) string {
		req := sessionCookies(httptest.NewRequest(http.MethodGet, "/", nil), role)
		rec := httptest.NewRecorder()
		env.Dashboard()(rec, req)
		return rec.Body.String()
	}

	nurse := render("nurse")
	if strings.Contains(nurse, "Users by role") || strings.Contains(nurse, "Health centers") {
		t.Error("nurse sees management cards")
	}
	if !strings.Contains(nurse, "Born records") || !strings.Contains(nurse, "Appointments by status") {
		t.Error("nurse missing clinical cards")
	}

	manager := render("data_manager")
	if !strings.Contains(manager, "Users by role") || !strings.Contains(manager, "Health centers") {
		t.Error("data manager missing management cards")
	}
}

// TestAppointmentCancel — cancelling sends the full record back with the
// status flipped; only Scheduled appointments may be cancelled.
func TestAppointmentCancel(t *testing.T) {
	var put models.Appointment
	puts := 0
	status := "Scheduled"
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]models.Appointment{
				{ID: 9, BornID: 2, BabyID: 1, Date: "2026-09-01", Time: "10:00", Purpose: "Checkup", Status: status},
			})
		case http.MethodPut:
			puts++
			_ = json.NewDecoder(r.Body).Decode(&put)
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer upstream.Close()

	env := testEnv(t, upstream.URL)
	router := chi.NewRouter()
	router.Post("/appointments/{id}/cancel", env.AppointmentCancel())

	req := sessionCookies(postForm("/appointments/9/cancel", nil), "nurse")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/appointments?ok=appt_cancelled" {
		t.Fatalf("redirected to %q", loc)
	}
	if put.Status != models.AppointmentCancelled || put.Date != "2026-09-01" || put.Purpose != "Checkup" {
		t.Errorf("PUT body = %+v, want Cancelled with fields preserved", put)
	}

	// A completed appointment stays completed.
	status, puts = "Completed", 0
	req = sessionCookies(postForm("/appointments/9/cancel", nil), "nurse")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=bad_transition") {
		t.Errorf("redirected to %q, want bad_transition error", loc)
	}
	if puts != 0 {
		t.Errorf("%d PUTs reached the upstream for a completed appointment", puts)
	}
}
