package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// jsonHandler answers every request with the given status and body.
func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// TestRequestHeaders verifies the bearer token and per-request ID travel on
// every call.
func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok123")
	if _, err := c.ListBorns(context.Background()); err != nil {
		t.Fatalf("ListBorns: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
	if gotReqID == "" {
		t.Error("X-Request-ID header missing")
	}
}

// TestListUsersEnvelope — /users alone wraps its list in {allUsers}.
func TestListUsersEnvelope(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200,
		`{"allUsers":[{"id":1,"firstname":"Ana","lastname":"M","email":"a@x.rw"},{"id":2,"firstname":"Bob","lastname":"K","email":"b@x.rw"}]}`))
	defer srv.Close()

	users, err := New(srv.URL, "t").ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].FullName() != "Ana M" {
		t.Errorf("FullName = %q, want %q", users[0].FullName(), "Ana M")
	}
}

// TestListNotificationsEnvelope — /notification wraps its list in
// {success, data, unreadCount}.
func TestListNotificationsEnvelope(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200,
		`{"success":true,"data":[{"id":7,"title":"Hi","message":"msg","isRead":false}],"unreadCount":3}`))
	defer srv.Close()

	inbox, err := New(srv.URL, "t").ListNotifications(context.Background())
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(inbox.Notifications) != 1 || inbox.Notifications[0].Title != "Hi" {
		t.Errorf("unexpected notifications: %+v", inbox.Notifications)
	}
	if inbox.UnreadCount != 3 {
		t.Errorf("UnreadCount = %d, want 3", inbox.UnreadCount)
	}
}

// TestListFeedbackNotFound — the upstream 404s on an empty feedback list;
// callers see nil, nil.
func TestListFeedbackNotFound(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(404, `{"message":"no feedback found for this appointment"}`))
	defer srv.Close()

	fbs, err := New(srv.URL, "t").ListFeedback(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected nil error on 404, got %v", err)
	}
	if fbs != nil {
		t.Errorf("expected nil feedback, got %+v", fbs)
	}
}

// TestErrorMessageExtraction covers the upstream's two error body shapes.
func TestErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name, body, want string
	}{
		{"message field", `{"message":"mother name and phone are required"}`, "mother name and phone are required"},
		{"error field", `{"error":"something broke"}`, "something broke"},
		{"raw body", `oops`, "oops"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(jsonHandler(400, tc.body))
			defer srv.Close()

			_, err := New(srv.URL, "t").GetBorn(context.Background(), 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.want {
				t.Errorf("err = %q, want %q", err.Error(), tc.want)
			}
			if IsNotFound(err) || IsUnauthorized(err) {
				t.Error("a 400 should be neither not-found nor unauthorized")
			}
		})
	}
}

// TestSectorsFlatten — the address tree comes back as {data: provinces} and
// is flattened to the sector level, cells and villages intact.
func TestSectorsFlatten(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(200, `{"data":[
		{"id":1,"name":"Kigali City","districts":[
			{"id":1,"name":"Gasabo","sectors":[
				{"id":1,"name":"Remera","cells":[{"id":1,"name":"Nyabisindu","villages":[{"id":1,"name":"Ubumwe"}]}]},
				{"id":2,"name":"Kimironko"}]},
			{"id":2,"name":"Kicukiro","sectors":[{"id":3,"name":"Niboye"}]}]}]}`))
	defer srv.Close()

	sectors, err := New(srv.URL, "t").Sectors(context.Background())
	if err != nil {
		t.Fatalf("Sectors: %v", err)
	}
	if len(sectors) != 3 {
		t.Fatalf("got %d sectors, want 3", len(sectors))
	}
	if sectors[0].Name != "Remera" || len(sectors[0].Cells) != 1 || len(sectors[0].Cells[0].Villages) != 1 {
		t.Errorf("flattening dropped nested cells/villages: %+v", sectors[0])
	}
}

// TestSetBornStatusPayload — rejectReason rides along only on rejection.
func TestSetBornStatusPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()
	c := New(srv.URL, "t")

	if err := c.SetBornStatus(context.Background(), 1, "approved", 9, ""); err != nil {
		t.Fatalf("SetBornStatus: %v", err)
	}
	if _, present := got["rejectReason"]; present {
		t.Error("approval payload should not carry rejectReason")
	}
	if got["status"] != "approved" || got["healthCenterId"] != float64(9) {
		t.Errorf("unexpected approval payload: %v", got)
	}

	if err := c.SetBornStatus(context.Background(), 1, "rejected", 9, "incomplete record"); err != nil {
		t.Fatalf("SetBornStatus: %v", err)
	}
	if got["rejectReason"] != "incomplete record" {
		t.Errorf("rejection payload missing reason: %v", got)
	}
}

// TestBornReportRange — the date range is appended only when both ends are
// present.
func TestBornReportRange(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		_, _ = w.Write([]byte(`{"bornRecords":[],"summary":{"totalRecords":0}}`))
	}))
	defer srv.Close()
	c := New(srv.URL, "t")

	if _, err := c.BornReport(context.Background(), "2026-01-01", "2026-01-31"); err != nil {
		t.Fatalf("BornReport: %v", err)
	}
	if !strings.Contains(gotPath, "fromDate=2026-01-01") || !strings.Contains(gotPath, "toDate=2026-01-31") {
		t.Errorf("range missing from path: %q", gotPath)
	}

	if _, err := c.BornReport(context.Background(), "2026-01-01", ""); err != nil {
		t.Fatalf("BornReport: %v", err)
	}
	if strings.Contains(gotPath, "fromDate") {
		t.Errorf("half-open range should be dropped, got %q", gotPath)
	}
}
