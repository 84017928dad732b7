package handlers

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestMakeFlash(t *testing.T) {
	cases := []struct {
		name, url string
		want      *Flash
	}{
		{"no params", "/borns", nil},
		{"known ok code", "/borns?ok=born_created", &Flash{Kind: "ok", Text: "Born record added successfully."}},
		{"known error code", "/borns?error=reason_needed", &Flash{Kind: "error", Text: "A reject reason is required."}},
		{"raw server message", "/borns?error=mother%20name%20is%20required", &Flash{Kind: "error", Text: "mother name is required"}},
		{"error wins over ok", "/borns?ok=saved&error=missing", &Flash{Kind: "error", Text: "Please fill all required fields."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MakeFlash(httptest.NewRequest("GET", tc.url, nil))
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil flash, got %+v", got)
				}
				return
			}
			if got == nil || got.Kind != tc.want.Kind || got.Text != tc.want.Text {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFlashErrEscapes(t *testing.T) {
	got := flashErr("/borns/5", errors.New("bad value: 10%"))
	want := "/borns/5?error=bad+value%3A+10%25"
	if got != want {
		t.Errorf("flashErr = %q, want %q", got, want)
	}

	got = flashErr("/borns?edit=1", errors.New("x"))
	if got != "/borns?edit=1&error=x" {
		t.Errorf("flashErr with existing query = %q", got)
	}
}

func TestNormPhone(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"788123456":     "+250788123456",
		"+250788123456": "+250788123456",
		" 788123456 ":   "+250788123456",
	}
	for in, want := range cases {
		if got := normPhone(in); got != want {
			t.Errorf("normPhone(%q) = %q, want %q", in, got, want)
		}
	}
}
