package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusRejected, true},
		{StatusRejected, StatusApproved, true},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusPending, false},
		{StatusApproved, StatusApproved, false},
		{StatusPending, StatusPending, false},
		{"", StatusApproved, false},
		{StatusPending, "bogus", false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestFullName(t *testing.T) {
	u := User{Firstname: "Ana", Lastname: "M"}
	if u.FullName() != "Ana M" {
		t.Errorf("FullName = %q", u.FullName())
	}
}
