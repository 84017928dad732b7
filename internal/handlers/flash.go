package handlers

import (
	"net/http"
	"net/url"
	"strings"
)

type Flash struct {
	Kind string // "ok" or "error"
	Text string
}

var okText = map[string]string{
	"saved":             "Saved.",
	"born_created":      "Born record added successfully.",
	"born_updated":      "Born record updated successfully.",
	"born_deleted":      "Born record deleted successfully.",
	"baby_added":        "Baby added successfully.",
	"baby_updated":      "Baby updated successfully.",
	"baby_deleted":      "Baby record deleted.",
	"appt_added":        "Appointment added.",
	"appt_cancelled":    "Appointment cancelled.",
	"feedback_saved":    "Feedback recorded.",
	"approved":          "Born record approved.",
	"rejected":          "Born record rejected.",
	"center_created":    "Health center created.",
	"center_updated":    "Health center updated.",
	"center_deleted":    "Health center deleted.",
	"user_added":        "User added successfully.",
	"user_updated":      "User updated successfully.",
	"user_deleted":      "User deleted.",
	"user_activated":    "User activated successfully.",
	"user_deactivated":  "User deactivated successfully.",
	"profile_saved":     "Profile updated.",
	"password_changed":  "Password changed.",
	"password_reset":    "Password reset. You can sign in now.",
	"code_sent":         "A verification code has been sent to your email.",
	"all_read":          "All notifications marked as read.",
	"notif_deleted":     "Notification deleted.",
	"all_notif_deleted": "All notifications deleted.",
}

var errText = map[string]string{
	"missing":        "Please fill all required fields.",
	"reason_needed":  "A reject reason is required.",
	"bad_transition": "That status change is not allowed.",
	"not_allowed":    "You are not allowed to perform this action.",
	"password_match": "New password and confirmation do not match.",
	"load_failed":    "Failed to load data from the server.",
}

// MakeFlash reads ?ok= / ?error= query keys and maps known codes to human
// text; unknown values (e.g. a server-provided message) pass through as-is.
func MakeFlash(r *http.Request) *Flash {
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("error")); raw != "" {
		if t, ok := errText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "error", Text: t}
		}
		return &Flash{Kind: "error", Text: raw}
	}
	if raw := strings.TrimSpace(q.Get("ok")); raw != "" {
		if t, ok := okText[strings.ToLower(raw)]; ok {
			return &Flash{Kind: "ok", Text: t}
		}
		return &Flash{Kind: "ok", Text: raw}
	}
	return nil
}

// flashErr builds a redirect target carrying an upstream error message.
func flashErr(base string, err error) string {
	return flashText(base, err.Error())
}

// flashText builds a redirect target carrying a plain error message.
func flashText(base, msg string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "error=" + url.QueryEscape(msg)
}
