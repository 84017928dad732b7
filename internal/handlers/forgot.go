package handlers

import (
	"net/http"
	"net/url"
	"strings"
)

// The forgotten-password flow walks three steps on one page: request a
// verification code, submit the code, then set the new password. The current
// step and email ride along as query parameters.

// GET /forgotten-password
func (e *Env) ForgotPasswordForm() http.HandlerFunc {
	view := e.page("forgot_password.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		step := r.URL.Query().Get("step")
		if step != "code" && step != "reset" {
			step = "email"
		}
		_ = view.ExecuteTemplate(w, "pages/forgot_password", map[string]any{
			"Title": "Digital Retransfer • Forgotten password",
			"Step":  step,
			"Email": r.URL.Query().Get("email"),
			"Flash": MakeFlash(r),
		})
	}
}

// POST /forgotten-password/request
func (e *Env) ForgotPasswordRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		email := strings.TrimSpace(r.FormValue("email"))
		if email == "" {
			http.Redirect(w, r, "/forgotten-password?error=missing", http.StatusSeeOther)
			return
		}
		if err := e.client(r).CheckEmail(r.Context(), email); err != nil {
			http.Redirect(w, r, flashErr("/forgotten-password", err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/forgotten-password?step=code&email="+url.QueryEscape(email)+"&ok=code_sent", http.StatusSeeOther)
	}
}

// POST /forgotten-password/verify
func (e *Env) ForgotPasswordVerify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		email := strings.TrimSpace(r.FormValue("email"))
		code := strings.TrimSpace(r.FormValue("code"))
		back := "/forgotten-password?step=code&email=" + url.QueryEscape(email)
		if email == "" || code == "" {
			http.Redirect(w, r, back+"&error=missing", http.StatusSeeOther)
			return
		}
		if err := e.client(r).VerifyCode(r.Context(), email, code); err != nil {
			http.Redirect(w, r, flashErr(back, err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/forgotten-password?step=reset&email="+url.QueryEscape(email), http.StatusSeeOther)
	}
}

// POST /forgotten-password/reset
func (e *Env) ForgotPasswordReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		confirm := r.FormValue("confirmPassword")
		back := "/forgotten-password?step=reset&email=" + url.QueryEscape(email)

		if email == "" || password == "" {
			http.Redirect(w, r, back+"&error=missing", http.StatusSeeOther)
			return
		}
		if password != confirm {
			http.Redirect(w, r, back+"&error=password_match", http.StatusSeeOther)
			return
		}
		if err := e.client(r).ResetPassword(r.Context(), email, password); err != nil {
			http.Redirect(w, r, flashErr(back, err), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login?ok=password_reset", http.StatusSeeOther)
	}
}
