package handlers

import "net/http"

// NotFound renders the catch-all 404 page.
func (e *Env) NotFound() http.HandlerFunc {
	view := e.page("notfound.tmpl")
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = view.ExecuteTemplate(w, "pages/notfound", map[string]any{
			"Title": "Page not found",
		})
	}
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
