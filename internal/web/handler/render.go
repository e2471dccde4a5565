package handler

import (
	"net/http"

	"github.com/a-h/templ"
)

// render writes a page component, falling back to a bare 500 if rendering fails
func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
