package middleware

import (
	"net/http"
	"net/url"

	"github.com/tkdr/teamgate/internal/model"
)

// RequireUser returns middleware that requires a completed OAuth login.
// Anonymous visitors are sent to the login flow with the originally
// requested path as the return URL.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			if !sess.Authenticated() {
				redirectURL := "/auth?returnUrl=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, redirectURL, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns middleware that restricts routes to the configured
// administrator account. Everyone else is sent home; this is an
// authorization miss, not an error, so it is not logged.
func RequireAdmin(adminID model.UserID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			if !sess.Authenticated() || sess.UserID != adminID {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
