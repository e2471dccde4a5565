package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/tkdr/teamgate/internal/dependencies/random"
	"github.com/tkdr/teamgate/internal/services/platform"
	"github.com/tkdr/teamgate/internal/services/session"
	"github.com/tkdr/teamgate/internal/web/middleware"
)

const stateAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const stateLength = 24

// AuthHandler drives the OAuth login flow against the chess platform
type AuthHandler struct {
	auth     platform.Authenticator
	sessions *session.Store
	random   random.Random
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth platform.Authenticator, sessions *session.Store, rnd random.Random, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		random:   rnd,
		logger:   logger,
	}
}

// Login starts the authorization-code flow: stores an anti-forgery state and
// the caller's return URL in the session, then redirects to the provider
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	state := h.random.String(stateLength, stateAlphabet)

	returnURL := r.URL.Query().Get("returnUrl")
	if !strings.HasPrefix(returnURL, "/") {
		returnURL = "/"
	}

	sess.OAuthState = state
	sess.ReturnURL = returnURL
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("saving session before login", slog.String("error", err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusSeeOther)
}

// Callback completes the flow: verifies the state, exchanges the code for a
// token and loads the account. Every failure funnels silently to the home
// page; only the log tells them apart.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || sess.OAuthState == "" || state != sess.OAuthState {
		h.logger.Warn("oauth callback with mismatched state")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := h.auth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth code exchange failed", slog.String("error", err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	userID, userName, err := h.auth.Account(r.Context(), token)
	if err != nil {
		h.logger.Error("account fetch failed", slog.String("error", err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	returnURL := sess.ReturnURL
	if returnURL == "" {
		returnURL = "/"
	}

	sess.UserID = userID
	sess.UserName = userName
	sess.AuthToken = token
	sess.OAuthState = ""
	sess.ReturnURL = ""
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("saving session after login", slog.String("error", err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.logger.Info("user logged in", slog.String("userId", string(userID)))
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

// Logout discards the server-side session and expires the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess != nil {
		if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
			h.logger.Error("deleting session on logout", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
