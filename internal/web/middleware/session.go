package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// GetSession retrieves the browser session from the request context.
// Returns nil if no session could be established.
func GetSession(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(sessionContextKey).(*model.Session)
	return sess
}

// Session returns middleware that loads the browser session from the signed
// cookie, creating a fresh one when the cookie is missing, invalid or
// expired. The session is placed in the request context; handlers that
// mutate it save it back through the store.
func Session(store *session.Store, codec *session.Codec, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := loadSession(r, store, codec)
			if sess == nil {
				var err error
				sess, err = store.Create(r.Context())
				if err != nil {
					// Session store down: continue anonymously.
					logger.Error("failed to create session", slog.String("error", err.Error()))
					next.ServeHTTP(w, r)
					return
				}
				setSessionCookie(w, codec, sess.ID, ttl)
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func loadSession(r *http.Request, store *session.Store, codec *session.Codec) *model.Session {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil
	}

	id, err := codec.Decode(cookie.Value)
	if err != nil {
		return nil
	}

	sess, err := store.Get(r.Context(), id)
	if err != nil {
		return nil
	}
	return sess
}

func setSessionCookie(w http.ResponseWriter, codec *session.Codec, id model.SessionID, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    codec.Encode(id),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
