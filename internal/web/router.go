package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tkdr/teamgate/internal/dependencies/random"
	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/membership"
	"github.com/tkdr/teamgate/internal/services/platform"
	"github.com/tkdr/teamgate/internal/services/session"
	"github.com/tkdr/teamgate/internal/web/handler"
	"github.com/tkdr/teamgate/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger        *slog.Logger
	Sessions      *session.Store
	SessionCodec  *session.Codec
	SessionTTL    time.Duration
	Authenticator platform.Authenticator
	Membership    *membership.Controller
	Random        random.Random
	AdminID       model.UserID
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	sessionMiddleware := middleware.Session(cfg.Sessions, cfg.SessionCodec, cfg.SessionTTL, cfg.Logger)
	userMiddleware := middleware.RequireUser()
	adminMiddleware := middleware.RequireAdmin(cfg.AdminID)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(sessionMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Membership, cfg.AdminID, cfg.Logger)
	messagesHandler := handler.NewMessagesHandler()
	authHandler := handler.NewAuthHandler(cfg.Authenticator, cfg.Sessions, cfg.Random, cfg.Logger)
	verifyHandler := handler.NewVerifyHandler(cfg.Membership, cfg.Logger)
	playersHandler := handler.NewPlayersHandler(cfg.Membership, cfg.Logger)

	// Public routes
	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/messages/{kind:success|banned|error}", messagesHandler.Show).Methods(http.MethodGet)
	r.HandleFunc("/auth", authHandler.Login).Methods(http.MethodGet)
	r.HandleFunc("/callback", authHandler.Callback).Methods(http.MethodGet)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Verification routes (require a completed login)
	verify := r.PathPrefix("/verify").Subrouter()
	verify.Use(userMiddleware)
	verify.HandleFunc("/gov", verifyHandler.Show).Methods(http.MethodGet)
	verify.HandleFunc("/gov", verifyHandler.Submit).Methods(http.MethodPost)

	// Admin routes
	admin := r.PathPrefix("/players").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/waiting", playersHandler.Waiting).Methods(http.MethodGet)
	admin.HandleFunc("/verified", playersHandler.Verified).Methods(http.MethodGet)
	admin.HandleFunc("/banned", playersHandler.Banned).Methods(http.MethodGet)
	admin.HandleFunc("/ban", playersHandler.Ban).Methods(http.MethodPost)
	admin.HandleFunc("/unban", playersHandler.Unban).Methods(http.MethodPost)

	return r
}
