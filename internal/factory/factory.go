package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tkdr/teamgate/internal/config"
	"github.com/tkdr/teamgate/internal/dependencies/clock"
	"github.com/tkdr/teamgate/internal/dependencies/random"
	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/identity"
	"github.com/tkdr/teamgate/internal/services/membership"
	"github.com/tkdr/teamgate/internal/services/platform"
	"github.com/tkdr/teamgate/internal/services/session"
	"github.com/tkdr/teamgate/internal/storage"
	mongostorage "github.com/tkdr/teamgate/internal/storage/mongo"
)

// App contains all wired application components
type App struct {
	// Storage
	Players storage.PlayerStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Sessions      *session.Store
	SessionCodec  *session.Codec
	Verifier      identity.Verifier
	Team          platform.TeamClient
	Authenticator platform.Authenticator
	Membership    *membership.Controller

	// AdminID is the account allowed into the moderation console
	AdminID model.UserID

	mongoStore *mongostorage.Store
}

// New creates a new application with all dependencies wired from config.
// The returned App holds live Mongo and Redis connections; call Close when
// done with it.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	rnd := random.New()

	mongoCfg := mongostorage.DefaultConfig()
	mongoCfg.URL = cfg.MongoURL
	mongoCfg.Database = cfg.MongoDatabase
	players, err := mongostorage.New(ctx, mongoCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to document store: %w", err)
	}
	if err := players.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensuring indexes: %w", err)
	}

	sessionCfg := session.DefaultConfig()
	sessionCfg.Secret = cfg.SessionSecret
	sessionCfg.TTL = cfg.SessionTTL
	sessions, err := session.NewStore(cfg.RedisURL, clk, rnd, sessionCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to session store: %w", err)
	}

	identityCfg := identity.DefaultConfig()
	identityCfg.Endpoint = cfg.IdentityEndpoint
	identityCfg.Locale = cfg.IdentityLocale
	verifier := identity.New(identityCfg, logger)

	platformCfg := platform.DefaultConfig()
	platformCfg.BaseURL = cfg.PlatformURL
	platformCfg.TeamID = cfg.TeamID
	team := platform.New(platformCfg, logger)

	authenticator := platform.NewOAuth(platform.OAuthConfig{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		AuthURL:      cfg.OAuthAuthURL,
		TokenURL:     cfg.OAuthTokenURL,
		RedirectURL:  cfg.RedirectURL(),
	}, team)

	app := newWithDependencies(players, team, verifier, authenticator, sessions, clk, rnd, cfg.SessionSecret, logger)
	app.AdminID = model.UserID(cfg.AdminUserID)
	app.mongoStore = players
	return app, nil
}

// Close releases the App's external connections
func (a *App) Close(ctx context.Context) error {
	if a.mongoStore == nil {
		return nil
	}
	return a.mongoStore.Close(ctx)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	players storage.PlayerStore,
	team platform.TeamClient,
	verifier identity.Verifier,
	authenticator platform.Authenticator,
	sessions *session.Store,
	clk clock.Clock,
	rnd random.Random,
	sessionSecret string,
	logger *slog.Logger,
) *App {
	return &App{
		Players:       players,
		Clock:         clk,
		Random:        rnd,
		Sessions:      sessions,
		SessionCodec:  session.NewCodec(sessionSecret),
		Verifier:      verifier,
		Team:          team,
		Authenticator: authenticator,
		Membership:    membership.NewController(players, team, verifier, clk, logger),
	}
}
