package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings for the application
type Config struct {
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// BaseURL is the externally visible origin, used to build the OAuth
	// redirect URL
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	OAuthClientID     string `env:"OAUTH_CLIENT_ID,required"`
	OAuthClientSecret string `env:"OAUTH_CLIENT_SECRET,required"`
	OAuthAuthURL      string `env:"OAUTH_AUTH_URL" envDefault:"https://lichess.org/oauth"`
	OAuthTokenURL     string `env:"OAUTH_TOKEN_URL" envDefault:"https://lichess.org/api/token"`

	PlatformURL string `env:"PLATFORM_URL" envDefault:"https://lichess.org/api"`
	TeamID      string `env:"TEAM_ID,required"`
	AdminUserID string `env:"ADMIN_USER_ID,required"`

	IdentityEndpoint string `env:"IDENTITY_ENDPOINT" envDefault:"https://tckimlik.nvi.gov.tr/Service/KPSPublic.asmx"`
	IdentityLocale   string `env:"IDENTITY_LOCALE" envDefault:"tr"`

	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RedisURL      string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	MongoURL      string `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"teamgate"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// RedirectURL returns the OAuth callback URL under the configured base URL
func (c Config) RedirectURL() string {
	return c.BaseURL + "/callback"
}
