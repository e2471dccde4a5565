package platform

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/tkdr/teamgate/internal/model"
)

// Scopes requested from the OAuth provider: enough to read the account and
// manage its team membership, nothing more.
var oauthScopes = []string{"preference:read", "team:write"}

// Authenticator drives the OAuth authorization-code flow for the platform
type Authenticator interface {
	// AuthCodeURL returns the provider authorization URL carrying the
	// anti-forgery state value
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a bearer token
	Exchange(ctx context.Context, code string) (string, error)

	// Account returns the id and username of the token's account
	Account(ctx context.Context, token string) (model.UserID, string, error)
}

// OAuthConfig holds provider endpoints and client credentials
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
}

// OAuth implements Authenticator on top of golang.org/x/oauth2
type OAuth struct {
	conf   *oauth2.Config
	client *Client
}

// Ensure OAuth implements Authenticator
var _ Authenticator = (*OAuth)(nil)

// NewOAuth creates an authenticator for the platform's OAuth provider
func NewOAuth(cfg OAuthConfig, client *Client) *OAuth {
	return &OAuth{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       oauthScopes,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		client: client,
	}
}

// AuthCodeURL returns the provider authorization URL for the given state
func (o *OAuth) AuthCodeURL(state string) string {
	return o.conf.AuthCodeURL(state)
}

// Exchange trades an authorization code for a bearer access token
func (o *OAuth) Exchange(ctx context.Context, code string) (string, error) {
	token, err := o.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token.AccessToken, nil
}

// Account fetches the authenticated account behind a token
func (o *OAuth) Account(ctx context.Context, token string) (model.UserID, string, error) {
	return o.client.Account(ctx, token)
}
