package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tkdr/teamgate/internal/model"
)

// TeamClient wraps the chess platform's team-membership API. All calls
// require a bearer token obtained through the OAuth flow.
type TeamClient interface {
	// ListMembers collects the ids of current team members from the
	// platform's newline-delimited JSON stream
	ListMembers(ctx context.Context, token string) ([]model.UserID, error)

	// Join adds the token's account to the team
	Join(ctx context.Context, token string) (bool, error)

	// Kick removes a member from the team
	Kick(ctx context.Context, userID model.UserID, token string) (bool, error)
}

// Config holds platform client settings
type Config struct {
	// BaseURL is the platform API root (no trailing slash)
	BaseURL string

	// TeamID is the team being gated
	TeamID string

	// Timeout bounds a single API call
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for the platform client
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://lichess.org/api",
		Timeout: 15 * time.Second,
	}
}

// Client calls the chess platform HTTP API
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// Ensure Client implements TeamClient
var _ TeamClient = (*Client)(nil)

// New creates a platform client
func New(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Account returns the id and username of the token's account
func (c *Client) Account(ctx context.Context, token string) (model.UserID, string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/account", token)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var account struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return "", "", fmt.Errorf("decoding account: %w", err)
	}
	if account.ID == "" {
		return "", "", errors.New("account response missing id")
	}
	return model.UserID(account.ID), account.Username, nil
}

// ListMembers streams the team roster and collects member ids. The platform
// emits one JSON object per line; ids are assumed unique upstream.
func (c *Client) ListMembers(ctx context.Context, token string) ([]model.UserID, error) {
	resp, err := c.do(ctx, http.MethodGet, "/team/"+c.cfg.TeamID+"/users", token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var members []model.UserID
	dec := json.NewDecoder(resp.Body)
	for {
		var member struct {
			ID string `json:"id"`
		}
		if err := dec.Decode(&member); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decoding roster stream: %w", err)
		}
		if member.ID != "" {
			members = append(members, model.UserID(member.ID))
		}
	}

	c.logger.Debug("fetched team roster", slog.Int("members", len(members)))
	return members, nil
}

// Join adds the token's account to the team
func (c *Client) Join(ctx context.Context, token string) (bool, error) {
	return c.postOK(ctx, "/team/"+c.cfg.TeamID+"/join", token)
}

// Kick removes a member from the team
func (c *Client) Kick(ctx context.Context, userID model.UserID, token string) (bool, error) {
	return c.postOK(ctx, "/team/"+c.cfg.TeamID+"/kick/"+string(userID), token)
}

func (c *Client) postOK(ctx context.Context, path, token string) (bool, error) {
	resp, err := c.do(ctx, http.MethodPost, path, token)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var result struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return result.OK, nil
}

func (c *Client) do(ctx context.Context, method, path, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling platform %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("platform %s returned status %d", path, resp.StatusCode)
	}
	return resp, nil
}
