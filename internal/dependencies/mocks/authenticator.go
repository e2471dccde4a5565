package mocks

import (
	"context"

	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/platform"
)

// FakeAuthenticator is a scripted implementation of the OAuth authenticator
type FakeAuthenticator struct {
	// AuthURL is the fake provider authorization endpoint
	AuthURL string

	Token       string
	ExchangeErr error
	// LastCode records the most recent authorization code exchanged
	LastCode string

	AccountID   model.UserID
	AccountName string
	AccountErr  error
}

// Ensure FakeAuthenticator implements the authenticator interface
var _ platform.Authenticator = (*FakeAuthenticator)(nil)

// NewFakeAuthenticator creates a fake authenticator for a single account
func NewFakeAuthenticator(id model.UserID, name string) *FakeAuthenticator {
	return &FakeAuthenticator{
		AuthURL:     "https://provider.example/oauth",
		Token:       "tok-" + string(id),
		AccountID:   id,
		AccountName: name,
	}
}

func (f *FakeAuthenticator) AuthCodeURL(state string) string {
	return f.AuthURL + "?state=" + state
}

func (f *FakeAuthenticator) Exchange(_ context.Context, code string) (string, error) {
	f.LastCode = code
	if f.ExchangeErr != nil {
		return "", f.ExchangeErr
	}
	return f.Token, nil
}

func (f *FakeAuthenticator) Account(_ context.Context, _ string) (model.UserID, string, error) {
	if f.AccountErr != nil {
		return "", "", f.AccountErr
	}
	return f.AccountID, f.AccountName, nil
}
