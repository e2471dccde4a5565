package mocks

import (
	"context"
	"sync"

	"github.com/tkdr/teamgate/internal/services/identity"
)

// FakeVerifier is a scripted implementation of the identity verifier
type FakeVerifier struct {
	mu sync.Mutex

	// Valid is the verification result to return
	Valid bool
	Err   error

	// LastRequest records the most recent submitted tuple
	LastRequest identity.Request
	Calls       int
}

// Ensure FakeVerifier implements the verifier interface
var _ identity.Verifier = (*FakeVerifier)(nil)

// NewFakeVerifier creates a fake verifier that accepts every identity
func NewFakeVerifier() *FakeVerifier {
	return &FakeVerifier{Valid: true}
}

func (f *FakeVerifier) Verify(_ context.Context, req identity.Request) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastRequest = req
	return f.Valid, f.Err
}
