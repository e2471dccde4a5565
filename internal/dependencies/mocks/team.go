package mocks

import (
	"context"
	"sync"

	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/platform"
)

// FakeTeam is a scripted implementation of the platform team client
type FakeTeam struct {
	mu sync.Mutex

	// Members is the roster returned by ListMembers
	Members []model.UserID
	ListErr error

	JoinOK    bool
	JoinErr   error
	JoinCalls int

	KickOK  bool
	KickErr error
	// Kicked records the ids passed to Kick
	Kicked []model.UserID
}

// Ensure FakeTeam implements the client interface
var _ platform.TeamClient = (*FakeTeam)(nil)

// NewFakeTeam creates a fake team client that accepts joins and kicks
func NewFakeTeam() *FakeTeam {
	return &FakeTeam{JoinOK: true, KickOK: true}
}

func (f *FakeTeam) ListMembers(_ context.Context, _ string) ([]model.UserID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]model.UserID(nil), f.Members...), nil
}

func (f *FakeTeam) Join(_ context.Context, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.JoinCalls++
	return f.JoinOK, f.JoinErr
}

func (f *FakeTeam) Kick(_ context.Context, userID model.UserID, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Kicked = append(f.Kicked, userID)
	return f.KickOK, f.KickErr
}
