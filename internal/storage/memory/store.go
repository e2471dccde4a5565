package memory

import (
	"context"
	"sync"

	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/storage"
)

// Store is an in-memory implementation of the player store,
// used for tests and local development
type Store struct {
	mu      sync.RWMutex
	records []*model.PlayerRecord
}

// New creates a new in-memory store
func New() *Store {
	return &Store{}
}

// Ensure Store implements the interface
var _ storage.PlayerStore = (*Store)(nil)

func (s *Store) FindByUserID(_ context.Context, userID model.UserID) (*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.UserID == userID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, model.ErrRecordNotFound
}

func (s *Store) FindBannedBySignature(_ context.Context, signature string) ([]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.PlayerRecord
	for _, rec := range s.records {
		if rec.Banned && rec.GovIDSignature == signature {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) Create(_ context.Context, rec *model.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records = append(s.records, &cp)
	return nil
}

func (s *Store) SetBanned(_ context.Context, userID model.UserID, banned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.UserID == userID {
			rec.Banned = banned
			return nil
		}
	}
	return model.ErrRecordNotFound
}

func (s *Store) ListByBanned(_ context.Context, banned bool) ([]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.PlayerRecord
	for _, rec := range s.records {
		if rec.Banned == banned {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}
