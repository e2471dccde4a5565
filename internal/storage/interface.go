package storage

import (
	"context"

	"github.com/tkdr/teamgate/internal/model"
)

// PlayerStore defines persistence for player verification records
type PlayerStore interface {
	// FindByUserID returns the record for a platform account,
	// or model.ErrRecordNotFound
	FindByUserID(ctx context.Context, userID model.UserID) (*model.PlayerRecord, error)

	// FindBannedBySignature returns all banned records sharing a
	// national-id signature
	FindBannedBySignature(ctx context.Context, signature string) ([]*model.PlayerRecord, error)

	// Create inserts a new record. Uniqueness is not enforced: re-running
	// verification can create duplicates for the same identity.
	Create(ctx context.Context, rec *model.PlayerRecord) error

	// SetBanned flips the banned flag on an account's record,
	// or returns model.ErrRecordNotFound
	SetBanned(ctx context.Context, userID model.UserID, banned bool) error

	// ListByBanned returns every record with the given banned flag
	ListByBanned(ctx context.Context, banned bool) ([]*model.PlayerRecord, error)
}
