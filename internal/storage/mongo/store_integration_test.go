//go:build integration

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tkdr/teamgate/internal/model"
)

// Run with a live MongoDB:
//
//	MONGO_TEST_URL=mongodb://localhost:27017 go test -tags integration ./internal/storage/mongo

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	if os.Getenv("MONGO_TEST_URL") == "" {
		t.Skip("MONGO_TEST_URL not set")
	}
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	cfg := DefaultConfig()
	cfg.URL = os.Getenv("MONGO_TEST_URL")
	cfg.Database = "teamgate_test"

	s.ctx = context.Background()

	store, err := New(s.ctx, cfg)
	s.Require().NoError(err)
	s.Require().NoError(store.EnsureIndexes(s.ctx))
	s.store = store
}

func (s *StoreSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close(s.ctx)
	}
}

func (s *StoreSuite) SetupTest() {
	s.Require().NoError(s.store.coll.Drop(s.ctx))
	s.Require().NoError(s.store.EnsureIndexes(s.ctx))
}

func (s *StoreSuite) record(userID model.UserID, sig string, banned bool) *model.PlayerRecord {
	return &model.PlayerRecord{
		UserID:         userID,
		UserName:       string(userID),
		FirstName:      "AYSE",
		LastName:       "YILMAZ",
		BirthYear:      1990,
		GovID:          model.MaskGovID("12345678"),
		GovIDSignature: sig,
		CreatedAt:      time.Now().UTC().Truncate(time.Millisecond),
		Banned:         banned,
	}
}

func (s *StoreSuite) TestCreateAndFindByUserID() {
	s.Require().NoError(s.store.Create(s.ctx, s.record("alice", "sig-1", false)))

	got, err := s.store.FindByUserID(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("123*****", got.GovID)
	s.Equal("sig-1", got.GovIDSignature)
}

func (s *StoreSuite) TestFindByUserIDNotFound() {
	_, err := s.store.FindByUserID(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *StoreSuite) TestFindBannedBySignature() {
	_ = s.store.Create(s.ctx, s.record("alice", "sig-1", true))
	_ = s.store.Create(s.ctx, s.record("bob", "sig-1", false))

	banned, err := s.store.FindBannedBySignature(s.ctx, "sig-1")
	s.Require().NoError(err)
	s.Require().Len(banned, 1)
	s.Equal(model.UserID("alice"), banned[0].UserID)
}

func (s *StoreSuite) TestSetBannedRoundTrip() {
	_ = s.store.Create(s.ctx, s.record("alice", "sig-1", false))

	s.Require().NoError(s.store.SetBanned(s.ctx, "alice", true))
	got, _ := s.store.FindByUserID(s.ctx, "alice")
	s.True(got.Banned)

	s.Require().NoError(s.store.SetBanned(s.ctx, "alice", false))
	got, _ = s.store.FindByUserID(s.ctx, "alice")
	s.False(got.Banned)
}

func (s *StoreSuite) TestSetBannedNotFound() {
	s.ErrorIs(s.store.SetBanned(s.ctx, "nobody", true), model.ErrRecordNotFound)
}

func (s *StoreSuite) TestListByBanned() {
	_ = s.store.Create(s.ctx, s.record("alice", "sig-1", false))
	_ = s.store.Create(s.ctx, s.record("bob", "sig-2", true))

	active, err := s.store.ListByBanned(s.ctx, false)
	s.Require().NoError(err)
	s.Len(active, 1)

	banned, err := s.store.ListByBanned(s.ctx, true)
	s.Require().NoError(err)
	s.Len(banned, 1)
}
