package membership

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tkdr/teamgate/internal/dependencies/mocks"
	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/identity"
	"github.com/tkdr/teamgate/internal/storage/memory"
	"github.com/tkdr/teamgate/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	store      *memory.Store
	team       *mocks.FakeTeam
	verifier   *mocks.FakeVerifier
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.store = memory.New()
	s.team = mocks.NewFakeTeam()
	s.verifier = mocks.NewFakeVerifier()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.store, s.team, s.verifier, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) session(userID model.UserID) *model.Session {
	return &model.Session{
		ID:        "sess-1",
		UserID:    userID,
		UserName:  string(userID),
		AuthToken: "tok-1",
	}
}

func (s *ControllerSuite) request() identity.Request {
	return identity.Request{
		NationalID: "12345678",
		FirstName:  "Ayse",
		LastName:   "Yilmaz",
		BirthYear:  1990,
	}
}

// Verification submission

func (s *ControllerSuite) TestSubmitVerificationSuccess() {
	outcome, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Require().NoError(err)
	s.Equal(OutcomeSuccess, outcome)
	s.Equal(1, s.team.JoinCalls)

	rec, err := s.store.FindByUserID(s.ctx, "alice")
	s.Require().NoError(err)
	s.False(rec.Banned)
	s.Equal("123*****", rec.GovID)
	s.Equal(model.SignGovID("12345678"), rec.GovIDSignature)
	s.Equal(s.clock.CurrentTime, rec.CreatedAt)
}

func (s *ControllerSuite) TestSubmitVerificationInvalidIdentity() {
	s.verifier.Valid = false

	outcome, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Require().NoError(err)
	s.Equal(OutcomeRetry, outcome)
	s.Equal(0, s.team.JoinCalls)

	_, err = s.store.FindByUserID(s.ctx, "alice")
	s.ErrorIs(err, model.ErrRecordNotFound, "no record on rejected verification")
}

func (s *ControllerSuite) TestSubmitVerificationVerifierError() {
	s.verifier.Err = errors.New("registry down")

	outcome, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Error(err)
	s.Equal(OutcomeError, outcome)
}

func (s *ControllerSuite) TestSubmitVerificationBanPropagatesToAlias() {
	// alice was banned; the same identity returns as account "alice2".
	first, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Require().NoError(err)
	s.Require().Equal(OutcomeSuccess, first)
	s.Require().NoError(s.store.SetBanned(s.ctx, "alice", true))

	outcome, err := s.controller.SubmitVerification(s.ctx, s.session("alice2"), s.request())
	s.Require().NoError(err)
	s.Equal(OutcomeBanned, outcome)

	rec, err := s.store.FindByUserID(s.ctx, "alice2")
	s.Require().NoError(err)
	s.True(rec.Banned, "alias gets its own banned record")
	s.Equal(1, s.team.JoinCalls, "banned alias never joins the team")
}

func (s *ControllerSuite) TestSubmitVerificationSameBannedAccountWritesNoDuplicate() {
	_, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Require().NoError(err)
	s.Require().NoError(s.store.SetBanned(s.ctx, "alice", true))

	outcome, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Require().NoError(err)
	s.Equal(OutcomeBanned, outcome)

	banned, err := s.store.ListByBanned(s.ctx, true)
	s.Require().NoError(err)
	s.Len(banned, 1, "no duplicate record for the already-banned account")
}

func (s *ControllerSuite) TestSubmitVerificationJoinRefused() {
	s.team.JoinOK = false

	outcome, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Error(err)
	s.Equal(OutcomeError, outcome)

	_, err = s.store.FindByUserID(s.ctx, "alice")
	s.ErrorIs(err, model.ErrRecordNotFound, "no record when join fails")
}

func (s *ControllerSuite) TestSubmitVerificationJoinError() {
	s.team.JoinErr = errors.New("platform down")

	outcome, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Error(err)
	s.Equal(OutcomeError, outcome)
}

// Visitor state

func (s *ControllerSuite) TestResolveStateAnonymous() {
	state, err := s.controller.ResolveState(s.ctx, &model.Session{ID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(model.StateAnonymous, state)
}

func (s *ControllerSuite) TestResolveStateAuthenticated() {
	state, err := s.controller.ResolveState(s.ctx, s.session("alice"))
	s.Require().NoError(err)
	s.Equal(model.StateAuthenticated, state)
}

func (s *ControllerSuite) TestResolveStateVerified() {
	_, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Require().NoError(err)

	state, err := s.controller.ResolveState(s.ctx, s.session("alice"))
	s.Require().NoError(err)
	s.Equal(model.StateVerified, state)
}

func (s *ControllerSuite) TestResolveStateBanned() {
	_, err := s.controller.SubmitVerification(s.ctx, s.session("alice"), s.request())
	s.Require().NoError(err)
	s.Require().NoError(s.store.SetBanned(s.ctx, "alice", true))

	state, err := s.controller.ResolveState(s.ctx, s.session("alice"))
	s.Require().NoError(err)
	s.Equal(model.StateBanned, state)
}

func (s *ControllerSuite) TestDefaultBirthYear() {
	s.Equal(2017, s.controller.DefaultBirthYear())
}

// Admin listings

func (s *ControllerSuite) seedRecord(userID model.UserID, banned bool) {
	_ = s.store.Create(s.ctx, &model.PlayerRecord{
		UserID:         userID,
		UserName:       string(userID),
		GovIDSignature: "sig-" + string(userID),
		Banned:         banned,
		CreatedAt:      s.clock.Now(),
	})
}

func (s *ControllerSuite) TestWaitingAndVerifiedPlayersRosterDiff() {
	s.seedRecord("alice", false)
	s.seedRecord("bob", false)
	s.seedRecord("carol", true)
	s.team.Members = []model.UserID{"bob", "stranger"}

	waiting, err := s.controller.WaitingPlayers(s.ctx, "tok-admin")
	s.Require().NoError(err)
	s.Require().Len(waiting, 1)
	s.Equal(model.UserID("alice"), waiting[0].UserID)

	verified, err := s.controller.VerifiedPlayers(s.ctx, "tok-admin")
	s.Require().NoError(err)
	s.Require().Len(verified, 1)
	s.Equal(model.UserID("bob"), verified[0].UserID)
}

func (s *ControllerSuite) TestWaitingPlayersRosterError() {
	s.seedRecord("alice", false)
	s.team.ListErr = errors.New("platform down")

	_, err := s.controller.WaitingPlayers(s.ctx, "tok-admin")
	s.Error(err)
}

func (s *ControllerSuite) TestBannedPlayers() {
	s.seedRecord("alice", false)
	s.seedRecord("bob", true)

	banned, err := s.controller.BannedPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(banned, 1)
	s.Equal(model.UserID("bob"), banned[0].UserID)
}

// Ban / unban

func (s *ControllerSuite) TestBanKicksAndFlags() {
	s.seedRecord("bob", false)

	s.controller.Ban(s.ctx, "bob", "tok-admin")

	s.Equal([]model.UserID{"bob"}, s.team.Kicked)
	rec, err := s.store.FindByUserID(s.ctx, "bob")
	s.Require().NoError(err)
	s.True(rec.Banned)
}

func (s *ControllerSuite) TestBanSurvivesKickFailure() {
	s.seedRecord("bob", false)
	s.team.KickErr = errors.New("platform down")

	// The dual write is not atomic: the flag still flips when the kick fails.
	s.controller.Ban(s.ctx, "bob", "tok-admin")

	rec, err := s.store.FindByUserID(s.ctx, "bob")
	s.Require().NoError(err)
	s.True(rec.Banned)
}

func (s *ControllerSuite) TestBanSurvivesStoreFailure() {
	// No record exists, so the flag update fails while the kick proceeds.
	s.controller.Ban(s.ctx, "ghost", "tok-admin")

	s.Equal([]model.UserID{"ghost"}, s.team.Kicked)
}

func (s *ControllerSuite) TestUnban() {
	s.seedRecord("bob", true)

	s.Require().NoError(s.controller.Unban(s.ctx, "bob"))

	rec, err := s.store.FindByUserID(s.ctx, "bob")
	s.Require().NoError(err)
	s.False(rec.Banned)
	s.Empty(s.team.Kicked, "unban never touches the roster")
}

func (s *ControllerSuite) TestRejoinTeam() {
	ok, err := s.controller.RejoinTeam(s.ctx, s.session("alice"))
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(1, s.team.JoinCalls)
}
