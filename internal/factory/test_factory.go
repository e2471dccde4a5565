package factory

import (
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tkdr/teamgate/internal/dependencies/mocks"
	"github.com/tkdr/teamgate/internal/dependencies/random"
	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/services/session"
	"github.com/tkdr/teamgate/internal/storage/memory"
	"github.com/tkdr/teamgate/internal/testutil"
)

// testSessionSecret is a fixed signing secret for test cookies
const testSessionSecret = "test-session-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	FakeTeam     *mocks.FakeTeam
	FakeVerifier *mocks.FakeVerifier
	FakeAuth     *mocks.FakeAuthenticator
	Store        *memory.Store
	Redis        *miniredis.Miniredis
}

// NewTestApp creates an App configured for testing: an in-memory player
// store, a miniredis-backed session store, and scripted fakes for the chess
// platform and the identity registry. Call Close when done.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := random.New()

	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	sessionCfg := session.DefaultConfig()
	sessionCfg.Secret = testSessionSecret
	sessions := session.NewStoreWithClient(client, mockClock, rnd, sessionCfg)

	team := mocks.NewFakeTeam()
	verifier := mocks.NewFakeVerifier()
	auth := mocks.NewFakeAuthenticator("player-one", "PlayerOne")

	app := newWithDependencies(store, team, verifier, auth, sessions, mockClock, rnd, testSessionSecret, testutil.NopLogger())
	app.AdminID = model.UserID("admin")

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		FakeTeam:     team,
		FakeVerifier: verifier,
		FakeAuth:     auth,
		Store:        store,
		Redis:        mr,
	}
}

// Close stops the embedded redis server
func (t *TestApp) Close() {
	t.Redis.Close()
}
