package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tkdr/teamgate/internal/dependencies/clock"
	"github.com/tkdr/teamgate/internal/dependencies/random"
	"github.com/tkdr/teamgate/internal/model"
)

const keyPrefix = "teamgate"

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const sessionIDLength = 32

// sessionKey returns the Redis key for a session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// Store keeps per-browser sessions in Redis
type Store struct {
	client *redis.Client
	clock  clock.Clock
	random random.Random
	cfg    Config
}

// NewStore connects to Redis and verifies the connection
func NewStore(url string, clk clock.Clock, rnd random.Random, cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewStoreWithClient(client, clk, rnd, cfg), nil
}

// NewStoreWithClient creates a session store with an existing client (for testing)
func NewStoreWithClient(client *redis.Client, clk clock.Clock, rnd random.Random, cfg Config) *Store {
	return &Store{
		client: client,
		clock:  clk,
		random: rnd,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Create makes a fresh empty session and persists it
func (s *Store) Create(ctx context.Context) (*model.Session, error) {
	sess := &model.Session{
		ID:        model.SessionID(s.random.String(sessionIDLength, sessionIDAlphabet)),
		CreatedAt: s.clock.Now(),
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Save persists a session, refreshing its TTL
func (s *Store) Save(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), data, s.cfg.TTL).Err()
}

// Get loads a session by id, or model.ErrSessionNotFound
func (s *Store) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Delete removes a session
func (s *Store) Delete(ctx context.Context, id model.SessionID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}
