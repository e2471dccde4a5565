package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tkdr/teamgate/internal/model"
	"github.com/tkdr/teamgate/internal/storage"
)

const collectionName = "players"

// Store is a MongoDB-backed implementation of the player store
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to MongoDB and verifies the connection
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a store with an existing client (for testing)
func NewWithClient(client *mongo.Client, cfg Config) *Store {
	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(collectionName),
	}
}

// Close disconnects from MongoDB
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the govIdSignature index used for duplicate/ban lookups
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "govIdSignature", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating govIdSignature index: %w", err)
	}
	return nil
}

// Ensure Store implements the interface
var _ storage.PlayerStore = (*Store)(nil)

func (s *Store) FindByUserID(ctx context.Context, userID model.UserID) (*model.PlayerRecord, error) {
	var rec model.PlayerRecord
	err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Store) FindBannedBySignature(ctx context.Context, signature string) ([]*model.PlayerRecord, error) {
	return s.findAll(ctx, bson.M{"govIdSignature": signature, "banned": true})
}

func (s *Store) Create(ctx context.Context, rec *model.PlayerRecord) error {
	_, err := s.coll.InsertOne(ctx, rec)
	return err
}

func (s *Store) SetBanned(ctx context.Context, userID model.UserID, banned bool) error {
	res := s.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"banned": banned}},
	)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.ErrRecordNotFound
		}
		return err
	}
	return nil
}

func (s *Store) ListByBanned(ctx context.Context, banned bool) ([]*model.PlayerRecord, error) {
	return s.findAll(ctx, bson.M{"banned": banned})
}

func (s *Store) findAll(ctx context.Context, filter bson.M) ([]*model.PlayerRecord, error) {
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var out []*model.PlayerRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
