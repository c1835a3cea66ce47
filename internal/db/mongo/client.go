package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a MongoDB store.
type Config struct {
	URI                   string
	Database              string
	ItemsCollection       string
	PreferencesCollection string
	Username              string
	Password              string
	ServerSelection       time.Duration
}

// Store implements db.Store on top of the official MongoDB driver.
type Store struct {
	client *mongo.Client
	items  *mongo.Collection
	prefs  *mongo.Collection
}

// noID hides the server-generated _id from every read.
var noID = bson.M{"_id": 0}

// NewStore connects to MongoDB. Server selection is deferred to the first
// operation, so an unreachable server does not prevent startup.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{Username: cfg.Username, Password: cfg.Password})
	}
	if cfg.ServerSelection > 0 {
		opts.SetServerSelectionTimeout(cfg.ServerSelection)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return newStore(client, cfg.Database, cfg.ItemsCollection, cfg.PreferencesCollection), nil
}

func newStore(client *mongo.Client, database, items, prefs string) *Store {
	if items == "" {
		items = "faq_items"
	}
	if prefs == "" {
		prefs = "user_preferences"
	}
	d := client.Database(database)
	return &Store{
		client: client,
		items:  d.Collection(items),
		prefs:  d.Collection(prefs),
	}
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// EnsureSchema creates the lookup indexes. Safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.items.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		return &db.Error{Op: db.OpCreateIndexes, Err: fmt.Errorf("%s: %w", s.items.Name(), err)}
	}

	_, err = s.prefs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return &db.Error{Op: db.OpCreateIndexes, Err: fmt.Errorf("%s: %w", s.prefs.Name(), err)}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// WaitForReady polls Ping until the server responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func itemFilter(f db.ItemFilter) bson.M {
	if f.Category == "" {
		return bson.M{}
	}
	return bson.M{"category": f.Category}
}
