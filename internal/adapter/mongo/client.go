// Package mongo stores synset tasks and their per-method results in MongoDB.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/wordnet-translator/internal/config"
)

// Store is a task store backed by one collection.
type Store struct {
	client *driver.Client
	coll   *driver.Collection
	log    *slog.Logger
}

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := driver.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		log:    logger.With("adapter", "mongo"),
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo: disconnect: %w", err)
	}
	return nil
}
