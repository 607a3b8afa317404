package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/clockwerk/clockwerk-backend/pkg/config"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// Collection names
const (
	CollectionTimeEntries  = "timeEntries"
	CollectionProjects     = "projects"
	CollectionUsers        = "users"
	CollectionGlobals      = "globalSettings"
	CollectionTransactions = "transactions"
)

// DB wraps the Mongo client with the application database handle
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

// New connects to the document store
func New(cfg *config.MongoConfig, log *logger.Logger) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	return &DB{
		client: client,
		db:     client.Database(cfg.Database),
		logger: log,
	}, nil
}

// Collection returns a handle to a named collection
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping checks the document store connection
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from the document store
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Health returns the health status of the document store
func (d *DB) Health(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "up",
	}

	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		status["status"] = "down"
		status["error"] = err.Error()
	}

	return status
}
