package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// pingTimeout is the timeout for verifying store connectivity.
const pingTimeout = 5 * time.Second

// DB wraps a MongoDB client with Maestro-specific functionality.
// It provides collection access, health checks, and proper lifecycle management.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Config contains document store configuration options.
// These map to the mongo section of config.yaml.
type Config struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name holding all collections.
	Database string

	// ConnectTimeout is the maximum time to establish the initial connection.
	ConnectTimeout time.Duration
}

// Open creates a new document store connection with the specified configuration.
//
// It performs the following setup:
//  1. Connects the driver client with the configured timeout
//  2. Verifies the connection with a primary-node ping
//  3. Selects the configured database
//
// The returned DB owns the underlying connection pool; pass it explicitly
// into repositories rather than holding it as ambient global state.
//
// Parameters:
//   - ctx: Context for connection establishment
//   - cfg: Store configuration
//
// Returns:
//   - *DB: Connected store wrapper
//   - error: If connection or ping fails
func Open(ctx context.Context, cfg Config) (*DB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to document store: %w", err)
	}

	// Connect() does not block for server discovery; ping to verify.
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("verifying document store connection: %w", err)
	}

	return &DB{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Close disconnects from the document store gracefully.
// It should be called when the application shuts down.
//
// Returns:
//   - error: If disconnection fails
func (db *DB) Close(ctx context.Context) error {
	if db.client == nil {
		return nil
	}
	if err := db.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("closing document store: %w", err)
	}
	return nil
}

// Collection returns a handle to the named collection.
func (db *DB) Collection(name string) *mongo.Collection {
	return db.db.Collection(name)
}

// Name returns the selected database name.
func (db *DB) Name() string {
	return db.db.Name()
}

// HealthCheck verifies the document store is accessible and functioning.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("document store health check failed: %w", err)
	}
	return nil
}
