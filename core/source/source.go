package source

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Handle wraps a connected source database. Callers own the handle for the
// duration of a run and must Close it afterwards.
type Handle struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a connection to the source store and verifies it with
// a ping.
func Connect(ctx context.Context, cfg Config) (*Handle, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeoutDuration).
		SetServerSelectionTimeout(timeoutDuration)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to source store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping source store: %w", err)
	}

	return &Handle{client: client, db: client.Database(cfg.Database)}, nil
}

// Database exposes the underlying database for collaborators such as
// extraction.
func (h *Handle) Database() *mongo.Database {
	return h.db
}

// Close releases the connection.
func (h *Handle) Close(ctx context.Context) error {
	return h.client.Disconnect(ctx)
}
