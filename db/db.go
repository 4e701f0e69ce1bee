// Package db bootstraps the MongoDB client shared by all repositories.
// Connection pooling and reconnection are delegated to the driver; the rest of
// the application only sees a *mongo.Database handle.
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/config"
)

// Connect establishes the MongoDB client and verifies connectivity with a
// ping. The returned client must be closed with Disconnect on shutdown.
func Connect(cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, apperror.NewDatabaseError("failed to connect to mongodb", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Release the client's resources; the caller gets nothing back.
		_ = client.Disconnect(context.Background())
		return nil, nil, apperror.NewDatabaseError("failed to ping mongodb", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Disconnect closes the client, bounding the teardown with its own timeout so
// shutdown cannot hang on a dead server.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
