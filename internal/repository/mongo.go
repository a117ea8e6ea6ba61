package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ansh-patel-repos/job-listing-portal/internal/config"
)

// Connect opens a client against the configured document store and verifies
// it with a ping before anything else depends on it.
func Connect(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(
		options.Client().
			ApplyURI(cfg.MongoURI).
			SetConnectTimeout(cfg.MongoTimeout),
	)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client.Database(cfg.MongoDB), nil
}
