// Package storage implements the submission store on MongoDB. It exposes the
// query primitives the stats engine and handlers consume: filtered counts,
// grouped counts, array-unwind counts, sorted/limited finds, and point
// lookups by id.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/config"
)

// connectTimeout bounds the initial connection and ping.
const connectTimeout = 10 * time.Second

// ErrNotFound is returned when no submission matches the given id.
var ErrNotFound = errors.New("submission not found")

// Connect opens a client, verifies connectivity with a ping, and returns the
// submissions collection handle.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if pingErr := client.Ping(ctx, readpref.Primary()); pingErr != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", pingErr)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	return client, coll, nil
}

// Disconnect closes the client, bounded by connectTimeout.
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
