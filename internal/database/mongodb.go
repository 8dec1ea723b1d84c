package database

import (
	"context"
	"fmt"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens and pings a MongoDB client, retrying with exponential backoff
// starting at one second. attempts below 1 means a single try. Callers own
// client.Disconnect.
func Connect(ctx context.Context, cfg config.MongoDBConfig, attempts int) (*mongo.Client, error) {
	if attempts < 1 {
		attempts = 1
	}
	backoff := time.Second
	var err error
	for i := 1; i <= attempts; i++ {
		var client *mongo.Client
		client, err = connectOnce(ctx, cfg)
		if err == nil {
			return client, nil
		}
		if i == attempts {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", i, attempts, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("mongo: %d attempts: %w", attempts, err)
}

func connectOnce(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetAppName("skillboard"))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
