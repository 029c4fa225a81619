// Package bootstrap opens the backing services shared by the signupdesk
// binaries: the record store, Redis and the snapshot exporter.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/signupdesk/signupdesk/backend/internal/config"
	"github.com/signupdesk/signupdesk/backend/internal/database"
	"github.com/signupdesk/signupdesk/backend/internal/submission/repository"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	recordsCollection    = "submissions"
	dispatchesCollection = "sms_dispatches"
	mongoAttempts        = 5
)

// Store is the opened record store. Mongo is nil unless the mongo backend
// connected; callers use it for the dispatch history and must Close the store.
type Store struct {
	Repo  repository.Repository
	Mongo *mongo.Database

	client *mongo.Client
}

// Dispatches returns the SMS history collection, or nil without Mongo.
func (s *Store) Dispatches() *mongo.Collection {
	if s.Mongo == nil {
		return nil
	}
	return s.Mongo.Collection(dispatchesCollection)
}

func (s *Store) Close(ctx context.Context) {
	if s.client != nil {
		_ = s.client.Disconnect(ctx)
	}
}

// OpenStore selects the record backend from cfg. A mongo backend that cannot
// be reached falls back to the JSON file at cfg.Store.DataFile.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		logger.Warnf("using in-memory record store: submissions are lost on restart")
		return &Store{Repo: repository.NewMemoryRepo()}, nil
	case "mongo":
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoAttempts)
		if err != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts, falling back to %s: %v", mongoAttempts, cfg.Store.DataFile, err)
			break
		}
		db := client.Database(cfg.MongoDB.Database)
		repo, err := repository.NewMongoRepo(ctx, db.Collection(recordsCollection))
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Infof("using MongoDB record store db=%s", cfg.MongoDB.Database)
		return &Store{Repo: repo, Mongo: db, client: client}, nil
	}

	repo, err := repository.NewFileRepo(cfg.Store.DataFile)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	logger.Infof("using file record store path=%s", repo.Path())
	return &Store{Repo: repo}, nil
}

// OpenRedis returns a connected client, or nil when Redis is not configured
// or does not answer a ping.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Addr() == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr(), Password: cfg.Password, DB: cfg.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s): %v", cfg.Addr(), err)
		_ = client.Close()
		return nil
	}
	logger.Infof("connected to Redis at %s", cfg.Addr())
	return client
}
