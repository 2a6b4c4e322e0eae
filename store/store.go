package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbolis/survey-studio/config"
	"github.com/mbolis/survey-studio/database"
	"github.com/mbolis/survey-studio/log"
)

// KV is an opaque string key-value store. Values are whole serialized
// collections; callers never see partial writes.
type KV interface {
	// Get returns the stored value. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend selected by cfg.Storage.
func Open(ctx context.Context, cfg config.Config) (KV, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return NewMemory(), nil

	case config.StorageSQLite:
		db, err := database.Open(cfg.DBUrl)
		if err != nil {
			return nil, errors.Wrap(err, "store.open.sqlite")
		}
		return NewSQL(db), nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, errors.Wrap(err, "store.open.redis")
		}
		return NewRedis(client, cfg.RedisPrefix), nil

	case config.StorageMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, errors.Wrap(err, "store.open.mongo")
		}
		if err := client.Ping(ctx, nil); err != nil {
			client.Disconnect(context.Background())
			return nil, errors.Wrap(err, "store.open.mongo")
		}
		log.Debugf("connected to mongo database %s", cfg.MongoDatabase)
		return NewMongo(client, client.Database(cfg.MongoDatabase)), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}
