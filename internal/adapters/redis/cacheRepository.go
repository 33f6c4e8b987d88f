package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	cachePort "blog/internal/ports/cache"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultTombstoneTTL bounds how long an invalidated key refuses new values.
// It must outlast the slowest read between its database load and its Set.
const DefaultTombstoneTTL = 30 * time.Second

// tombstone can never be the start of a JSON document.
var tombstone = []byte("\x00invalidated")

// RecordCacheRedis keeps JSON encoded records under plain string keys.
type RecordCacheRedis struct {
	Client       *redis.Client
	TTL          time.Duration
	TombstoneTTL time.Duration
	Logger       *zap.Logger
}

func NewRecordCacheRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RecordCacheRedis {
	return &RecordCacheRedis{
		Client:       client,
		TTL:          ttl,
		TombstoneTTL: DefaultTombstoneTTL,
		Logger:       logger,
	}
}

func (r *RecordCacheRedis) Get(ctx context.Context, key string, dest any) error {
	b, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cachePort.ErrMiss
		}
		return err
	}
	if bytes.Equal(b, tombstone) {
		return cachePort.ErrMiss
	}
	if err := json.Unmarshal(b, dest); err != nil {
		// drop the broken entry so the next read repopulates it
		_ = r.Client.Del(ctx, key).Err()
		return err
	}
	r.Logger.Debug("Cache hit", zap.String("key", key))
	return nil
}

// Set stores value only when the key is empty; a live entry or a tombstone wins.
func (r *RecordCacheRedis) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	stored, err := r.Client.SetNX(ctx, key, b, r.TTL).Result()
	if err != nil {
		return err
	}
	if !stored {
		r.Logger.Debug("Cache write skipped", zap.String("key", key))
	}
	return nil
}

// Invalidate replaces every key with a tombstone that expires after TombstoneTTL.
func (r *RecordCacheRedis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.Client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Set(ctx, key, tombstone, r.TombstoneTTL)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.Logger.Debug("Cache invalidated", zap.Strings("keys", keys))
	return nil
}
