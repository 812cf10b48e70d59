// Package cache provides the read-through collection cache backing the
// full-list endpoints. Each entity family owns one cache key holding a JSON
// snapshot of the complete collection; any write to the family drops the key.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dcfagents/internal/shared/config"
	"dcfagents/internal/shared/logger"
)

// Store is the narrow cache surface the application services depend on.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Invalidate(ctx context.Context, keys ...string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisStore(cfg *config.RedisConfig, log logger.Interface) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &RedisStore{client: client, ttl: ttl, logger: log}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache keys: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// GetOrLoad returns the cached collection under key, loading and caching it
// on a miss. Cache failures degrade to the loader; the endpoint stays up
// when redis is down.
func GetOrLoad[T any](ctx context.Context, store Store, log logger.Interface, key string, loader func(context.Context) ([]T, error)) ([]T, error) {
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Warnw("cache read failed, falling back to source", "key", key, "error", err)
	} else if ok {
		var items []T
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		log.Warnw("cache entry corrupt, reloading", "key", key)
	}

	items, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := store.Set(ctx, key, data); err != nil {
			log.Warnw("cache write failed", "key", key, "error", err)
		}
	}

	return items, nil
}
