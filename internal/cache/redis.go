package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache shares cached values between processes through Redis.
// Redis failures degrade to a direct fetch; they never fail the call.
type RedisCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis creates a RedisCache storing keys under prefix.
func NewRedis[T any](client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisCache[T] {
	return &RedisCache[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

// GetOrFetch has the same contract as Cache.GetOrFetch, without request collapsing.
func (c *RedisCache[T]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, bool, error) {
	redisKey := c.prefix + key

	raw, err := c.client.Get(ctx, redisKey).Bytes()
	switch {
	case err == nil:
		var value T
		uerr := json.Unmarshal(raw, &value)
		if uerr == nil {
			return value, true, nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", redisKey), zap.Error(uerr))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("redis get failed", zap.String("key", redisKey), zap.Error(err))
	}

	value, err := fetch(ctx)
	if err != nil {
		return value, false, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", zap.String("key", redisKey), zap.Error(err))
		return value, false, nil
	}
	if err := c.client.Set(ctx, redisKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", redisKey), zap.Error(err))
	}

	return value, false, nil
}

// Invalidate removes a specific key from Redis.
func (c *RedisCache[T]) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
