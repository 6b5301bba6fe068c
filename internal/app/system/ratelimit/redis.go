package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCounter is a fixed-window Counter shared across instances through
// Redis. When Redis is unavailable it fails open and logs.
type RedisCounter struct {
	rdb    *redis.Client
	prefix string
	limit  int64
	window time.Duration
	log    *zap.Logger
}

// NewRedisCounter returns a Counter storing its windows under prefix.
func NewRedisCounter(rdb *redis.Client, prefix string, limit int, window time.Duration, logger *zap.Logger) *RedisCounter {
	return &RedisCounter{
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		log:    logger,
	}
}

// Allow increments the key's counter and starts its window on first use.
func (c *RedisCounter) Allow(ctx context.Context, key string) bool {
	k := c.prefix + key

	pipe := c.rdb.Pipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("rate limit counter unavailable; allowing", zap.String("key", k), zap.Error(err))
		return true
	}

	// A key without expiry is a fresh window (or one that lost its TTL).
	if ttl.Val() < 0 {
		if err := c.rdb.Expire(ctx, k, c.window).Err(); err != nil {
			c.log.Warn("rate limit expire failed", zap.String("key", k), zap.Error(err))
		}
	}

	return incr.Val() <= c.limit
}

// Reset deletes the key's window.
func (c *RedisCounter) Reset(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, c.prefix+key).Err(); err != nil {
		c.log.Warn("rate limit reset failed", zap.String("key", c.prefix+key), zap.Error(err))
	}
}
