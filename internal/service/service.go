// Package service holds the record operations used by the front-ends. It
// keeps Redis in front of Postgres for reads and drops stale entries on
// writes; Postgres stays the source of truth.
package service

import (
	"context"
	"errors"
	"time"

	"jobly/internal/storage/redis"

	"go.uber.org/zap"
)

// Cache is the subset of redis.Cache the services rely on.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

// cacheAside wraps an optional Cache. Every cache failure is logged and
// otherwise ignored: a request never fails because Redis did.
type cacheAside struct {
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// load reports whether key was found and decoded into dest.
func (c cacheAside) load(ctx context.Context, key string, dest interface{}) bool {
	if c.cache == nil {
		return false
	}

	err := c.cache.Get(ctx, key, dest)
	if err == nil {
		c.logger.Debug("cache hit", zap.String("key", key))
		return true
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (c cacheAside) store(ctx context.Context, key string, value interface{}) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c cacheAside) drop(ctx context.Context, keys ...string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c cacheAside) dropMatching(ctx context.Context, patterns ...string) {
	if c.cache == nil {
		return
	}
	for _, pattern := range patterns {
		n, err := c.cache.DeletePattern(ctx, pattern)
		if err != nil {
			c.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		c.logger.Debug("cache entries dropped", zap.String("pattern", pattern), zap.Int("count", n))
	}
}
