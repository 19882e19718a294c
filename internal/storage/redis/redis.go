package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache: key not found")

// scanBatch is both the SCAN count hint and the DEL batch size.
const scanBatch = 100

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Cache stores JSON values in Redis and keeps per-user request counters.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

func New(opts Options, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("successfully connected to Redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))

	return &Cache{
		client: client,
		logger: logger.Named("cache"),
	}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// fail logs a Redis error for op and returns it wrapped.
func (c *Cache) fail(op string, err error, fields ...zap.Field) error {
	c.logger.Error("redis "+op+" failed", append(fields, zap.Error(err))...)
	return fmt.Errorf("redis %s: %w", op, err)
}

// Set stores value as JSON under key for ttl. A zero ttl keeps it forever.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return c.fail("set", err, zap.String("key", key))
	}
	return nil
}

// Get decodes the JSON stored at key into dest. A missing key yields ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case err != nil:
		return c.fail("get", err, zap.String("key", key))
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return c.fail("del", err, zap.Strings("keys", keys))
	}
	return nil
}

// DeletePattern removes every key matching pattern and returns how many it
// found. It walks the keyspace with SCAN so a large cache does not block
// the server.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) (int, error) {
	var deleted int
	batch := make([]string, 0, scanBatch)

	flush := func() error {
		if err := c.Delete(ctx, batch...); err != nil {
			return err
		}
		deleted += len(batch)
		batch = batch[:0]
		return nil
	}

	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, c.fail("scan", err, zap.String("pattern", pattern))
	}

	if err := flush(); err != nil {
		return deleted, err
	}
	return deleted, nil
}

// IncrementWithExpiry increments the counter at key and restarts its TTL.
func (c *Cache) IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, c.fail("incr", err, zap.String("key", key))
	}

	return incr.Val(), nil
}
