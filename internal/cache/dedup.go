// Package cache provides a Redis-backed fast path for signal
// deduplication in front of the durable store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lead-engine:signal:"

// DedupCache remembers processed dedup keys with a TTL. It is an
// optimization only; a miss always falls back to the store.
type DedupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Config holds the cache connection settings.
type Config struct {
	Address  string
	Password string
	Database int
	Timeout  time.Duration
	TTL      time.Duration
}

// NewDedupCache connects to Redis and verifies the connection.
func NewDedupCache(cfg Config) (*DedupCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.Database,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &DedupCache{client: client, ttl: cfg.TTL}, nil
}

// Seen reports whether the dedup key is cached.
func (c *DedupCache) Seen(ctx context.Context, dedupKey string) (bool, error) {
	err := c.client.Get(ctx, keyPrefix+dedupKey).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read dedup key: %w", err)
	}
	return true, nil
}

// MarkSeen caches the dedup key for the configured TTL.
func (c *DedupCache) MarkSeen(ctx context.Context, dedupKey string) error {
	if err := c.client.Set(ctx, keyPrefix+dedupKey, 1, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache dedup key: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *DedupCache) Close() error {
	return c.client.Close()
}
