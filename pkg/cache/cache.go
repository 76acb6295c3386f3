// Package cache is a small JSON-over-Redis cache. A Store without a client
// is valid and behaves as a permanent miss, so callers never branch on
// whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/shopdesk/pkg/metrics"
)

const driver = "redis"

// Store reads and writes JSON values under a key prefix.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New wraps an existing client. rdb may be nil.
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

// Connect creates a Redis client and verifies it with a ping. On failure the
// returned Store is disabled and the error says why.
func Connect(ctx context.Context, addr, password, prefix string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return New(nil, prefix), errors.Wrap(err, "cache: redis ping")
	}
	return New(rdb, prefix), nil
}

// Available reports whether the store is backed by Redis.
func (s *Store) Available() bool { return s != nil && s.rdb != nil }

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Available() {
		return false
	}

	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues(driver).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(driver).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(driver).Inc()
	return true
}

// Set stores value under key for the given TTL.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "cache: marshal")
	}

	return s.rdb.Set(ctx, s.prefix+key, data, ttl).Err()
}

// Del removes one or more keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if !s.Available() || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	return s.rdb.Del(ctx, full...).Err()
}

// Ping checks the connection. A disabled store is always healthy.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Available() {
		return nil
	}
	return s.rdb.Ping(ctx).Err()
}

// Close releases the client.
func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	return s.rdb.Close()
}
