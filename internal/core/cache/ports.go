package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
// Callers distinguish a miss from a cache failure with errors.Is.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the caching operations port. It can be implemented by
// different providers (Redis, Memcached, an in-process map for tests).
type Cache interface {
	// Get retrieves a value from the cache by key. An absent key is
	// ErrCacheMiss; any other error is a cache failure.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	Delete(ctx context.Context, key string) error

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
