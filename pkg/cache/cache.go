// Package cache provides byte caches for datasets and rendered chart artifacts.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// the shared HTTP service and [NullCache] when caching is disabled. Keys are
// built by a [Keyer] so that every caller agrees on the key layout.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with ok == false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes for cached values.
const (
	TTLHTTP     = 24 * time.Hour
	TTLDataset  = time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
