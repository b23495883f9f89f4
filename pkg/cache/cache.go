package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLGraph is how long a generated panel graph stays cached. Graphs only
	// depend on the dump and the generation options, so they live long.
	TTLGraph = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with hit == false and a nil error. Errors are reserved
// for backend failures; callers treat them like a miss.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
