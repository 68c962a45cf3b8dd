// Package cache stores generated point clouds and rendered artifacts.
//
// Generation is deterministic, so a map set, iteration count and seed fully
// determine the points, and the points plus render options determine every
// artifact. Both are cached under content-hash keys built by a [Keyer].
//
// Backends:
//   - [FileCache]: one JSON entry file per key, for the CLI
//   - [RedisCache]: shared cache for several `ifsgen serve` instances
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs per entry kind.
const (
	TTLPoints   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
