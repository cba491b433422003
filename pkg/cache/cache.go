// Package cache stores computed layouts keyed by schema content and layout
// options.
//
// # Backends
//
// [Cache] has four implementations:
//
//   - [NullCache]: never stores anything, used with --no-cache
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [MongoCache]: shared cache with a TTL index, for deployments that
//     already run MongoDB
//
// # Keys
//
// Keys are built by a [Keyer]. [DefaultKeyer] hashes the options together
// with the schema hash, so any change to bounds or settings produces a new
// key. [ScopedKeyer] prefixes keys, for example with the engine version, so
// that an upgraded engine never serves layouts computed by an older one.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long a computed layout stays cached. Layouts depend only
// on their inputs, so the TTL bounds storage rather than staleness.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with expiration.
//
// Get reports a miss with ok=false and a nil error. A non-nil error means the
// backend failed; callers treat that as a miss and carry on.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
