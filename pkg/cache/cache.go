// Package cache provides artifact caching for rendered visualizations.
//
// Rendering a large tree to PNG means a scan, a layout pass, and a shell
// out to rsvg-convert; caching the result keyed by table content and
// render options makes repeated invocations cheap. Three backends are
// provided:
//
//   - FileCache: entries as files under a directory, for CLI usage
//   - RedisCache: shared cache for serve deployments
//   - NullCache: disables caching
//
// Keys are built with [ArtifactKey] from a content hash plus the render
// options, so any change to either produces a fresh entry.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached artifacts stay valid.
const DefaultTTL = 24 * time.Hour

// Cache is the interface for artifact cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
