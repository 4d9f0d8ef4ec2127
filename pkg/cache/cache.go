// Package cache stores rendered chart artifacts.
//
// A Cache maps string keys to byte slices with an optional time to live.
// Three backends are provided:
//
//   - FileCache keeps entries as JSON files under a directory; the CLI uses
//     it by default (~/.cache/stackchart).
//   - RedisCache keeps entries in Redis so several render servers can share
//     one cache.
//   - NullCache never stores anything, for --no-cache and tests.
//
// Keys are built by a Keyer from the content hash of the chart document and
// the render options, so an identical request always maps to the same key.
package cache

import (
	"context"
	"time"
)

// Time to live of cached entries.
const (
	// TTLArtifact applies to rendered SVG, PNG, PDF and JSON output. The key
	// already covers the document content, so entries only age out to bound
	// disk use.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for rendered artifacts.
//
// Get reports a miss as (nil, false, nil); an error means the backend
// itself failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
