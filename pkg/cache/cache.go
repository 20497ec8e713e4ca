// Package cache provides byte-level caching backends for HTTP responses.
//
// Registry metadata and issue lists change slowly compared to how often a
// maintainer reruns a report, so [integrations.Client] stores decoded
// responses here keyed by request. All backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under ~/.cache/goodfirst (CLI default)
//   - [MemoryCache]: bounded in-process LRU
//   - [RedisCache]: shared cache for the API server
//   - [Tiered]: a fast cache in front of a slower one
//   - [NullCache]: caching disabled (--no-cache)
//
// Entries expire after the TTL given to [Cache.Set]; a TTL of 0 never expires.
//
// [integrations.Client]: github.com/matzehuels/goodfirst/pkg/integrations.Client
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key. Implementations must be safe
// for concurrent use: the pipeline resolves dependencies in parallel.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key for ttl (0 means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the backend.
	Close() error
}
