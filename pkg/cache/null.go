package cache

import (
	"context"
	"time"
)

// NullCache stores nothing; every Get is a miss. Reason records why
// caching is off, for log lines.
type NullCache struct {
	Reason string
}

// NewNullCache returns a NullCache without a reason.
func NewNullCache() Cache { return Disabled("") }

// Disabled returns a NullCache noting why caching is off.
func Disabled(reason string) *NullCache { return &NullCache{Reason: reason} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

// IsDisabled reports whether c caches nothing, and why.
func IsDisabled(c Cache) (string, bool) {
	n, ok := c.(*NullCache)
	if !ok {
		return "", false
	}
	return n.Reason, true
}
