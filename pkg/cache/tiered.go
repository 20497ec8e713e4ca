package cache

import (
	"context"
	"errors"
	"time"
)

// Tiered reads from a fast cache first and falls back to a slow one,
// promoting hits. Writes go to both.
type Tiered struct {
	fast Cache
	slow Cache
	// promoteTTL is used when copying a slow hit into the fast tier,
	// since the remaining TTL of the slow entry is not known.
	promoteTTL time.Duration
}

// NewTiered layers fast over slow. Hits in slow are copied into fast
// with promoteTTL.
func NewTiered(fast, slow Cache, promoteTTL time.Duration) *Tiered {
	return &Tiered{fast: fast, slow: slow, promoteTTL: promoteTTL}
}

// Get retrieves a value from the fast tier, then the slow tier.
func (c *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := c.fast.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, ok, err := c.slow.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.fast.Set(ctx, key, data, c.promoteTTL)
	return data, true, nil
}

// Set writes through to both tiers.
func (c *Tiered) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return errors.Join(c.fast.Set(ctx, key, data, ttl), c.slow.Set(ctx, key, data, ttl))
}

// Delete removes key from both tiers.
func (c *Tiered) Delete(ctx context.Context, key string) error {
	return errors.Join(c.fast.Delete(ctx, key), c.slow.Delete(ctx, key))
}

// Close closes both tiers.
func (c *Tiered) Close() error {
	return errors.Join(c.fast.Close(), c.slow.Close())
}

var _ Cache = (*Tiered)(nil)
