package config

import (
	"context"

	"github.com/matzehuels/goodfirst/pkg/cache"
	gferr "github.com/matzehuels/goodfirst/pkg/errors"
)

// OpenCache creates the cache selected by CacheBackend. File and redis
// caches sit behind an in-memory LRU tier. noCache forces a NullCache.
func (c Config) OpenCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.Disabled("--no-cache"), nil
	}

	switch c.CacheBackend {
	case CacheNone:
		return cache.Disabled("cache backend none"), nil
	case CacheMemory:
		return cache.NewMemoryCache(cache.DefaultMemoryEntries)
	case CacheFile:
		if c.CacheDir == "" {
			return cache.Disabled("no cache directory"), nil
		}
		fc, err := cache.NewFileCache(c.CacheDir)
		if err != nil {
			return nil, err
		}
		return tiered(fc, c)
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.RedisURL, appName+":")
		if err != nil {
			return nil, err
		}
		return tiered(rc, c)
	}
	return nil, gferr.New(gferr.ErrCodeInvalidConfig, "invalid cache backend: %q", c.CacheBackend)
}

func tiered(slow cache.Cache, c Config) (cache.Cache, error) {
	mem, err := cache.NewMemoryCache(cache.DefaultMemoryEntries)
	if err != nil {
		slow.Close()
		return nil, err
	}
	return cache.NewTiered(mem, slow, c.CacheTTL), nil
}
