package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestIsDisabled(t *testing.T) {
	if reason, ok := IsDisabled(Disabled("--no-cache")); !ok || reason != "--no-cache" {
		t.Errorf("IsDisabled(Disabled) = %q, %v", reason, ok)
	}
	if _, ok := IsDisabled(NewNullCache()); !ok {
		t.Error("NewNullCache should be disabled")
	}
	mem, err := NewMemoryCache(4)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := IsDisabled(mem); ok {
		t.Error("MemoryCache reported as disabled")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		namespace string
		parts     []string
		want      string
	}{
		{"npm", []string{"axios"}, "npm:axios"},
		{"github", []string{"issues", "axios/axios", "good first issue"}, "github:issues:axios/axios:good first issue"},
		{"ns", nil, "ns:"},
	}
	for _, tt := range tests {
		if got := Key(tt.namespace, tt.parts...); got != tt.want {
			t.Errorf("Key(%q, %v) = %q, want %q", tt.namespace, tt.parts, got, tt.want)
		}
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = %v, %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "npm:axios", []byte(`{"name":"axios"}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "npm:axios")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v; want hit", hit, err)
	}
	if string(data) != `{"name":"axios"}` {
		t.Errorf("Get data = %s", data)
	}

	if err := c.Delete(ctx, "npm:axios"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "npm:axios"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "npm:axios"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpired(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "key", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("Get after expiry = %v, %v; want miss", hit, err)
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	_ = c.Set(ctx, "key", []byte("v"), 0)
	if err := os.WriteFile(c.path("key"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("Get of corrupt entry = %v, %v; want miss", hit, err)
	}
}

func TestFileCacheConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", []byte(fmt.Sprintf("value-%d", i)), time.Hour)
		}()
	}
	wg.Wait()

	if _, hit, err := c.Get(ctx, "shared"); err != nil || !hit {
		t.Errorf("Get after concurrent writes = %v, %v; want hit", hit, err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("oldest entry should have been evicted")
	}
	if data, hit, _ := c.Get(ctx, "c"); !hit || string(data) != "3" {
		t.Errorf("Get(c) = %q, %v; want 3, true", data, hit)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	_ = c.Delete(ctx, "c")
	if _, hit, _ := c.Get(ctx, "c"); hit {
		t.Error("entry still present after Delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewMemoryCache(0)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed, Len() = %d", c.Len())
	}
}

func TestMemoryCacheCopiesInput(t *testing.T) {
	ctx := context.Background()
	c, _ := NewMemoryCache(0)

	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	data, _, _ := c.Get(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("cached value mutated through caller slice: %q", data)
	}
}

func TestTiered(t *testing.T) {
	ctx := context.Background()
	fast, _ := NewMemoryCache(0)
	slow, _ := NewFileCache(t.TempDir())
	c := NewTiered(fast, slow, time.Minute)

	_ = slow.Set(ctx, "only-slow", []byte("s"), time.Hour)
	data, hit, err := c.Get(ctx, "only-slow")
	if err != nil || !hit || string(data) != "s" {
		t.Fatalf("Get(only-slow) = %q, %v, %v", data, hit, err)
	}
	if _, hit, _ := fast.Get(ctx, "only-slow"); !hit {
		t.Error("slow hit should be promoted to fast tier")
	}

	if err := c.Set(ctx, "both", []byte("b"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := slow.Get(ctx, "both"); !hit {
		t.Error("Set should write through to the slow tier")
	}

	_ = c.Delete(ctx, "both")
	if _, hit, _ := c.Get(ctx, "both"); hit {
		t.Error("Delete should remove from both tiers")
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("GOODFIRST_TEST_REDIS")
	if url == "" {
		t.Skip("GOODFIRST_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, "goodfirst-test:")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := fmt.Sprintf("k-%d", time.Now().UnixNano())
	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get(missing) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, key); err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url", ""); err == nil {
		t.Error("NewRedisCache should reject an invalid URL")
	}
}
