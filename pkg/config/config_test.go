package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/goodfirst/pkg/cache"
	gferr "github.com/matzehuels/goodfirst/pkg/errors"
	"github.com/matzehuels/goodfirst/pkg/observability"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Label != "good first issue" || cfg.PerPage != 30 || cfg.Timeout != 10*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Concurrency != 0 {
		t.Errorf("Concurrency = %d, want unbounded (0)", cfg.Concurrency)
	}
}

func TestLoader_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
label = "help wanted"
per_page = 10
timeout = "5s"
format = "json"
`)
	dotenv := writeFile(t, dir, ".env", "GITHUB_TOKEN=from-dotenv\nGOODFIRST_LABEL=from-dotenv\nGOODFIRST_PER_PAGE=20\n")

	cfg, err := Loader{
		Path:   path,
		DotEnv: dotenv,
		LookupEnv: envMap(map[string]string{
			"GOODFIRST_LABEL":   "from-env",
			"GOODFIRST_TIMEOUT": "2s",
		}),
	}.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Label = "from-env"          // env beats .env and file
	want.GitHubToken = "from-dotenv" // .env fills unset variables
	want.PerPage = 20                // .env beats file
	want.Timeout = 2 * time.Second
	want.Format = "json" // file beats default
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Loader{
		DotEnv:    filepath.Join(t.TempDir(), ".env"),
		LookupEnv: envMap(nil),
	}.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Label != "good first issue" {
		t.Errorf("Label = %q", cfg.Label)
	}
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	noEnv := filepath.Join(dir, "none.env")

	tests := []struct {
		name   string
		loader Loader
		code   gferr.Code
	}{
		{
			name:   "explicit file missing",
			loader: Loader{Path: filepath.Join(dir, "absent.toml"), DotEnv: noEnv, LookupEnv: envMap(nil)},
			code:   gferr.ErrCodeFileNotFound,
		},
		{
			name:   "malformed toml",
			loader: Loader{Path: writeFile(t, dir, "bad.toml", "label = "), DotEnv: noEnv, LookupEnv: envMap(nil)},
			code:   gferr.ErrCodeInvalidConfig,
		},
		{
			name:   "bad duration",
			loader: Loader{Path: writeFile(t, dir, "ok.toml", ""), DotEnv: noEnv, LookupEnv: envMap(map[string]string{"GOODFIRST_TIMEOUT": "soon"})},
			code:   gferr.ErrCodeInvalidConfig,
		},
		{
			name:   "bad integer",
			loader: Loader{Path: writeFile(t, dir, "ok2.toml", ""), DotEnv: noEnv, LookupEnv: envMap(map[string]string{"GOODFIRST_CONCURRENCY": "many"})},
			code:   gferr.ErrCodeInvalidConfig,
		},
		{
			name:   "invalid value",
			loader: Loader{Path: writeFile(t, dir, "fmt.toml", `format = "svg"`), DotEnv: noEnv, LookupEnv: envMap(nil)},
			code:   gferr.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader.Load()
			if !gferr.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown format", func(c *Config) { c.Format = "svg" }},
		{"unknown backend", func(c *Config) { c.CacheBackend = "mongo" }},
		{"redis without url", func(c *Config) { c.CacheBackend = CacheRedis }},
		{"zero per page", func(c *Config) { c.PerPage = 0 }},
		{"per page above max", func(c *Config) { c.PerPage = 101 }},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"empty label", func(c *Config) { c.Label = "  " }},
		{"bad registry url", func(c *Config) { c.RegistryURL = "ftp://registry" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !gferr.Is(err, gferr.ErrCodeInvalidInput) {
				t.Errorf("Validate() = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		backend string
		noCache bool
		check   func(cache.Cache) bool
	}{
		{"none", CacheNone, false, func(c cache.Cache) bool { r, ok := cache.IsDisabled(c); return ok && r == "cache backend none" }},
		{"no-cache flag", CacheFile, true, func(c cache.Cache) bool { r, ok := cache.IsDisabled(c); return ok && r == "--no-cache" }},
		{"memory", CacheMemory, false, func(c cache.Cache) bool { _, ok := c.(*cache.MemoryCache); return ok }},
		{"file", CacheFile, false, func(c cache.Cache) bool { _, ok := c.(*cache.Tiered); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.CacheBackend = tt.backend
			cfg.CacheDir = t.TempDir()

			c, err := cfg.OpenCache(ctx, tt.noCache)
			if err != nil {
				t.Fatalf("OpenCache: %v", err)
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("OpenCache returned %T", c)
			}
		})
	}
}

func TestSources(t *testing.T) {
	cfg := Default()
	cfg.GitHubToken = "tok"
	src := cfg.Sources(nil, true, observability.Hooks{})
	if src.GitHubToken != "tok" || !src.Refresh || src.PerPage != 30 || src.Label != "good first issue" {
		t.Errorf("Sources = %+v", src)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	if got, want := DefaultPath(), filepath.Join("/xdg/config", "goodfirst", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
	if got, want := DefaultCacheDir(), filepath.Join("/xdg/cache", "goodfirst"); got != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", got, want)
	}
}

func TestDefaultPaths_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	if got, want := DefaultPath(), filepath.Join(home, ".config", "goodfirst", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
	if got, want := DefaultCacheDir(), filepath.Join(home, ".cache", "goodfirst"); got != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", got, want)
	}
}
