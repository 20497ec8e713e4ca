// Package config loads goodfirst settings.
//
// Sources are applied lowest first, each overriding the previous one:
//
//  1. built-in defaults ([Default])
//  2. a TOML file (--config, else $XDG_CONFIG_HOME/goodfirst/config.toml)
//  3. a .env file in the working directory
//  4. the process environment
//  5. command-line flags (applied by the CLI)
//
// Values in .env never override variables already set in the environment.
//
// Example config.toml:
//
//	label = "help wanted"
//	per_page = 10
//	timeout = "5s"
//	cache = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	gferr "github.com/matzehuels/goodfirst/pkg/errors"
	"github.com/matzehuels/goodfirst/pkg/integrations/github"
	"github.com/matzehuels/goodfirst/pkg/integrations/npm"
	"github.com/matzehuels/goodfirst/pkg/issues"
	"github.com/matzehuels/goodfirst/pkg/report"
)

const appName = "goodfirst"

// Cache backends.
const (
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// Config holds every setting of the CLI and the API server.
type Config struct {
	GitHubToken  string        `toml:"github_token"`
	Label        string        `toml:"label"`
	PerPage      int           `toml:"per_page"`
	RegistryURL  string        `toml:"registry_url"`
	GitHubAPIURL string        `toml:"github_api_url"`
	Timeout      time.Duration `toml:"timeout"`
	CacheTTL     time.Duration `toml:"cache_ttl"`
	CacheBackend string        `toml:"cache"`
	CacheDir     string        `toml:"cache_dir"`
	RedisURL     string        `toml:"redis_url"`
	Format       string        `toml:"format"`
	Concurrency  int           `toml:"concurrency"` // 0 = unbounded
	Listen       string        `toml:"listen"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Label:        issues.DefaultLabel,
		PerPage:      issues.DefaultPerPage,
		RegistryURL:  npm.DefaultRegistryURL,
		GitHubAPIURL: github.DefaultAPIURL,
		Timeout:      10 * time.Second,
		CacheTTL:     24 * time.Hour,
		CacheBackend: CacheFile,
		CacheDir:     DefaultCacheDir(),
		Format:       string(report.FormatTable),
		Listen:       ":8080",
	}
}

// Loader reads configuration from files and the environment.
type Loader struct {
	Path      string                          // TOML file; empty selects DefaultPath, which may be absent
	DotEnv    string                          // .env file; empty selects ".env" in the working directory
	LookupEnv func(key string) (string, bool) // nil selects os.LookupEnv
}

// Load is shorthand for Loader{Path: path}.Load().
func Load(path string) (Config, error) {
	return Loader{Path: path}.Load()
}

// Load builds the configuration from defaults, the TOML file, .env and
// the environment, then validates it.
func (l Loader) Load() (Config, error) {
	cfg := Default()

	path, explicit := l.Path, l.Path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return Config{}, err
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	dotenv := l.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	env, err := withDotEnv(dotenv, lookup)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	_, err := toml.DecodeFile(path, c)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return gferr.Wrap(gferr.ErrCodeFileNotFound, err, "config file %s not found", path)
	default:
		return gferr.Wrap(gferr.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
}

// withDotEnv returns a lookup that prefers the environment and falls back
// to the variables of the .env file at path. A missing file is ignored.
func withDotEnv(path string, lookup func(string) (string, bool)) (func(string) (string, bool), error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, gferr.Wrap(gferr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("GITHUB_TOKEN", &c.GitHubToken)
	str("GOODFIRST_LABEL", &c.Label)
	str("GOODFIRST_REGISTRY_URL", &c.RegistryURL)
	str("GOODFIRST_GITHUB_API_URL", &c.GitHubAPIURL)
	str("GOODFIRST_CACHE", &c.CacheBackend)
	str("GOODFIRST_CACHE_DIR", &c.CacheDir)
	str("GOODFIRST_REDIS_URL", &c.RedisURL)
	str("GOODFIRST_FORMAT", &c.Format)
	str("GOODFIRST_LISTEN", &c.Listen)

	for key, dst := range map[string]*int{
		"GOODFIRST_PER_PAGE":    &c.PerPage,
		"GOODFIRST_CONCURRENCY": &c.Concurrency,
	} {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return gferr.Wrap(gferr.ErrCodeInvalidConfig, err, "%s must be an integer", key)
		}
		*dst = n
	}

	for key, dst := range map[string]*time.Duration{
		"GOODFIRST_TIMEOUT":   &c.Timeout,
		"GOODFIRST_CACHE_TTL": &c.CacheTTL,
	} {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return gferr.Wrap(gferr.ErrCodeInvalidConfig, err, "%s must be a duration", key)
		}
		*dst = d
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return gferr.Wrap(gferr.ErrCodeInvalidInput, err, "format")
	}
	switch c.CacheBackend {
	case CacheFile, CacheRedis, CacheMemory, CacheNone:
	default:
		return gferr.New(gferr.ErrCodeInvalidInput, "invalid cache backend: %q (must be one of: file, redis, memory, none)", c.CacheBackend)
	}
	if c.CacheBackend == CacheRedis && c.RedisURL == "" {
		return gferr.New(gferr.ErrCodeInvalidInput, "redis cache requires redis_url")
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		return gferr.New(gferr.ErrCodeInvalidInput, "per_page must be between 1 and 100, got %d", c.PerPage)
	}
	if c.Concurrency < 0 {
		return gferr.New(gferr.ErrCodeInvalidInput, "concurrency cannot be negative")
	}
	if c.Timeout <= 0 {
		return gferr.New(gferr.ErrCodeInvalidInput, "timeout must be positive")
	}
	if strings.TrimSpace(c.Label) == "" {
		return gferr.New(gferr.ErrCodeInvalidInput, "label cannot be empty")
	}
	for _, u := range []string{c.RegistryURL, c.GitHubAPIURL} {
		if err := gferr.ValidateURL(u); err != nil {
			return gferr.Wrap(gferr.ErrCodeInvalidInput, err, "invalid endpoint")
		}
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/goodfirst/config.toml, or
// ~/.config/goodfirst/config.toml. It returns "" if no home is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// DefaultCacheDir returns the cache directory using XDG standard (~/.cache/goodfirst/).
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}
