package pipeline

import (
	"time"

	"github.com/matzehuels/goodfirst/pkg/cache"
	"github.com/matzehuels/goodfirst/pkg/deps/javascript"
	"github.com/matzehuels/goodfirst/pkg/integrations/github"
	"github.com/matzehuels/goodfirst/pkg/integrations/npm"
	"github.com/matzehuels/goodfirst/pkg/issues"
	"github.com/matzehuels/goodfirst/pkg/observability"
	"github.com/matzehuels/goodfirst/pkg/resolve"
)

// Sources configures the registry and issue tracker clients used by NewNPM.
// Zero values select the clients' defaults.
type Sources struct {
	Cache        cache.Cache // nil disables caching
	CacheTTL     time.Duration
	Timeout      time.Duration
	RegistryURL  string
	GitHubAPIURL string
	GitHubToken  string
	Label        string
	PerPage      int
	Refresh      bool // bypass cached registry and tracker responses
	Hooks        observability.Hooks
}

// NewNPM creates a Pipeline for package.json manifests, resolving through
// the npm registry and fetching issues from GitHub.
func NewNPM(src Sources, opts ...Option) *Pipeline {
	registry := npm.NewClient(src.Cache, src.CacheTTL)
	if src.RegistryURL != "" {
		registry.SetBaseURL(src.RegistryURL)
	}
	registry.SetTimeout(src.Timeout)
	registry.SetHooks(src.Hooks)

	tracker := github.NewClient(src.GitHubToken, src.Cache, src.CacheTTL)
	if src.GitHubAPIURL != "" {
		tracker.SetBaseURL(src.GitHubAPIURL)
	}
	tracker.SetTimeout(src.Timeout)
	tracker.SetHooks(src.Hooks)

	fetcher := issues.New(tracker, issues.Options{
		Label:   src.Label,
		PerPage: src.PerPage,
		Refresh: src.Refresh,
	})

	opts = append([]Option{WithHooks(src.Hooks)}, opts...)
	return New(&javascript.PackageJSON{}, resolve.New(registry, src.Refresh), fetcher, opts...)
}
