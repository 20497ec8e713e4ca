package config

import (
	"github.com/matzehuels/goodfirst/pkg/cache"
	"github.com/matzehuels/goodfirst/pkg/observability"
	"github.com/matzehuels/goodfirst/pkg/pipeline"
)

// Sources returns the pipeline client settings of c.
func (c Config) Sources(ch cache.Cache, refresh bool, hooks observability.Hooks) pipeline.Sources {
	return pipeline.Sources{
		Cache:        ch,
		CacheTTL:     c.CacheTTL,
		Timeout:      c.Timeout,
		RegistryURL:  c.RegistryURL,
		GitHubAPIURL: c.GitHubAPIURL,
		GitHubToken:  c.GitHubToken,
		Label:        c.Label,
		PerPage:      c.PerPage,
		Refresh:      refresh,
		Hooks:        hooks,
	}
}
