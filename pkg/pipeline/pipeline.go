// Package pipeline provides the core report pipeline for goodfirst.
//
// This package implements the parse → resolve → fetch pipeline shared by
// the CLI and the API. By centralizing this logic, both entry points
// produce identical reports for the same manifest.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Extract declared dependencies from the manifest
//  2. Resolve: Map every dependency to its GitHub repository, concurrently
//  3. Fetch: List labeled open issues of every resolved repository, concurrently
//  4. Assemble: Zip dependency, repository and issues by position
//
// Only a manifest that cannot be parsed fails a run. Resolution and fetch
// failures are recorded as reasons on the [Enriched] record of the
// affected dependency, so every declared dependency appears exactly once
// in the output, in declaration order.
//
// # Usage
//
//	p := pipeline.New(&javascript.PackageJSON{},
//	    resolve.New(npmClient, false),
//	    issues.New(githubClient, issues.Options{}),
//	    pipeline.WithLogger(logger),
//	)
//	report, err := p.Run(ctx, manifest)
//	if err != nil {
//	    return err // INVALID_MANIFEST
//	}
package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/goodfirst/pkg/deps"
	"github.com/matzehuels/goodfirst/pkg/issues"
	"github.com/matzehuels/goodfirst/pkg/observability"
	"github.com/matzehuels/goodfirst/pkg/resolve"
)

// Enriched is the report entry of one declared dependency. Repository is
// nil when no GitHub repository could be resolved; Issues is never nil.
type Enriched struct {
	deps.Dependency
	Repository       *deps.RepoRef  `json:"repository"`
	Issues           []issues.Issue `json:"issues"`
	RepositoryStatus resolve.Reason `json:"repository_status"`
	IssueStatus      issues.Reason  `json:"issue_status"`
}

// RepositoryResolver maps a package name to its repository.
// *resolve.Resolver implements it.
type RepositoryResolver interface {
	Resolve(ctx context.Context, name string) resolve.Result
}

// IssueFetcher lists the issues of a repository.
// *issues.Fetcher implements it.
type IssueFetcher interface {
	Fetch(ctx context.Context, ref *deps.RepoRef) issues.Result
}

// Pipeline runs reports. It holds no per-run state; one Pipeline may
// serve concurrent runs.
type Pipeline struct {
	parser      deps.ManifestParser
	resolver    RepositoryResolver
	fetcher     IssueFetcher
	logger      *log.Logger
	hooks       observability.PipelineHooks
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for stage summaries and degraded dependencies.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithHooks installs observability hooks.
func WithHooks(h observability.Hooks) Option {
	return func(p *Pipeline) { p.hooks = h.WithDefaults().Pipeline }
}

// WithConcurrency bounds the number of in-flight calls per stage.
// n <= 0 means unbounded, which is the default.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.concurrency = n }
}

// New creates a Pipeline from its three collaborators.
func New(parser deps.ManifestParser, resolver RepositoryResolver, fetcher IssueFetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		parser:   parser,
		resolver: resolver,
		fetcher:  fetcher,
		logger:   log.Default(),
		hooks:    observability.NoopPipelineHooks{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
