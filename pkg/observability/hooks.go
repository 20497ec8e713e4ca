// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let callers observe a report run without the core packages
// depending on a specific backend. A [Hooks] value is passed explicitly
// to the pipeline and to the HTTP clients; there is no process-wide
// registry, so tests and concurrent servers can each use their own.
//
// # Usage
//
//	hooks := observability.Hooks{Pipeline: &myMetrics{}}
//	p := pipeline.New(parser, resolver, fetcher, pipeline.WithHooks(hooks))
//
// Unset fields fall back to no-op implementations via [Hooks.WithDefaults].
// [LogHooks] implements every interface by writing debug log lines.
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from a report run.
type PipelineHooks interface {
	// OnRunStart is called after the manifest parsed, with the number of
	// declared dependencies.
	OnRunStart(ctx context.Context, dependencies int)
	// OnResolve is called once per dependency with the resolution reason.
	OnResolve(ctx context.Context, name, reason string, duration time.Duration)
	// OnFetch is called once per resolved repository.
	OnFetch(ctx context.Context, repo, reason string, issues int, duration time.Duration)
	// OnRunComplete is called at the end of a run, including failed ones.
	OnRunComplete(ctx context.Context, dependencies int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, namespace string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, namespace string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, namespace string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, int)                             {}
func (NoopPipelineHooks) OnResolve(context.Context, string, string, time.Duration)    {}
func (NoopPipelineHooks) OnFetch(context.Context, string, string, int, time.Duration) {}
func (NoopPipelineHooks) OnRunComplete(context.Context, int, time.Duration, error)    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Hook Bundle
// =============================================================================

// Hooks bundles the hook interfaces handed to a component.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

// WithDefaults returns a copy of h with nil fields replaced by no-ops.
func (h Hooks) WithDefaults() Hooks {
	if h.Pipeline == nil {
		h.Pipeline = NoopPipelineHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	if h.HTTP == nil {
		h.HTTP = NoopHTTPHooks{}
	}
	return h
}
