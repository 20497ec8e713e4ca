package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event as a debug line. It is what --verbose
// installs in the CLI.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns a Hooks bundle whose fields all log through l.
func NewLogHooks(l *log.Logger) Hooks {
	if l == nil {
		l = log.Default()
	}
	h := &LogHooks{Logger: l}
	return Hooks{Pipeline: h, Cache: h, HTTP: h}
}

func (h *LogHooks) OnRunStart(_ context.Context, dependencies int) {
	h.Logger.Debug("run started", "dependencies", dependencies)
}

func (h *LogHooks) OnResolve(_ context.Context, name, reason string, d time.Duration) {
	h.Logger.Debug("resolve", "package", name, "reason", reason, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnFetch(_ context.Context, repo, reason string, issues int, d time.Duration) {
	h.Logger.Debug("issues", "repo", repo, "reason", reason, "count", issues, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnRunComplete(_ context.Context, dependencies int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("run failed", "err", err, "duration", d.Round(time.Millisecond))
		return
	}
	h.Logger.Debug("run complete", "dependencies", dependencies, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, namespace string) {
	h.Logger.Debug("cache hit", "namespace", namespace)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, namespace string) {
	h.Logger.Debug("cache miss", "namespace", namespace)
}

func (h *LogHooks) OnCacheSet(_ context.Context, namespace string, size int) {
	h.Logger.Debug("cache set", "namespace", namespace, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
