// Package resolve maps npm packages to the GitHub repository they are
// developed in.
//
// The [Resolver] reads the registry document of a package, takes the
// repository URL of the version the "latest" dist-tag points at, and
// extracts owner and project from it. Failures are never returned as
// errors: every outcome is a [Result] with a [Reason] so that one broken
// dependency cannot abort a report.
package resolve

import (
	"context"
	"errors"
	"regexp"

	"github.com/matzehuels/goodfirst/pkg/deps"
	gferr "github.com/matzehuels/goodfirst/pkg/errors"
	"github.com/matzehuels/goodfirst/pkg/integrations"
	"github.com/matzehuels/goodfirst/pkg/integrations/npm"
)

// Reason explains the outcome of a resolution.
type Reason string

const (
	Resolved        Reason = "resolved"
	InvalidName     Reason = "invalid_name"     // rejected before any registry call
	NotFound        Reason = "not_found"        // registry has no such package
	RegistryError   Reason = "registry_error"   // any other registry failure
	NoRepository    Reason = "no_repository"    // latest version declares no repository URL
	UnsupportedHost Reason = "unsupported_host" // URL is not a github.com git URL
)

// Registry provides package metadata. *npm.Client implements it.
type Registry interface {
	FetchMetadata(ctx context.Context, name string, refresh bool) (*npm.Metadata, error)
}

// Result is the outcome of resolving one package. Ref is nil unless
// Reason is Resolved. Err holds the registry error, if any, coded
// PACKAGE_NOT_FOUND or NETWORK_ERROR and wrapping the transport error.
type Result struct {
	Ref    *deps.RepoRef
	Reason Reason
	Err    error
}

// Resolver resolves package names through a Registry.
type Resolver struct {
	registry Registry
	refresh  bool
}

// New creates a Resolver. If refresh is true, registry caches are bypassed.
func New(registry Registry, refresh bool) *Resolver {
	return &Resolver{registry: registry, refresh: refresh}
}

// Resolve looks up the GitHub repository of the package called name.
func (r *Resolver) Resolve(ctx context.Context, name string) Result {
	if err := gferr.ValidatePackageName(name); err != nil {
		return Result{Reason: InvalidName, Err: err}
	}

	meta, err := r.registry.FetchMetadata(ctx, name, r.refresh)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return Result{Reason: NotFound, Err: gferr.Wrap(gferr.ErrCodePackageNotFound, err, "package %s", name)}
		}
		return Result{Reason: RegistryError, Err: gferr.Wrap(gferr.ErrCodeNetwork, err, "registry lookup %s", name)}
	}

	if meta.Repository == nil || meta.Repository.URL == "" {
		return Result{Reason: NoRepository}
	}

	ref, ok := ParseRepoURL(meta.Repository.URL)
	if !ok {
		return Result{Reason: UnsupportedHost}
	}
	return Result{Ref: ref, Reason: Resolved}
}

// repoPattern matches the github.com git URLs found in npm metadata:
// git+https://github.com/o/p.git, git+ssh://git@github.com/o/p.git and
// git@github.com:o/p.git. The captures are greedy and unanchored.
var repoPattern = regexp.MustCompile(`github\.com(/|:)(.*)/(.*)\.git`)

// ParseRepoURL extracts owner and project from a github.com git URL.
// It reports false for any other URL. Empty captures are returned as-is.
func ParseRepoURL(u string) (*deps.RepoRef, bool) {
	m := repoPattern.FindStringSubmatch(u)
	if m == nil {
		return nil, false
	}
	return &deps.RepoRef{Owner: m[2], Project: m[3]}, true
}
