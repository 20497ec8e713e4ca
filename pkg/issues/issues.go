// Package issues finds newcomer-friendly issues in a dependency's
// repository.
//
// A [Fetcher] asks the issue tracker for open issues carrying one label
// (by default "good first issue") and keeps only title and link of each.
// Tracker failures are reported through [Result.Reason], never as errors.
package issues

import (
	"context"
	"errors"

	"github.com/matzehuels/goodfirst/pkg/deps"
	gferr "github.com/matzehuels/goodfirst/pkg/errors"
	"github.com/matzehuels/goodfirst/pkg/integrations"
	"github.com/matzehuels/goodfirst/pkg/integrations/github"
)

// DefaultLabel is the label GitHub suggests for approachable issues.
const DefaultLabel = "good first issue"

// DefaultPerPage matches the tracker's own page size.
const DefaultPerPage = 30

// Reason explains the outcome of an issue lookup.
type Reason string

const (
	Skipped      Reason = "skipped"       // no repository to query
	Found        Reason = "found"         // at least one issue
	None         Reason = "none"          // query succeeded with zero issues
	NotFound     Reason = "not_found"     // repository does not exist
	RateLimited  Reason = "rate_limited"  // tracker quota exhausted
	TrackerError Reason = "tracker_error" // any other tracker failure
)

// Issue is the projection of a tracker issue kept in reports.
type Issue struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Tracker lists repository issues. *github.Client implements it.
type Tracker interface {
	ListIssues(ctx context.Context, owner, repo string, q github.IssueQuery, refresh bool) ([]github.Issue, error)
}

// Result is the outcome of one lookup. Issues is never nil.
type Result struct {
	Issues []Issue
	Reason Reason
	Err    error
}

// Options configures a Fetcher. Zero values select the defaults.
type Options struct {
	Label   string
	PerPage int
	Refresh bool
}

// Fetcher queries a Tracker for labeled open issues.
type Fetcher struct {
	tracker Tracker
	opts    Options
}

// New creates a Fetcher.
func New(tracker Tracker, opts Options) *Fetcher {
	if opts.Label == "" {
		opts.Label = DefaultLabel
	}
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	return &Fetcher{tracker: tracker, opts: opts}
}

// Fetch lists the open labeled issues of ref in the tracker's order.
// A nil ref yields Skipped without contacting the tracker.
func (f *Fetcher) Fetch(ctx context.Context, ref *deps.RepoRef) Result {
	if ref == nil {
		return Result{Issues: []Issue{}, Reason: Skipped}
	}

	q := github.IssueQuery{
		Labels:  []string{f.opts.Label},
		State:   "open",
		PerPage: f.opts.PerPage,
	}
	list, err := f.tracker.ListIssues(ctx, ref.Owner, ref.Project, q, f.opts.Refresh)
	if err != nil {
		reason, code := classify(err)
		return Result{Issues: []Issue{}, Reason: reason, Err: wrap(code, err, ref)}
	}

	out := make([]Issue, 0, len(list))
	for _, is := range list {
		out = append(out, Issue{Title: is.Title, Link: is.HTMLURL})
	}
	if len(out) == 0 {
		return Result{Issues: out, Reason: None}
	}
	return Result{Issues: out, Reason: Found}
}

func classify(err error) (Reason, gferr.Code) {
	switch {
	case errors.Is(err, integrations.ErrRateLimited):
		return RateLimited, gferr.ErrCodeRateLimited
	case errors.Is(err, integrations.ErrNotFound):
		return NotFound, gferr.ErrCodeNotFound
	default:
		return TrackerError, gferr.ErrCodeNetwork
	}
}

func wrap(code gferr.Code, err error, ref *deps.RepoRef) error {
	if status := integrations.StatusCode(err); status != 0 {
		return gferr.Wrap(code, err, "list issues of %s: HTTP %d", ref, status)
	}
	return gferr.Wrap(code, err, "list issues of %s", ref)
}
