package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/goodfirst/pkg/deps"
	gferr "github.com/matzehuels/goodfirst/pkg/errors"
	"github.com/matzehuels/goodfirst/pkg/issues"
	"github.com/matzehuels/goodfirst/pkg/resolve"
)

// Run parses manifest and builds the report. The only error it returns is
// the INVALID_MANIFEST error of a manifest that does not parse; in that
// case no partial report is produced.
func (p *Pipeline) Run(ctx context.Context, manifest []byte) ([]Enriched, error) {
	start := time.Now()

	list, err := p.parser.Parse(manifest)
	if err != nil {
		if !gferr.IsManifestError(err) {
			err = gferr.Wrap(gferr.ErrCodeInvalidManifest, err, "parse %s", p.parser.Type())
		}
		p.hooks.OnRunComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	p.hooks.OnRunStart(ctx, len(list))
	p.logger.Info("parsed manifest", "type", p.parser.Type(), "dependencies", len(list))

	repos := p.resolveAll(ctx, list)
	found := p.fetchAll(ctx, list, repos)

	out := make([]Enriched, len(list))
	for i, d := range list {
		out[i] = Enriched{
			Dependency:       d,
			Repository:       repos[i].Ref,
			Issues:           found[i].Issues,
			RepositoryStatus: repos[i].Reason,
			IssueStatus:      found[i].Reason,
		}
	}

	p.hooks.OnRunComplete(ctx, len(list), time.Since(start), nil)
	return out, nil
}

// RunFile reads the manifest at path, checks that the pipeline's parser
// handles it, and runs the report.
func (p *Pipeline) RunFile(ctx context.Context, path string) ([]Enriched, error) {
	if _, err := deps.DetectManifest(path, p.parser); err != nil {
		return nil, gferr.Wrap(gferr.ErrCodeInvalidManifest, err, "%s is not a %s manifest", path, p.parser.Type())
	}
	data, err := deps.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, data)
}

func (p *Pipeline) resolveAll(ctx context.Context, list []deps.Dependency) []resolve.Result {
	start := time.Now()
	results := fanOut(ctx, p.concurrency, list, func(ctx context.Context, d deps.Dependency) resolve.Result {
		t := time.Now()
		res := p.resolver.Resolve(ctx, d.Name)
		p.hooks.OnResolve(ctx, d.Name, string(res.Reason), time.Since(t))
		return res
	})

	resolved := 0
	for i, res := range results {
		if res.Reason == resolve.Resolved {
			resolved++
			continue
		}
		p.logger.Debug("no repository", "package", list[i].Name, "reason", res.Reason, "code", gferr.GetCode(res.Err), "err", res.Err)
	}
	p.logger.Info("resolved repositories",
		"resolved", resolved,
		"unresolved", len(list)-resolved,
		"duration", time.Since(start).Round(time.Millisecond))
	return results
}

func (p *Pipeline) fetchAll(ctx context.Context, list []deps.Dependency, repos []resolve.Result) []issues.Result {
	start := time.Now()
	results := make([]issues.Result, len(repos))

	var idx []int
	for i, r := range repos {
		if r.Ref == nil {
			results[i] = issues.Result{Issues: []issues.Issue{}, Reason: issues.Skipped}
			continue
		}
		idx = append(idx, i)
	}

	fetched := fanOut(ctx, p.concurrency, idx, func(ctx context.Context, i int) issues.Result {
		t := time.Now()
		res := p.fetcher.Fetch(ctx, repos[i].Ref)
		if res.Issues == nil {
			res.Issues = []issues.Issue{}
		}
		p.hooks.OnFetch(ctx, repos[i].Ref.String(), string(res.Reason), len(res.Issues), time.Since(t))
		return res
	})

	total, failed := 0, 0
	for n, i := range idx {
		res := fetched[n]
		results[i] = res
		total += len(res.Issues)
		switch res.Reason {
		case issues.Found, issues.None:
		default:
			failed++
			p.logger.Debug("issue lookup failed", "package", list[i].Name, "repo", repos[i].Ref.String(), "reason", res.Reason, "code", gferr.GetCode(res.Err), "err", res.Err)
		}
	}
	p.logger.Info("fetched issues",
		"repositories", len(idx),
		"issues", total,
		"failed", failed,
		"duration", time.Since(start).Round(time.Millisecond))
	return results
}

// fanOut calls fn for every element of in concurrently and returns the
// results in input order. Each task writes only its own index. limit <= 0
// leaves the number of in-flight calls unbounded.
func fanOut[T, R any](ctx context.Context, limit int, in []T, fn func(context.Context, T) R) []R {
	out := make([]R, len(in))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, v := range in {
		g.Go(func() error {
			out[i] = fn(ctx, v)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
