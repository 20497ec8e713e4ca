// Package pkg provides the libraries behind goodfirst.
//
// # Overview
//
// goodfirst reads a package.json, looks up the GitHub repository of every
// declared dependency on the npm registry, and lists the open issues of
// that repository carrying a beginner label ("good first issue").
//
// The pkg directory is organized as:
//
//  1. [deps] - Dependency and repository types, manifest parsing
//  2. [resolve] - Package name to GitHub repository
//  3. [issues] - Labeled open issues of a repository
//  4. [pipeline] - Orchestration (parse → resolve → fetch)
//  5. [report] - Table, JSON and Markdown output
//  6. [integrations] - npm registry and GitHub REST clients
//  7. [cache], [config], [errors], [observability], [buildinfo] - Infrastructure
//
// # Data flow
//
//	package.json
//	     ↓
//	[deps/javascript] (declared dependencies, in order)
//	     ↓
//	[resolve] via npm registry metadata
//	     ↓
//	[issues] via GitHub issues API
//	     ↓
//	[report] table / JSON / Markdown
//
// # Quick Start
//
//	p := pipeline.NewNPM(pipeline.Sources{Cache: cache.NewNullCache()})
//	entries, err := p.RunFile(ctx, "package.json")
//	if err != nil {
//	    return err
//	}
//	return report.Render(os.Stdout, report.FormatMarkdown, entries)
package pkg
