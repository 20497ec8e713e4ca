// Package report renders pipeline results.
//
// Three formats are supported: a terminal table ([FormatTable]), JSON
// ([FormatJSON]) and Markdown ([FormatMarkdown]). Every renderer lists
// every dependency, in pipeline order. A dependency without a repository
// reads "no repository found" and one without issues "no issues found";
// when the cause was a failure rather than an empty answer, the reason
// code follows in parentheses.
//
// Output depends only on the entries: rendering the same entries twice
// produces identical bytes.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	gferr "github.com/matzehuels/goodfirst/pkg/errors"
	"github.com/matzehuels/goodfirst/pkg/issues"
	"github.com/matzehuels/goodfirst/pkg/pipeline"
	"github.com/matzehuels/goodfirst/pkg/resolve"
)

// Format selects a renderer.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatMarkdown}

const (
	msgNoRepository = "no repository found"
	msgNoIssues     = "no issues found"
)

// ParseFormat validates a format name. "md" is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", gferr.New(gferr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: table, json, markdown)", s)
}

// Render writes entries to w in the given format.
func Render(w io.Writer, format Format, entries []pipeline.Enriched) error {
	switch format {
	case FormatTable:
		return RenderTable(w, entries)
	case FormatJSON:
		return RenderJSON(w, entries)
	case FormatMarkdown:
		return RenderMarkdown(w, entries)
	}
	return gferr.New(gferr.ErrCodeInvalidFormat, "invalid format: %q", format)
}

// Document is the JSON shape of a report.
type Document struct {
	Dependencies []pipeline.Enriched `json:"dependencies"`
}

// RenderJSON writes entries as an indented JSON document.
func RenderJSON(w io.Writer, entries []pipeline.Enriched) error {
	if entries == nil {
		entries = []pipeline.Enriched{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Dependencies: entries})
}

// Summary counts the outcome of a run.
type Summary struct {
	Dependencies int // declared dependencies
	Resolved     int // with a repository
	WithIssues   int // with at least one issue
	Issues       int // issues across all dependencies
	Failed       int // resolution or lookup failures, as opposed to empty answers
}

// Summarize computes the Summary of entries.
func Summarize(entries []pipeline.Enriched) Summary {
	s := Summary{Dependencies: len(entries)}
	for _, e := range entries {
		if e.Repository != nil {
			s.Resolved++
		}
		if len(e.Issues) > 0 {
			s.WithIssues++
		}
		s.Issues += len(e.Issues)
		if repoFailed(e.RepositoryStatus) || issuesFailed(e.IssueStatus) {
			s.Failed++
		}
	}
	return s
}

func repositoryText(e pipeline.Enriched) string {
	if e.Repository != nil {
		return e.Repository.String()
	}
	if e.RepositoryStatus == "" || e.RepositoryStatus == resolve.NoRepository {
		return msgNoRepository
	}
	return fmt.Sprintf("%s (%s)", msgNoRepository, e.RepositoryStatus)
}

func noIssuesText(e pipeline.Enriched) string {
	if issuesFailed(e.IssueStatus) {
		return fmt.Sprintf("%s (%s)", msgNoIssues, e.IssueStatus)
	}
	return msgNoIssues
}

func repoFailed(r resolve.Reason) bool {
	switch r {
	case resolve.NotFound, resolve.RegistryError, resolve.InvalidName:
		return true
	}
	return false
}

func issuesFailed(r issues.Reason) bool {
	switch r {
	case issues.NotFound, issues.RateLimited, issues.TrackerError:
		return true
	}
	return false
}
