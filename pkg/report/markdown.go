package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/goodfirst/pkg/pipeline"
)

var mdEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`, "`", "\\`")

// destEscaper keeps a URL inside an angle-bracket link destination.
var destEscaper = strings.NewReplacer("<", "%3C", ">", "%3E", " ", "%20", "\n", "%0A", "\r", "%0D")

// linkDest returns url as an angle-bracket link destination.
func linkDest(url string) string {
	return "<" + destEscaper.Replace(url) + ">"
}

// codeSpan wraps s in a backtick fence longer than any backtick run in s.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}

// RenderMarkdown writes entries as a Markdown document with one section
// per dependency.
func RenderMarkdown(w io.Writer, entries []pipeline.Enriched) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Good first issues")
	for _, e := range entries {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "## %s\n\n", mdEscaper.Replace(e.Name))
		if e.Version == "" {
			fmt.Fprintf(bw, "%s dependency, no version specifier.\n\n", e.Type)
		} else {
			fmt.Fprintf(bw, "%s dependency, version %s.\n\n", e.Type, codeSpan(e.Version))
		}

		if e.Repository != nil {
			fmt.Fprintf(bw, "Repository: [%s](%s)\n\n", mdEscaper.Replace(e.Repository.String()), linkDest(e.Repository.URL()))
		} else {
			fmt.Fprintf(bw, "_%s_\n", repositoryText(e))
			continue
		}

		if len(e.Issues) == 0 {
			fmt.Fprintf(bw, "_%s_\n", noIssuesText(e))
			continue
		}
		for _, is := range e.Issues {
			fmt.Fprintf(bw, "- [%s](%s)\n", mdEscaper.Replace(is.Title), linkDest(is.Link))
		}
	}

	return bw.Flush()
}
