package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/goodfirst/pkg/pipeline"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

// RenderTable writes entries as a bordered table, one row per issue and
// one row for each dependency without issues. Colors are only emitted
// when w is a terminal.
func RenderTable(w io.Writer, entries []pipeline.Enriched) error {
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Foreground(colorGray).Bold(true)
	nameStyle := r.NewStyle().Foreground(colorCyan)
	dimStyle := r.NewStyle().Foreground(colorDim)
	cellStyle := r.NewStyle().Padding(0, 1)

	var rows [][]string
	var empty []bool // rows without an issue, rendered dim
	for _, e := range entries {
		head := []string{e.Name, e.Type.String(), e.Version, repositoryText(e)}
		if len(e.Issues) == 0 {
			rows = append(rows, append(head, noIssuesText(e), ""))
			empty = append(empty, true)
			continue
		}
		for i, is := range e.Issues {
			if i > 0 {
				head = []string{"", "", "", ""}
			}
			rows = append(rows, append(head, is.Title, is.Link))
			empty = append(empty, false)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Dependency", "Type", "Version", "Repository", "Issue", "Link").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case row >= 0 && row < len(empty) && empty[row] && col >= 3:
				return dimStyle.Padding(0, 1)
			case col == 0:
				return nameStyle.Padding(0, 1)
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
