package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/goodfirst/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "browse [manifest]",
		Short: "Browse good first issues interactively",
		Long: `Run the same report as "goodfirst report" and show it as an interactive list.

Select a dependency with enter to see its issues, esc to go back, q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			entries, err := c.runPipeline(cmd.Context(), cfg, &flags, manifestArg(args))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No dependencies declared")
				return nil
			}

			p := tea.NewProgram(newBrowseModel(entries), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}

	flags.registerPipeline(cmd)
	return cmd
}

// =============================================================================
// browseModel - Interactive report
// =============================================================================

// browseModel lists dependencies and, once one is selected, its issues.
type browseModel struct {
	entries  []pipeline.Enriched
	cursor   int
	offset   int
	height   int
	selected int // index into entries, -1 in the list view
}

func newBrowseModel(entries []pipeline.Enriched) browseModel {
	return browseModel{entries: entries, height: 15, selected: -1}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if m.selected < 0 {
				return m, tea.Quit
			}
			m.selected = -1
		case "up", "k":
			if m.selected < 0 && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.selected < 0 && m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if m.selected < 0 && len(m.entries) > 0 {
				m.selected = m.cursor
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m browseModel) View() string {
	if m.selected >= 0 {
		return m.detailView(m.entries[m.selected])
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Dependencies"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ issues  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.entries))

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		repo := "—"
		if e.Repository != nil {
			repo = e.Repository.String()
		}
		rows = append(rows, []string{cursor, e.Name, e.Type.String(), repo, fmt.Sprint(len(e.Issues))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Dependency", "Type", "Repository", "Issues").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.offset + row
			if idx >= len(m.entries) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if len(m.entries[idx].Issues) > 0 {
				base = base.Foreground(colorGreen)
			} else {
				base = base.Foreground(colorDim)
			}
			if idx == m.cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))

	return b.String()
}

func (m browseModel) detailView(e pipeline.Enriched) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(e.Name))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(e.Version))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	if e.Repository == nil {
		b.WriteString(listDimStyle.Render("no repository found"))
		if e.RepositoryStatus != "" {
			b.WriteString(listDimStyle.Render(fmt.Sprintf(" (%s)", e.RepositoryStatus)))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(StyleLink.Render(e.Repository.URL()))
	b.WriteString("\n\n")

	if len(e.Issues) == 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("no issues found (%s)", e.IssueStatus)))
		b.WriteString("\n")
		return b.String()
	}
	for _, is := range e.Issues {
		b.WriteString(listNormalStyle.Render("• " + is.Title))
		b.WriteString("\n  ")
		b.WriteString(listSelectedStyle.Render(is.Link))
		b.WriteString("\n")
	}
	return b.String()
}
