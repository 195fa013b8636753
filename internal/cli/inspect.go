package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/entity"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/group"
)

var (
	inspectSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	inspectHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// barRow is one drawn bar segment as shown by the inspector.
type barRow struct {
	Series   string
	Category string
	Group    string
	Value    float64
	Base     float64
	Top      float64
	Area     geom.Rect
	ToolTip  string
	URL      string
}

// inspectRows pairs every entity with its group and stack extent. Positive
// values stack on the positive total of the earlier series of the same
// group, other values on the negative total.
func inspectRows(ds data.Dataset, m *group.Map, items []entity.Item) []barRow {
	rows := make([]barRow, len(items))
	for i, it := range items {
		g := m.GroupOf(it.SeriesKey)
		var base float64
		for r := range it.Row {
			if m.GroupOf(ds.RowKey(r)) != g {
				continue
			}
			v, ok := ds.Value(r, it.Column)
			if !ok {
				continue
			}
			if (it.Value > 0) == (v > 0) {
				base += v
			}
		}
		rows[i] = barRow{
			Series:   it.SeriesKey,
			Category: it.CategoryKey,
			Group:    g,
			Value:    it.Value,
			Base:     base,
			Top:      base + it.Value,
			Area:     it.Area,
			ToolTip:  it.ToolTip,
			URL:      it.URL,
		}
	}
	return rows
}

// =============================================================================
// InspectModel - Interactive bar browser
// =============================================================================

// InspectModel is the bubbletea model for browsing the bars of a chart.
type InspectModel struct {
	Title  string
	Rows   []barRow
	Cursor int
	Height int
	Offset int
}

// NewInspectModel creates an inspector over rows.
func NewInspectModel(title string, rows []barRow) InspectModel {
	return InspectModel{Title: title, Rows: rows, Height: 15}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Rows))
		case "end", "G":
			m.move(len(m.Rows))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-9, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta and scrolls it into view.
func (m *InspectModel) move(delta int) {
	if len(m.Rows) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(StyleDim.Render("No bars drawn."))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	cells := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		cells = append(cells, []string{
			cursor, r.Series, r.Category, r.Group,
			formatFloat(r.Value), formatFloat(r.Base), formatFloat(r.Top), r.Area.String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Series", "Category", "Group", "Value", "Base", "Top", "Rect").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return inspectHeaderStyle
			case m.Offset+row == m.Cursor:
				return inspectSelectedStyle
			case col >= 4 && col <= 6:
				return StyleNumber
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	sel := m.Rows[m.Cursor]
	if sel.ToolTip != "" {
		b.WriteString("  " + StyleValue.Render(sel.ToolTip))
		b.WriteString("\n")
	}
	if sel.URL != "" {
		b.WriteString("  " + StyleDim.Render(sel.URL))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "inspect [dataset]",
		Short: "Browse the bars of a chart interactively",
		Long: `Lay the chart out and browse every drawn bar segment: its series,
category and group, where its stack starts and ends, and the rectangle it
occupies in the frame.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.build(cmd.Context(), &flags, args[0])
			if err != nil {
				return err
			}
			m := result.Plot.Renderer(0).GroupMap()
			rows := inspectRows(result.Dataset, m, result.Frame.Entities.Items())

			title := flags.title
			if title == "" {
				title = chartName(args[0])
			}
			p := tea.NewProgram(NewInspectModel(title, rows),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
