package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/group"
)

// groupRow summarises one group of a dataset.
type groupRow struct {
	Index  int
	Name   string
	Series []string
	// Top and Bottom are the highest positive and lowest negative stack
	// totals over all categories.
	Top, Bottom float64
}

// summarizeGroups lists every group of m in drawing order, the dataset
// series assigned to it and its stack extremes.
func summarizeGroups(ds data.Dataset, m *group.Map) []groupRow {
	rows := make([]groupRow, m.Count())
	for i, name := range m.Groups() {
		rows[i] = groupRow{Index: i, Name: name}
	}
	for r := range ds.RowCount() {
		g := m.Index(m.GroupOf(ds.RowKey(r)))
		rows[g].Series = append(rows[g].Series, ds.RowKey(r))
	}
	for c := range ds.ColumnCount() {
		pos := make([]float64, len(rows))
		neg := make([]float64, len(rows))
		for r := range ds.RowCount() {
			v, ok := ds.Value(r, c)
			if !ok {
				continue
			}
			g := m.Index(m.GroupOf(ds.RowKey(r)))
			if v > 0 {
				pos[g] += v
			} else {
				neg[g] += v
			}
		}
		for g := range rows {
			rows[g].Top = max(rows[g].Top, pos[g])
			rows[g].Bottom = min(rows[g].Bottom, neg[g])
		}
	}
	return rows
}

func renderGroupTable(rows []groupRow) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		series := strings.Join(r.Series, ", ")
		if series == "" {
			series = "-"
		}
		cells[i] = []string{strconv.Itoa(r.Index), r.Name, series, formatFloat(r.Bottom), formatFloat(r.Top)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Group", "Series", "Min", "Max").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleDim
			case col >= 3:
				return StyleNumber
			case row < len(rows) && len(rows[row].Series) == 0:
				return StyleDim
			}
			return StyleValue
		})
	return t.Render()
}

// groupsCommand creates the groups command.
func (c *CLI) groupsCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "groups [dataset]",
		Short: "Show how series are assigned to bar groups",
		Long: `Show the bar groups of a chart in drawing order, the series stacked in
each, and the lowest and highest stack totals a group reaches.

Series not named in the configuration belong to the default group, which is
always drawn first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.build(cmd.Context(), &flags, args[0])
			if err != nil {
				return err
			}
			m := result.Plot.Renderer(0).GroupMap()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, StyleTitle.Render("Groups"))
			fmt.Fprintln(w, renderGroupTable(summarizeGroups(result.Dataset, m)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
