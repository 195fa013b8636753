package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/entity"
	"github.com/matzehuels/stackbar/pkg/chart/group"
)

func inspectFixture() (*data.Table, *group.Map, []entity.Item) {
	ds := data.NewTable()
	ds.SetValue(1, "Apples (US)", "Q1")
	ds.SetValue(2, "Apples (EU)", "Q1")
	ds.SetValue(4, "Pears (US)", "Q1")
	ds.SetValue(-3, "Plums (US)", "Q1")

	m := group.NewWithDefault("US")
	m.Set("Apples (EU)", "EU")

	var items []entity.Item
	for r := range ds.RowCount() {
		v, _ := ds.Value(r, 0)
		items = append(items, entity.Item{Row: r, Column: 0, SeriesKey: ds.RowKey(r), CategoryKey: "Q1", Value: v})
	}
	return ds, m, items
}

func TestInspectRowsStackPerGroup(t *testing.T) {
	rows := inspectRows(inspectFixture())

	tests := []struct {
		series    string
		group     string
		base, top float64
	}{
		{"Apples (US)", "US", 0, 1},
		{"Apples (EU)", "EU", 0, 2},
		{"Pears (US)", "US", 1, 5},
		{"Plums (US)", "US", 0, -3},
	}
	for i, tt := range tests {
		r := rows[i]
		if r.Series != tt.series || r.Group != tt.group || r.Base != tt.base || r.Top != tt.top {
			t.Errorf("row %d = %+v, want %s in %s from %v to %v", i, r, tt.series, tt.group, tt.base, tt.top)
		}
	}
}

func TestSummarizeGroups(t *testing.T) {
	ds, m, _ := inspectFixture()
	rows := summarizeGroups(ds, m)

	if len(rows) != 2 || rows[0].Name != "US" || rows[1].Name != "EU" {
		t.Fatalf("groups = %+v", rows)
	}
	if got := strings.Join(rows[0].Series, ","); got != "Apples (US),Pears (US),Plums (US)" {
		t.Errorf("US series = %s", got)
	}
	if rows[0].Top != 5 || rows[0].Bottom != -3 {
		t.Errorf("US extent = [%v, %v], want [-3, 5]", rows[0].Bottom, rows[0].Top)
	}
	if rows[1].Top != 2 || rows[1].Bottom != 0 {
		t.Errorf("EU extent = [%v, %v], want [0, 2]", rows[1].Bottom, rows[1].Top)
	}

	table := renderGroupTable(rows)
	if !strings.Contains(table, "Apples (EU)") {
		t.Errorf("table missing series:\n%s", table)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m InspectModel, msg tea.Msg) (InspectModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(InspectModel), cmd
}

func TestInspectModelNavigation(t *testing.T) {
	m := NewInspectModel("Sales", inspectRows(inspectFixture()))
	m.Height = 2

	m, _ = update(m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m, _ = update(m, key("down"))
	m, _ = update(m, key("j"))
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("cursor = %d, offset = %d, want 2 and 1", m.Cursor, m.Offset)
	}
	m, _ = update(m, key("end"))
	if m.Cursor != 3 {
		t.Errorf("end: cursor = %d", m.Cursor)
	}
	m, _ = update(m, key("g"))
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("home: cursor = %d, offset = %d", m.Cursor, m.Offset)
	}

	if _, cmd := update(m, key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestInspectModelResize(t *testing.T) {
	m := NewInspectModel("Sales", inspectRows(inspectFixture()))
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Errorf("height = %d, want the minimum of 5", m.Height)
	}
}

func TestInspectModelView(t *testing.T) {
	rows := inspectRows(inspectFixture())
	rows[1].ToolTip = "(Apples (EU), Q1) = 2"
	m := NewInspectModel("Sales", rows)
	m, _ = update(m, key("down"))

	view := m.View()
	for _, want := range []string{"Sales", "Apples (US)", "Plums (US)", "(Apples (EU), Q1) = 2", "[2/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	if empty := NewInspectModel("Empty", nil).View(); !strings.Contains(empty, "No bars drawn") {
		t.Errorf("empty view = %q", empty)
	}
}
