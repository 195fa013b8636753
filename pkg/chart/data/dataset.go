// Package data provides the category dataset consumed by the chart
// renderers: a table of nullable values indexed by series (rows) and
// categories (columns).
//
// Renderers only read datasets through the [Dataset] interface. [Table] is
// the mutable in-memory implementation used by loaders and tests.
package data

import (
	"slices"
)

// Dataset is a read-only table of optional values. Rows are series and
// columns are categories; both are addressed by zero-based index and carry a
// string key.
type Dataset interface {
	// Value returns the value at (row, column) and whether it is present.
	Value(row, column int) (float64, bool)
	RowKey(row int) string
	ColumnKey(column int) string
	RowCount() int
	ColumnCount() int
}

type cell struct {
	v  float64
	ok bool
}

// Table is an in-memory [Dataset]. Rows and columns appear in the order
// their keys were first added. The zero value is an empty table ready to use.
type Table struct {
	rows     []string
	cols     []string
	rowIndex map[string]int
	colIndex map[string]int
	cells    [][]cell
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Value implements [Dataset].
func (t *Table) Value(row, column int) (float64, bool) {
	if row < 0 || row >= len(t.rows) || column < 0 || column >= len(t.cols) {
		return 0, false
	}
	c := t.cells[row][column]
	return c.v, c.ok
}

// RowKey implements [Dataset].
func (t *Table) RowKey(row int) string { return t.rows[row] }

// ColumnKey implements [Dataset].
func (t *Table) ColumnKey(column int) string { return t.cols[column] }

// RowCount implements [Dataset].
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount implements [Dataset].
func (t *Table) ColumnCount() int { return len(t.cols) }

// RowKeys returns the series keys in row order.
func (t *Table) RowKeys() []string { return slices.Clone(t.rows) }

// ColumnKeys returns the category keys in column order.
func (t *Table) ColumnKeys() []string { return slices.Clone(t.cols) }

// RowIndex returns the row holding series key, or -1.
func (t *Table) RowIndex(key string) int {
	if i, ok := t.rowIndex[key]; ok {
		return i
	}
	return -1
}

// ColumnIndex returns the column holding category key, or -1.
func (t *Table) ColumnIndex(key string) int {
	if i, ok := t.colIndex[key]; ok {
		return i
	}
	return -1
}

// AddRow registers a series key without adding values. It returns the row
// index, which is the existing one for known keys.
func (t *Table) AddRow(key string) int {
	if i, ok := t.rowIndex[key]; ok {
		return i
	}
	if t.rowIndex == nil {
		t.rowIndex = make(map[string]int)
	}
	t.rowIndex[key] = len(t.rows)
	t.rows = append(t.rows, key)
	t.cells = append(t.cells, make([]cell, len(t.cols)))
	return len(t.rows) - 1
}

// AddColumn registers a category key without adding values.
func (t *Table) AddColumn(key string) int {
	if i, ok := t.colIndex[key]; ok {
		return i
	}
	if t.colIndex == nil {
		t.colIndex = make(map[string]int)
	}
	t.colIndex[key] = len(t.cols)
	t.cols = append(t.cols, key)
	for i := range t.cells {
		t.cells[i] = append(t.cells[i], cell{})
	}
	return len(t.cols) - 1
}

// SetValue stores v for (series, category), adding either key if needed.
func (t *Table) SetValue(v float64, series, category string) {
	r := t.AddRow(series)
	c := t.AddColumn(category)
	t.cells[r][c] = cell{v: v, ok: true}
}

// AddValue is an alias for [Table.SetValue] kept for readability at call
// sites that build a table row by row.
func (t *Table) AddValue(v float64, series, category string) {
	t.SetValue(v, series, category)
}

// RemoveValue marks (series, category) as absent. Keys stay registered.
func (t *Table) RemoveValue(series, category string) {
	r, c := t.RowIndex(series), t.ColumnIndex(category)
	if r < 0 || c < 0 {
		return
	}
	t.cells[r][c] = cell{}
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, r := range t.rows {
		out.AddRow(r)
	}
	for _, c := range t.cols {
		out.AddColumn(c)
	}
	for i := range t.cells {
		copy(out.cells[i], t.cells[i])
	}
	return out
}

var _ Dataset = (*Table)(nil)
