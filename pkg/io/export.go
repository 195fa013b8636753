package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/stackbar/pkg/chart/data"
)

type table struct {
	Series     []string     `json:"series"`
	Categories []string     `json:"categories"`
	Values     [][]*float64 `json:"values"`
}

func fromDataset(ds data.Dataset) table {
	out := table{
		Series:     make([]string, ds.RowCount()),
		Categories: make([]string, ds.ColumnCount()),
		Values:     make([][]*float64, ds.RowCount()),
	}
	for c := range out.Categories {
		out.Categories[c] = ds.ColumnKey(c)
	}
	for r := range out.Series {
		out.Series[r] = ds.RowKey(r)
		row := make([]*float64, len(out.Categories))
		for c := range row {
			if v, ok := ds.Value(r, c); ok {
				row[c] = &v
			}
		}
		out.Values[r] = row
	}
	return out
}

// WriteJSON encodes ds as JSON and writes it to w.
func WriteJSON(ds data.Dataset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromDataset(ds)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the compact JSON encoding of ds. The encoding is
// stable for equal datasets, which makes it usable as a cache key input.
func MarshalJSON(ds data.Dataset) ([]byte, error) {
	return json.Marshal(fromDataset(ds))
}

// UnmarshalJSON decodes the JSON encoding produced by [MarshalJSON] or
// [WriteJSON].
func UnmarshalJSON(b []byte) (*data.Table, error) {
	var doc table
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.toTable()
}

// WriteCSV encodes ds as CSV and writes it to w. Absent values are written
// as empty cells.
func WriteCSV(ds data.Dataset, w io.Writer) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, ds.ColumnCount()+1)
	header = append(header, "series")
	for c := range ds.ColumnCount() {
		header = append(header, ds.ColumnKey(c))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for r := range ds.RowCount() {
		rec := make([]string, 0, ds.ColumnCount()+1)
		rec = append(rec, ds.RowKey(r))
		for c := range ds.ColumnCount() {
			if v, ok := ds.Value(r, c); ok {
				rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				rec = append(rec, "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes ds to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(ds data.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(ds, f)
}
