package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// ReadJSON decodes a JSON dataset from r.
//
// ReadJSON returns an INVALID_DATASET error if the JSON is malformed, if a
// key is duplicated, or if the value matrix does not match the declared
// series and categories.
func ReadJSON(r io.Reader) (*data.Table, error) {
	var doc table
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode")
	}
	return doc.toTable()
}

func (doc table) toTable() (*data.Table, error) {
	if len(doc.Values) != len(doc.Series) {
		return nil, errors.New(errors.ErrCodeInvalidDataset,
			"got %d value rows for %d series", len(doc.Values), len(doc.Series))
	}

	t := data.NewTable()
	for _, c := range doc.Categories {
		if t.ColumnIndex(c) >= 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate category %q", c)
		}
		t.AddColumn(c)
	}
	for i, s := range doc.Series {
		if t.RowIndex(s) >= 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate series %q", s)
		}
		t.AddRow(s)
		row := doc.Values[i]
		if len(row) != len(doc.Categories) {
			return nil, errors.New(errors.ErrCodeInvalidDataset,
				"series %q: got %d values for %d categories", s, len(row), len(doc.Categories))
		}
		for j, v := range row {
			if v != nil {
				t.SetValue(*v, s, doc.Categories[j])
			}
		}
	}
	return t, nil
}

// ReadCSV decodes a CSV dataset from r. See the package documentation for
// the expected layout.
func ReadCSV(r io.Reader) (*data.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "csv has no header")
	}

	header := records[0]
	t := data.NewTable()
	for _, c := range header[1:] {
		if t.ColumnIndex(c) >= 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate category %q", c)
		}
		t.AddColumn(c)
	}

	for line, rec := range records[1:] {
		series := rec[0]
		if t.RowIndex(series) >= 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "line %d: duplicate series %q", line+2, series)
		}
		t.AddRow(series)
		for j, cellText := range rec[1:] {
			v, ok, err := parseCell(cellText)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "line %d, column %d", line+2, j+2)
			}
			if ok {
				t.SetValue(v, series, header[j+1])
			}
		}
	}
	return t, nil
}

func parseCell(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "na", "n/a":
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// ImportFile reads the dataset at path. Files ending in ".csv" are read as
// CSV and everything else as JSON.
func ImportFile(path string) (*data.Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(f)
	}
	return ReadJSON(f)
}

// Decode reads a dataset in the given format ("csv" or "json"). An empty
// format sniffs the content: a leading '{' means JSON, anything else CSV.
func Decode(b []byte, format string) (*data.Table, error) {
	switch strings.ToLower(format) {
	case "csv":
		return ReadCSV(bytes.NewReader(b))
	case "json":
		return ReadJSON(bytes.NewReader(b))
	case "":
		if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '{' {
			return ReadJSON(bytes.NewReader(b))
		}
		return ReadCSV(bytes.NewReader(b))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
}

// FormatOf returns the dataset format implied by a file name or URL path,
// or "" when the extension says nothing.
func FormatOf(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	}
	return ""
}
