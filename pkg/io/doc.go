// Package io provides import and export of category datasets in JSON and
// CSV form.
//
// # JSON Format
//
// A dataset is an object with the series keys, the category keys and a
// matrix of values. Absent values are written as null:
//
//	{
//	  "series": ["Product 1 (US)", "Product 1 (Europe)"],
//	  "categories": ["Q1", "Q2"],
//	  "values": [
//	    [10, 12],
//	    [8, null]
//	  ]
//	}
//
// Every row of "values" must have one entry per category, and there must be
// one row per series.
//
// # CSV Format
//
// The first record is a header whose first cell is ignored and whose
// remaining cells are category keys. Each following record starts with a
// series key followed by one value per category. Empty cells, "null" and
// "NA" are read as absent values:
//
//	series,Q1,Q2
//	Product 1 (US),10,12
//	Product 1 (Europe),8,
//
// # Import
//
// Use [ImportFile] to read a dataset from a path (the format is chosen by
// extension), or [ReadJSON] / [ReadCSV] to read from any io.Reader.
//
// # Export
//
// Use [ExportJSON] or [WriteJSON] / [WriteCSV]. Export followed by import
// yields a table with the same keys, order and values.
package io
