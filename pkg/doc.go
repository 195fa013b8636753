// Package pkg provides the libraries behind stackbar, a renderer for grouped
// stacked bar charts.
//
// # Overview
//
// A grouped stacked bar chart draws, for every category of a dataset, one
// bar per series group. The series assigned to a group stack on top of each
// other, positive values upwards and negative values downwards from zero.
// The pkg directory is organized into three areas:
//
//  1. [chart] - the chart model: datasets, group maps, axes, paints, labels,
//     drawing surfaces, the plot and the grouped stacked bar renderer
//  2. [render] - frames around a plot and output formats (SVG, PNG, PDF, JSON)
//  3. [pipeline] - orchestration (load → build → render) shared by the CLI
//     and the HTTP [server]
//
// # Architecture
//
//	CSV / JSON file, URL, stdin, MongoDB
//	         ↓
//	    [source] package (load dataset)
//	         ↓
//	    [config] package (chart configuration → plot)
//	         ↓
//	    [chart/plot] + [chart/renderer] (range, bar layout, entities)
//	         ↓
//	    [render/sink] package (frame, axes, legend)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/stackbar/pkg/config"
//	    "github.com/matzehuels/stackbar/pkg/io"
//	    "github.com/matzehuels/stackbar/pkg/render/sink"
//	)
//
//	ds, _ := io.ImportFile("sales.csv")
//
//	chart := config.Default()
//	chart.DefaultGroup = "US"
//	chart.Groups = []config.Group{{Name: "EU", Series: []string{"Apples (EU)"}}}
//
//	p, _ := chart.Build(ds)
//	svg := sink.RenderSVG(p, chart.SinkOptions()...)
//
// # Main Packages
//
// ## Chart Model
//
// [chart/renderer] - The grouped stacked bar renderer. It computes the value
// range from per-group stack totals, sizes bars so that every group fits
// into its category, and draws each item with its paint, outline, gradient
// and label.
//
// [chart/group] - Series to group assignment. The default group always
// comes first.
//
// [chart/data], [chart/axis], [chart/paint], [chart/label], [chart/entity],
// [chart/surface] - the collaborators the renderer draws with.
//
// ## Infrastructure
//
// [cache] - File, Redis and null caches with a keyer for datasets, remote
// responses and rendered artifacts.
//
// [httputil] - Retrying, cached HTTP fetches for remote datasets.
//
// [observability] - Hooks for load, draw, render, cache and HTTP events.
//
// [errors] - Error codes shared by the CLI and the HTTP service.
package pkg
