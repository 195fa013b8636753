// Package pipeline runs the load → build → render chain behind the CLI and
// the HTTP service.
//
// # Stages
//
//  1. Load: read the dataset from a file, stdin, URL or MongoDB (pkg/source).
//     Remote datasets are cached.
//  2. Build: apply the chart configuration and lay the chart out once, which
//     fixes the value range, the bar widths and the item entities.
//  3. Render: produce each requested format. Artifacts are cached by the
//     hash of the dataset and the configuration.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "sales.csv",
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/plot"
	"github.com/matzehuels/stackbar/pkg/config"
	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/render/sink"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, ValidFormats); err != nil {
			return err
		}
	}
	return nil
}

// Options configures one pipeline run. Frame fields override the chart
// configuration when set.
type Options struct {
	// Source is a dataset reference (see pkg/source). Dataset, when set,
	// is used instead.
	Source      string      `json:"source,omitempty"`
	Dataset     *data.Table `json:"-"`
	InputFormat string      `json:"input_format,omitempty"`

	// Chart is the chart configuration. When nil it is loaded from
	// ConfigPath, or the defaults are used.
	Chart      *config.Chart `json:"-"`
	ConfigPath string        `json:"config,omitempty"`

	Title       string  `json:"title,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Orientation string  `json:"orientation,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	// Refresh bypasses cached datasets and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Dataset == nil && o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a dataset source is required")
	}

	var c config.Chart
	switch {
	case o.Chart != nil:
		c = *o.Chart
	case o.ConfigPath != "":
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return err
		}
		c = loaded
	default:
		c = config.Default()
	}
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	if o.Orientation != "" {
		c.Orientation = o.Orientation
	}
	if err := c.Validate(); err != nil {
		return err
	}
	o.Chart = &c

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if err := sink.CheckRaster(c.Width, c.Height, o.Scale); err != nil {
			return err
		}
	} else if !(o.Scale > 0 && o.Scale <= sink.MaxScale) {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be within (0, %g], got %g", sink.MaxScale, o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SinkOptions returns the frame options for the render sinks.
func (o *Options) SinkOptions() []sink.Option {
	return append(o.Chart.SinkOptions(), sink.WithScale(o.Scale))
}

// ArtifactKeyOpts returns the cache key inputs for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		ConfigHash: o.Chart.Hash(),
		Width:      o.Chart.Width,
		Height:     o.Chart.Height,
		Title:      o.Chart.Title,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// Result holds the outputs of a run.
type Result struct {
	// ChartID identifies this run in logs and API responses.
	ChartID     string
	DatasetHash string
	Dataset     *data.Table
	Plot        *plot.Category
	Frame       sink.Frame
	Artifacts   map[string][]byte
	Stats       Stats
	CacheInfo   CacheInfo

	opts Options
}

// Stats holds sizes and timings.
type Stats struct {
	Rows       int
	Columns    int
	Groups     int
	Items      int
	LoadTime   time.Duration
	DrawTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LoadHit   bool
	RenderHit bool
}
