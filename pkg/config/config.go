// Package config describes a chart in TOML.
//
// A chart file sets the frame, the renderer and axis settings, series colours,
// labels and the series-to-group assignment. Groups are listed as an array of
// tables so that their order, which is the order the groups are drawn in, is
// kept:
//
//	title = "Sales by region"
//	orientation = "vertical"
//	default_group = "US"
//
//	[renderer]
//	item_margin = 0.1
//
//	[[group]]
//	name = "EU"
//	series = ["Product 1 (EU)", "Product 2 (EU)"]
//
// Keys missing from the file keep the values of [Default].
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart/axis"
	"github.com/matzehuels/stackbar/pkg/chart/group"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// Chart is a complete chart configuration.
type Chart struct {
	Title        string  `toml:"title" json:"title,omitempty"`
	Width        float64 `toml:"width" json:"width"`
	Height       float64 `toml:"height" json:"height"`
	Orientation  string  `toml:"orientation" json:"orientation"`
	DefaultGroup string  `toml:"default_group" json:"default_group"`

	Renderer     Renderer     `toml:"renderer" json:"renderer"`
	CategoryAxis CategoryAxis `toml:"category_axis" json:"category_axis"`
	ValueAxis    ValueAxis    `toml:"value_axis" json:"value_axis"`
	Style        Style        `toml:"style" json:"style"`
	Labels       Labels       `toml:"labels" json:"labels"`
	Groups       []Group      `toml:"group" json:"groups,omitempty"`
}

// Renderer mirrors the grouped stacked bar renderer settings.
type Renderer struct {
	MaxBarWidth      float64 `toml:"max_bar_width" json:"max_bar_width"`
	ItemMargin       float64 `toml:"item_margin" json:"item_margin"`
	MinimumBarLength float64 `toml:"minimum_bar_length" json:"minimum_bar_length"`
	DrawBarOutline   bool    `toml:"draw_bar_outline" json:"draw_bar_outline"`
	// Gradient is the gradient transformer type; "none" disables it.
	Gradient string `toml:"gradient" json:"gradient"`
}

type CategoryAxis struct {
	LowerMargin    float64 `toml:"lower_margin" json:"lower_margin"`
	UpperMargin    float64 `toml:"upper_margin" json:"upper_margin"`
	CategoryMargin float64 `toml:"category_margin" json:"category_margin"`
}

// ValueAxis configures the range axis. Setting both Min and Max fixes the
// range and turns auto-ranging off.
type ValueAxis struct {
	LowerMargin float64  `toml:"lower_margin" json:"lower_margin"`
	UpperMargin float64  `toml:"upper_margin" json:"upper_margin"`
	Inverted    bool     `toml:"inverted" json:"inverted"`
	Min         *float64 `toml:"min" json:"min,omitempty"`
	Max         *float64 `toml:"max" json:"max,omitempty"`
	Ticks       int      `toml:"ticks" json:"ticks"`
}

// Style holds colours as "#rrggbb" strings.
type Style struct {
	Palette      []string          `toml:"palette" json:"palette,omitempty"`
	Series       map[string]string `toml:"series" json:"series,omitempty"`
	Gradient     bool              `toml:"gradient" json:"gradient"`
	Outline      string            `toml:"outline" json:"outline"`
	OutlineWidth float64           `toml:"outline_width" json:"outline_width"`
	Background   string            `toml:"background" json:"background"`
	PlotBorder   string            `toml:"plot_border" json:"plot_border"`
	LabelColor   string            `toml:"label_color" json:"label_color"`
}

type Labels struct {
	Visible          bool     `toml:"visible" json:"visible"`
	Series           []string `toml:"series" json:"series,omitempty"`
	Format           string   `toml:"format" json:"format"`
	ToolTipFormat    string   `toml:"tooltip_format" json:"tooltip_format"`
	URLPrefix        string   `toml:"url_prefix" json:"url_prefix,omitempty"`
	Locale           string   `toml:"locale" json:"locale"`
	Decimals         int      `toml:"decimals" json:"decimals"`
	Position         string   `toml:"position" json:"position"`
	NegativePosition string   `toml:"negative_position" json:"negative_position"`
	Offset           float64  `toml:"offset" json:"offset"`
}

// MaxSize bounds the chart width and height, in points.
const MaxSize = 10000.0

// MirrorPosition as labels.negative_position places negative labels at the
// mirror image of labels.position, swapping the bar's end and base.
const MirrorPosition = "mirror"

// Group assigns series to a named group.
type Group struct {
	Name   string   `toml:"name" json:"name"`
	Series []string `toml:"series" json:"series"`
}

// Default returns the built-in configuration.
func Default() Chart {
	return Chart{
		Width:        800,
		Height:       600,
		Orientation:  "vertical",
		DefaultGroup: group.DefaultGroup,
		Renderer: Renderer{
			MaxBarWidth:    1.0,
			ItemMargin:     0.2,
			DrawBarOutline: true,
			Gradient:       "vertical",
		},
		CategoryAxis: CategoryAxis{
			LowerMargin:    axis.DefaultLowerMargin,
			UpperMargin:    axis.DefaultUpperMargin,
			CategoryMargin: axis.DefaultCategoryMargin,
		},
		ValueAxis: ValueAxis{
			LowerMargin: axis.DefaultValueLowerMargin,
			UpperMargin: axis.DefaultValueUpperMargin,
			Ticks:       8,
		},
		Style: Style{
			Outline:      "#808080",
			OutlineWidth: 1,
			Background:   "#ffffff",
			PlotBorder:   "#808080",
			LabelColor:   "#000000",
		},
		Labels: Labels{
			Format:           "{2}",
			ToolTipFormat:    "({0}, {1}) = {2}",
			Locale:           "en",
			Decimals:         2,
			Position:         "center",
			NegativePosition: "center",
			Offset:           4,
		},
	}
}

// Load reads and validates a chart file.
func Load(path string) (Chart, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Chart{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Chart{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "config %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML from r on top of [Default] and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Chart, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Chart{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Chart{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return Chart{}, err
	}
	return c, nil
}

// DecodeJSON reads a JSON config on top of [Default]. The HTTP service
// accepts configs in this form.
func DecodeJSON(b []byte) (Chart, error) {
	c := Default()
	if len(bytes.TrimSpace(b)) > 0 {
		if err := json.Unmarshal(b, &c); err != nil {
			return Chart{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
		}
	}
	if err := c.Validate(); err != nil {
		return Chart{}, err
	}
	return c, nil
}

// WriteTOML encodes c as TOML.
func (c Chart) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Hash identifies the configuration for artifact caching.
func (c Chart) Hash() string {
	b, _ := json.Marshal(c)
	return cache.Hash(b)
}
