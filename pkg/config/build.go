package config

import (
	"image/color"
	"slices"

	"github.com/matzehuels/stackbar/pkg/chart/axis"
	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/group"
	"github.com/matzehuels/stackbar/pkg/chart/label"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
	"github.com/matzehuels/stackbar/pkg/chart/plot"
	"github.com/matzehuels/stackbar/pkg/chart/renderer"
	"github.com/matzehuels/stackbar/pkg/render/sink"
)

// GroupMap builds the series-to-group map. Groups get their index in the
// order they are listed, after the default group.
func (c Chart) GroupMap() *group.Map {
	m := group.NewWithDefault(c.DefaultGroup)
	for _, g := range c.Groups {
		for _, s := range g.Series {
			m.Set(s, g.Name)
		}
	}
	return m
}

// Settings converts the [renderer] table.
func (c Chart) Settings() renderer.Settings {
	s := renderer.Settings{
		MaximumBarWidth:  c.Renderer.MaxBarWidth,
		ItemMargin:       c.Renderer.ItemMargin,
		MinimumBarLength: c.Renderer.MinimumBarLength,
		DrawBarOutline:   c.Renderer.DrawBarOutline,
	}
	if t, err := paint.ParseGradientType(c.Renderer.Gradient); err == nil {
		s.GradientTransformer = paint.StandardGradientTransformer{Type: t}
	}
	return s
}

// Styler builds the series styler. Per-series settings are matched against
// the row keys of ds.
func (c Chart) Styler(ds data.Dataset) *renderer.SeriesStyler {
	st := renderer.NewSeriesStyler()
	if len(c.Style.Palette) > 0 {
		st.Palette = make([]color.RGBA, 0, len(c.Style.Palette))
		for _, hex := range c.Style.Palette {
			st.Palette = append(st.Palette, paint.MustColor(hex))
		}
	}
	st.Gradient = c.Style.Gradient
	st.OutlinePaint = solid(c.Style.Outline)
	st.Stroke = paint.Stroke{Width: c.Style.OutlineWidth}
	st.LabelPaint = solid(c.Style.LabelColor)

	numbers := []label.Option{label.WithLocale(c.Labels.Locale), label.WithDecimals(c.Labels.Decimals)}
	st.Labels = label.NewStandard(c.Labels.Format, numbers...)
	st.LabelsVisible = c.Labels.Visible
	if c.Labels.ToolTipFormat != "" {
		st.ToolTips = label.NewStandard(c.Labels.ToolTipFormat, numbers...)
	}
	if c.Labels.URLPrefix != "" {
		st.URLs = label.NewStandardURL(c.Labels.URLPrefix)
	}
	pos, _ := label.ParseAnchor(c.Labels.Position)
	st.PositivePosition = label.Position{Anchor: pos, Offset: c.Labels.Offset}
	if c.Labels.NegativePosition == MirrorPosition {
		st.NegativePosition = st.PositivePosition.Flip()
	} else {
		neg, _ := label.ParseAnchor(c.Labels.NegativePosition)
		st.NegativePosition = label.Position{Anchor: neg, Offset: c.Labels.Offset}
	}

	if ds == nil {
		return st
	}
	for row := range ds.RowCount() {
		key := ds.RowKey(row)
		if hex, ok := c.Style.Series[key]; ok {
			if st.SeriesPaint == nil {
				st.SeriesPaint = make(map[int]paint.Paint)
			}
			p := paint.Solid(paint.MustColor(hex))
			if c.Style.Gradient {
				p = paint.LinearGradient(geom.Point{}, p.Color, geom.Point{}, paint.Lighter(p.Color, 0.5))
			}
			st.SeriesPaint[row] = p
		}
		if slices.Contains(c.Labels.Series, key) {
			if st.SeriesLabelsVisible == nil {
				st.SeriesLabelsVisible = make(map[int]bool)
			}
			st.SeriesLabelsVisible[row] = true
		}
	}
	return st
}

// Build assembles a plot showing ds. The configuration is validated first.
func (c Chart) Build(ds data.Dataset) (*plot.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	r := renderer.New()
	if err := r.SetSettings(c.Settings()); err != nil {
		return nil, err
	}
	if err := r.SetGroupMap(c.GroupMap()); err != nil {
		return nil, err
	}
	if err := r.SetStyler(c.Styler(ds)); err != nil {
		return nil, err
	}

	p := plot.New(ds, r)
	o, _ := geom.ParseOrientation(c.Orientation)
	p.SetOrientation(o)
	*p.DomainAxis() = axis.Category{
		Lower:    c.CategoryAxis.LowerMargin,
		Upper:    c.CategoryAxis.UpperMargin,
		Category: c.CategoryAxis.CategoryMargin,
	}
	va := p.ValueAxis()
	va.Lower, va.Upper, va.Inverted = c.ValueAxis.LowerMargin, c.ValueAxis.UpperMargin, c.ValueAxis.Inverted
	if c.ValueAxis.Min != nil {
		va.Range = data.Range{Lower: *c.ValueAxis.Min, Upper: *c.ValueAxis.Max}
		p.AutoRange = false
	}
	p.Outline = solid(c.Style.PlotBorder)
	return p, nil
}

// SinkOptions returns the frame options for the render sinks.
func (c Chart) SinkOptions() []sink.Option {
	return []sink.Option{
		sink.WithSize(c.Width, c.Height),
		sink.WithTitle(c.Title),
		sink.WithBackground(solid(c.Style.Background)),
		sink.WithTicks(c.ValueAxis.Ticks),
		sink.WithNumberFormat(label.NewStandard(c.Labels.Format,
			label.WithLocale(c.Labels.Locale), label.WithDecimals(c.Labels.Decimals))),
	}
}

// solid parses a validated colour; "" and "none" are transparent.
func solid(hex string) paint.Paint {
	if hex == "" || hex == "none" {
		return paint.Solid(color.RGBA{})
	}
	return paint.Solid(paint.MustColor(hex))
}
