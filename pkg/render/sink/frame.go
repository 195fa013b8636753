package sink

import (
	"unicode/utf8"

	"github.com/matzehuels/stackbar/pkg/chart/entity"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/label"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
	"github.com/matzehuels/stackbar/pkg/chart/plot"
	"github.com/matzehuels/stackbar/pkg/chart/renderer"
	"github.com/matzehuels/stackbar/pkg/chart/surface"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// Frame defaults.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultScale  = 2.0
	DefaultTicks  = 8

	// MaxScale and MaxPixels bound the raster allocated by RenderPNG.
	MaxScale  = 4.0
	MaxPixels = 1 << 25

	padding     = 16.0
	titleHeight = 24.0
	axisLeft    = 64.0
	axisBottom  = 22.0
	legendRow   = 22.0
	tickLength  = 4.0
	swatch      = 10.0
)

var textPaint = paint.Solid(paint.MustColor("#333"))

// Option configures a sink.
type Option func(*options)

type options struct {
	width, height float64
	title         string
	scale         float64
	background    paint.Paint
	axes          bool
	legend        bool
	regions       bool
	ticks         int
	numbers       *label.Standard
	fontSize      float64
}

func newOptions(opts []Option) *options {
	o := &options{
		width:      DefaultWidth,
		height:     DefaultHeight,
		scale:      DefaultScale,
		background: paint.Solid(paint.MustColor("#fff")),
		axes:       true,
		legend:     true,
		regions:    true,
		ticks:      DefaultTicks,
		numbers:    label.NewStandard(""),
		fontSize:   surface.DefaultFontSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSize sets the output size in points. Non-positive values keep the default.
func WithSize(width, height float64) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

func WithTitle(title string) Option { return func(o *options) { o.title = title } }

// WithScale sets the PNG pixel density (default 2 for 2x resolution).
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

// CheckRaster rejects PNG sizes that would exceed MaxScale or MaxPixels.
func CheckRaster(width, height, scale float64) error {
	if !(scale > 0 && scale <= MaxScale) {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be within (0, %g], got %g", MaxScale, scale)
	}
	if px := width * scale * height * scale; !(px > 0 && px <= MaxPixels) {
		return errors.New(errors.ErrCodeInvalidConfig, "png of %gx%g at scale %g exceeds %d pixels", width, height, scale, MaxPixels)
	}
	return nil
}

// WithBackground sets the frame fill. A transparent paint leaves it unfilled.
func WithBackground(p paint.Paint) Option { return func(o *options) { o.background = p } }

// WithoutAxes hides tick and category labels.
func WithoutAxes() Option { return func(o *options) { o.axes = false } }

// WithoutLegend hides the series legend.
func WithoutLegend() Option { return func(o *options) { o.legend = false } }

// WithoutRegions omits SVG tooltip and link regions.
func WithoutRegions() Option { return func(o *options) { o.regions = false } }

// WithTicks sets the maximum number of value axis ticks.
func WithTicks(n int) Option { return func(o *options) { o.ticks = n } }

// WithNumberFormat formats tick labels with the given generator's locale and
// precision.
func WithNumberFormat(s *label.Standard) Option {
	return func(o *options) {
		if s != nil {
			o.numbers = s
		}
	}
}

// Frame describes a finished layout.
type Frame struct {
	Width    float64
	Height   float64
	Area     geom.Rect
	Pass     plot.Pass
	Entities *entity.Collection
}

// dataArea is the frame minus title, axis and legend bands.
func (o *options) dataArea() geom.Rect {
	top, left, right, bottom := padding, padding, padding, padding
	if o.title != "" {
		top += titleHeight
	}
	if o.axes {
		left += axisLeft
		bottom += axisBottom
	}
	if o.legend {
		bottom += legendRow
	}
	return geom.NewRect(left, top, max(0, o.width-left-right), max(0, o.height-top-bottom))
}

// Draw lays out p on s and returns the resulting frame.
func Draw(s surface.Surface, p *plot.Category, opts ...Option) Frame {
	return draw(s, p, newOptions(opts))
}

// Measure runs the layout without producing output.
func Measure(p *plot.Category, opts ...Option) Frame {
	return Draw(&surface.Recorder{}, p, opts...)
}

func draw(s surface.Surface, p *plot.Category, o *options) Frame {
	if o.background.Primary().A != 0 {
		s.SetPaint(o.background)
		s.Fill(geom.NewRect(0, 0, o.width, o.height))
	}
	if o.title != "" {
		s.SetPaint(textPaint)
		s.DrawText(o.title, geom.Point{X: o.width / 2, Y: padding}, 0.5, 1)
	}

	area := o.dataArea()
	info := &renderer.Info{Entities: entity.NewCollection()}
	pass := p.Draw(s, area, info)

	if o.axes {
		drawValueTicks(s, p, area, o)
		drawCategoryLabels(s, p, area)
	}
	if o.legend {
		drawLegend(s, p, o)
	}
	return Frame{Width: o.width, Height: o.height, Area: area, Pass: pass, Entities: info.Entities}
}

func drawValueTicks(s surface.Surface, p *plot.Category, area geom.Rect, o *options) {
	va, edge := p.ValueAxis(), p.RangeAxisEdge()
	s.SetPaint(textPaint)
	for _, v := range va.Ticks(o.ticks) {
		px := va.ValueToPixel(v, area, edge)
		text := o.numbers.FormatValue(v)
		if p.Orientation() == geom.Vertical {
			s.Fill(geom.NewRect(area.MinX()-tickLength, px-0.5, tickLength, 1))
			s.DrawText(text, geom.Point{X: area.MinX() - tickLength - 2, Y: px}, 1, 0.5)
		} else {
			s.Fill(geom.NewRect(px-0.5, area.MaxY(), 1, tickLength))
			s.DrawText(text, geom.Point{X: px, Y: area.MaxY() + tickLength + 2}, 0.5, 1)
		}
	}
}

func drawCategoryLabels(s surface.Surface, p *plot.Category, area geom.Rect) {
	ds := p.Dataset(0)
	if ds == nil {
		return
	}
	n, edge := ds.ColumnCount(), p.DomainAxisEdge()
	s.SetPaint(textPaint)
	for c := range n {
		m := p.DomainAxis().CategoryMiddle(c, n, area, edge)
		if p.Orientation() == geom.Vertical {
			s.DrawText(ds.ColumnKey(c), geom.Point{X: m, Y: area.MaxY() + 6}, 0.5, 1)
		} else {
			s.DrawText(ds.ColumnKey(c), geom.Point{X: area.MinX() - 6, Y: m}, 1, 0.5)
		}
	}
}

// drawLegend lays series swatches out left to right along the bottom band.
// Text widths are estimated from the font size.
func drawLegend(s surface.Surface, p *plot.Category, o *options) {
	ds, r := p.Dataset(0), p.Renderer(0)
	if ds == nil || r == nil || r.Styler() == nil {
		return
	}
	styler := r.Styler()
	x, y := padding, o.height-padding-legendRow/2
	for row := range ds.RowCount() {
		key := ds.RowKey(row)
		s.SetPaint(paint.Solid(styler.ItemPaint(row, 0).Primary()))
		s.Fill(geom.NewRect(x, y-swatch/2, swatch, swatch))
		s.SetPaint(textPaint)
		s.DrawText(key, geom.Point{X: x + swatch + 4, Y: y}, 0, 0.5)
		x += swatch + 4 + textWidth(key, o.fontSize) + 16
	}
}

func textWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.6
}
