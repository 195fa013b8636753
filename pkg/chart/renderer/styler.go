package renderer

import (
	"image/color"

	"github.com/matzehuels/stackbar/pkg/chart/label"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
)

// SeriesStyler styles items by series: the row index picks a colour from the
// palette, and labels can be switched on or off per series.
type SeriesStyler struct {
	Palette []color.RGBA
	// SeriesPaint overrides the palette for individual rows.
	SeriesPaint map[int]paint.Paint
	// Gradient fills bars with a gradient from the series colour to a
	// lighter tint instead of a solid colour.
	Gradient bool

	OutlinePaint paint.Paint
	Stroke       paint.Stroke
	LabelPaint   paint.Paint

	Labels        label.Generator
	LabelsVisible bool
	// SeriesLabelsVisible overrides LabelsVisible for individual rows.
	SeriesLabelsVisible map[int]bool
	PositivePosition    label.Position
	NegativePosition    label.Position

	ToolTips label.Generator
	URLs     label.URLGenerator
}

// NewSeriesStyler returns a styler using the default palette, grey outlines
// and hidden labels.
func NewSeriesStyler() *SeriesStyler {
	return &SeriesStyler{
		Palette:          paint.DefaultPalette,
		OutlinePaint:     paint.Solid(paint.MustColor("#808080")),
		Stroke:           paint.DefaultStroke,
		LabelPaint:       paint.Solid(paint.MustColor("#000")),
		PositivePosition: label.DefaultPosition,
		NegativePosition: label.DefaultPosition,
	}
}

func (s *SeriesStyler) ItemPaint(row, column int) paint.Paint {
	if p, ok := s.SeriesPaint[row]; ok {
		return p
	}
	palette := s.Palette
	if len(palette) == 0 {
		palette = paint.DefaultPalette
	}
	c := palette[row%len(palette)]
	if s.Gradient {
		var p paint.Paint
		p.Kind = paint.KindGradient
		p.Gradient.C1 = c
		p.Gradient.C2 = paint.Lighter(c, 0.5)
		return p
	}
	return paint.Solid(c)
}

func (s *SeriesStyler) ItemOutlinePaint(row, column int) paint.Paint { return s.OutlinePaint }
func (s *SeriesStyler) ItemStroke(row, column int) paint.Stroke       { return s.Stroke }
func (s *SeriesStyler) ItemLabelPaint(row, column int) paint.Paint   { return s.LabelPaint }
func (s *SeriesStyler) LabelGenerator(row, column int) label.Generator {
	return s.Labels
}

func (s *SeriesStyler) IsItemLabelVisible(row, column int) bool {
	if v, ok := s.SeriesLabelsVisible[row]; ok {
		return v
	}
	return s.LabelsVisible
}

func (s *SeriesStyler) PositiveLabelPosition(row, column int) label.Position {
	return s.PositivePosition
}

func (s *SeriesStyler) NegativeLabelPosition(row, column int) label.Position {
	return s.NegativePosition
}

func (s *SeriesStyler) ToolTipGenerator(row, column int) label.Generator { return s.ToolTips }
func (s *SeriesStyler) URLGenerator(row, column int) label.URLGenerator  { return s.URLs }
