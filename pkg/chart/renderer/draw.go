package renderer

import (
	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/entity"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/label"
	"github.com/matzehuels/stackbar/pkg/chart/surface"
)

// DrawItem draws the bar for the item at (row, column). Absent values draw
// nothing and register no entity.
func (r *GroupedStackedBar) DrawItem(s surface.Surface, state *State, area geom.Rect, plot Plot,
	domainAxis CategoryAxis, rangeAxis ValueAxis, ds data.Dataset, row, column, pass int) {
	v, ok := ds.Value(row, column)
	if !ok {
		return
	}

	orientation := plot.Orientation()
	w0 := r.barStart(plot, area, domainAxis, state, ds, row, column)
	positive, negative := r.stackBases(ds, row, column)
	l0, length, endAtMax := r.valueExtent(v, positive, negative, area, rangeAxis, plot.RangeAxisEdge())

	bar := geom.NewRect(w0, l0, state.BarWidth, length)
	if orientation == geom.Horizontal {
		bar = geom.NewRect(l0, w0, length, state.BarWidth)
	}

	fill := r.styler.ItemPaint(row, column)
	if r.settings.GradientTransformer != nil && fill.IsGradient() {
		fill.Gradient = r.settings.GradientTransformer.Transform(fill.Gradient, bar)
	}
	s.SetPaint(fill)
	s.Fill(bar)
	if r.settings.DrawBarOutline && state.BarWidth > OutlineWidthThreshold {
		s.SetStroke(r.styler.ItemStroke(row, column))
		s.SetPaint(r.styler.ItemOutlinePaint(row, column))
		s.Draw(bar)
	}

	if gen := r.styler.LabelGenerator(row, column); gen != nil && r.styler.IsItemLabelVisible(row, column) {
		r.drawItemLabel(s, ds, row, column, orientation, gen, bar, v < 0, endAtMax)
	}

	if entities := state.EntityCollection(); entities != nil {
		r.addItemEntity(entities, ds, row, column, bar, v)
	}
}

func (r *GroupedStackedBar) drawItemLabel(s surface.Surface, ds data.Dataset, row, column int,
	o geom.Orientation, gen label.Generator, bar geom.Rect, negative, endAtMax bool) {
	text := gen.GenerateLabel(ds, row, column)
	if text == "" {
		return
	}
	pos := r.styler.PositiveLabelPosition(row, column)
	if negative {
		pos = r.styler.NegativeLabelPosition(row, column)
	}
	at, ax, ay := pos.Locate(bar, o, endAtMax)
	s.SetPaint(r.styler.ItemLabelPaint(row, column))
	s.DrawText(text, at, ax, ay)
}

func (r *GroupedStackedBar) addItemEntity(entities *entity.Collection, ds data.Dataset, row, column int, bar geom.Rect, v float64) {
	it := entity.Item{
		Area:        bar,
		Row:         row,
		Column:      column,
		SeriesKey:   ds.RowKey(row),
		CategoryKey: ds.ColumnKey(column),
		Value:       v,
	}
	if gen := r.styler.ToolTipGenerator(row, column); gen != nil {
		it.ToolTip = gen.GenerateLabel(ds, row, column)
	}
	if gen := r.styler.URLGenerator(row, column); gen != nil {
		it.URL = gen.GenerateURL(ds, row, column)
	}
	entities.Add(it)
}
