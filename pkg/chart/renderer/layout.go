package renderer

import (
	"math"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

// InitState starts a render pass over area for the renderer at position
// index in plot. The bar width stays zero when the plot has no dataset for
// that index.
func (r *GroupedStackedBar) InitState(area geom.Rect, plot Plot, index int, info *Info) *State {
	state := &State{Info: info}
	ds := plot.Dataset(index)
	axis := plot.DomainAxisForDataset(index)
	if ds == nil || axis == nil {
		return state
	}
	space := geom.Space(area, plot.Orientation())
	state.BarWidth = r.barWidth(space, axis, r.groups.Count(), ds.ColumnCount())
	return state
}

// barWidth divides the space left after margins among every bar slot of
// every category, capped by the maximum bar width.
func (r *GroupedStackedBar) barWidth(space float64, axis CategoryAxis, groups, categories int) float64 {
	maxWidth := space * r.settings.MaximumBarWidth
	columns := groups * categories

	var categoryMargin, itemMargin float64
	if categories > 1 {
		categoryMargin = axis.CategoryMargin()
	}
	if groups > 1 {
		itemMargin = r.settings.ItemMargin
	}
	used := space * (1 - axis.LowerMargin() - axis.UpperMargin() - categoryMargin - itemMargin)
	if columns > 0 {
		return min(used/float64(columns), maxWidth)
	}
	return min(used, maxWidth)
}

// seriesWidth is the width of one of n sibling slots in a category.
func (r *GroupedStackedBar) seriesWidth(space float64, axis CategoryAxis, categories, n int) float64 {
	factor := 1 - r.settings.ItemMargin - axis.LowerMargin() - axis.UpperMargin()
	if categories > 1 {
		factor -= axis.CategoryMargin()
	}
	return space * factor / float64(categories*n)
}

// barStart returns the coordinate of the leading side of the bar for row in
// column: its left edge for vertical plots, its top edge for horizontal ones.
func (r *GroupedStackedBar) barStart(plot Plot, area geom.Rect, axis CategoryAxis, state *State, ds data.Dataset, row, column int) float64 {
	space := geom.Space(area, plot.Orientation())
	edge := plot.DomainAxisEdge()
	categories := ds.ColumnCount()
	groups := r.groups.Count()

	if groups <= 1 {
		return axis.CategoryMiddle(column, categories, area, edge) - state.BarWidth/2
	}

	index := r.groups.Index(r.groups.GroupOf(ds.RowKey(row)))
	gap := space * r.settings.ItemMargin / float64(categories*(groups-1))
	groupWidth := r.seriesWidth(space, axis, categories, groups)
	start := axis.CategoryStart(column, categories, area, edge)
	return start + float64(index)*(groupWidth+gap) + groupWidth/2 - state.BarWidth/2
}

// stackBases sums the values of earlier rows in the same group and column.
// Rows are scanned by index; strictly positive values raise the positive
// base and everything else lowers the negative base.
func (r *GroupedStackedBar) stackBases(ds data.Dataset, row, column int) (positive, negative float64) {
	g := r.groups.GroupOf(ds.RowKey(row))
	for i := range row {
		if r.groups.GroupOf(ds.RowKey(i)) != g {
			continue
		}
		v, ok := ds.Value(i, column)
		if !ok {
			continue
		}
		if v > 0 {
			positive += v
		} else {
			negative += v
		}
	}
	return positive, negative
}

// valueExtent maps the stacked segment for value v onto the value axis and
// returns its leading coordinate and length. endAtMax reports whether the
// value end of the segment has the larger pixel coordinate, which depends on
// the axis direction as well as the sign of v.
func (r *GroupedStackedBar) valueExtent(v, positive, negative float64, area geom.Rect, axis ValueAxis, edge geom.Edge) (start, length float64, endAtMax bool) {
	base := negative
	if v > 0 {
		base = positive
	}
	p0 := axis.ValueToPixel(base, area, edge)
	p1 := axis.ValueToPixel(base+v, area, edge)

	grows := axis.ValueToPixel(base+1, area, edge) > p0
	endAtMax = grows != (v < 0)
	return min(p0, p1), max(math.Abs(p1-p0), r.settings.MinimumBarLength), endAtMax
}
