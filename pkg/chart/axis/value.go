package axis

import (
	"github.com/aclements/go-moremath/scale"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

// Default value axis margins, as fractions of the data range.
const (
	DefaultValueLowerMargin = 0.05
	DefaultValueUpperMargin = 0.05
)

// Value is a linear numeric axis.
type Value struct {
	Range    data.Range
	Lower    float64 // fraction of the range length added below auto ranges
	Upper    float64 // fraction of the range length added above auto ranges
	Inverted bool
}

// NewValue returns a value axis spanning [0, 1] with the default margins.
func NewValue() *Value {
	return &Value{
		Range: data.Range{Lower: 0, Upper: 1},
		Lower: DefaultValueLowerMargin,
		Upper: DefaultValueUpperMargin,
	}
}

// AutoRange sets the axis range to r widened by the axis margins. A zero
// length range is widened to one unit around its value so that the mapping
// stays defined.
func (a *Value) AutoRange(r data.Range) {
	length := r.Length()
	if length <= 0 {
		a.Range = data.Range{Lower: r.Lower - 0.5, Upper: r.Upper + 0.5}
		return
	}
	a.Range = data.Range{
		Lower: r.Lower - length*a.Lower,
		Upper: r.Upper + length*a.Upper,
	}
}

// ValueToPixel maps v to a screen coordinate within area for an axis drawn
// on edge. Horizontal axes grow to the right and vertical axes grow upwards;
// Inverted flips the direction.
func (a *Value) ValueToPixel(v float64, area geom.Rect, edge geom.Edge) float64 {
	var lo, hi float64
	if edge.IsHorizontal() {
		lo, hi = area.MinX(), area.MaxX()
	} else {
		lo, hi = area.MaxY(), area.MinY()
	}
	if a.Inverted {
		lo, hi = hi, lo
	}
	if a.Range.Length() == 0 {
		return lo
	}
	t := scale.Linear{Min: a.Range.Lower, Max: a.Range.Upper}.Map(v)
	return lo + t*(hi-lo)
}

// Ticks returns at most max round tick values within the axis range.
func (a *Value) Ticks(max int) []float64 {
	if a.Range.Length() <= 0 || max < 1 {
		return nil
	}
	major, _ := scale.Linear{Min: a.Range.Lower, Max: a.Range.Upper}.Ticks(scale.TickOptions{Max: max})
	return major
}
