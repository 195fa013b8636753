package data

import (
	"fmt"

	"github.com/matzehuels/stackbar/pkg/chart/group"
)

// Range is a closed interval of values.
type Range struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Length returns Upper - Lower.
func (r Range) Length() float64 { return r.Upper - r.Lower }

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool { return v >= r.Lower && v <= r.Upper }

// Combine returns the smallest range spanning r and o.
func (r Range) Combine(o Range) Range {
	return Range{Lower: min(r.Lower, o.Lower), Upper: max(r.Upper, o.Upper)}
}

func (r Range) String() string { return fmt.Sprintf("[%g, %g]", r.Lower, r.Upper) }

// FindStackedRangeBounds returns the value range needed to display ds when
// series are stacked per group according to m. Within every category each
// group accumulates positive values upwards and non-positive values
// downwards; the result spans the lowest negative and the highest positive
// total reached by any group, and always includes zero.
//
// The second result is false when ds is nil, has no cells, or holds no
// present values.
func FindStackedRangeBounds(ds Dataset, m *group.Map) (Range, bool) {
	if ds == nil {
		return Range{}, false
	}
	rows, cols := ds.RowCount(), ds.ColumnCount()
	if rows == 0 || cols == 0 {
		return Range{}, false
	}
	if m == nil {
		m = group.New()
	}

	groupIndex := make([]int, rows)
	for r := range rows {
		groupIndex[r] = m.Index(m.GroupOf(ds.RowKey(r)))
	}

	groups := m.Count()
	minimum := make([]float64, groups)
	maximum := make([]float64, groups)
	positive := make([]float64, groups)
	negative := make([]float64, groups)
	valid := false

	for c := range cols {
		clear(positive)
		clear(negative)
		for r := range rows {
			v, ok := ds.Value(r, c)
			if !ok {
				continue
			}
			valid = true
			if v > 0 {
				positive[groupIndex[r]] += v
			} else {
				negative[groupIndex[r]] += v
			}
		}
		for g := range groups {
			minimum[g] = min(minimum[g], negative[g])
			maximum[g] = max(maximum[g], positive[g])
		}
	}
	if !valid {
		return Range{}, false
	}

	out := Range{Lower: minimum[0], Upper: maximum[0]}
	for g := 1; g < groups; g++ {
		out = out.Combine(Range{Lower: minimum[g], Upper: maximum[g]})
	}
	return out, true
}
