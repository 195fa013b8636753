// Package axis maps categories and values to screen coordinates.
//
// [Category] divides the available space into equal category slots separated
// by gaps, leaving lower and upper margins at the ends of the axis. [Value]
// maps a numeric range linearly onto the data area.
package axis

import (
	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

// Default category axis margins, as fractions of the axis length.
const (
	DefaultLowerMargin    = 0.05
	DefaultUpperMargin    = 0.05
	DefaultCategoryMargin = 0.20
)

// Category is an axis of discrete, equally sized category slots.
type Category struct {
	Lower    float64 // margin before the first category
	Upper    float64 // margin after the last category
	Category float64 // total gap shared between adjacent categories
}

// NewCategory returns a category axis with the default margins.
func NewCategory() *Category {
	return &Category{
		Lower:    DefaultLowerMargin,
		Upper:    DefaultUpperMargin,
		Category: DefaultCategoryMargin,
	}
}

func (a *Category) LowerMargin() float64    { return a.Lower }
func (a *Category) UpperMargin() float64    { return a.Upper }
func (a *Category) CategoryMargin() float64 { return a.Category }

// CategoryStart returns the coordinate where slot category begins.
func (a *Category) CategoryStart(category, count int, area geom.Rect, edge geom.Edge) float64 {
	origin, available := extent(area, edge)
	size := a.categorySize(count, available)
	gap := a.categoryGap(count, available)
	return origin + available*a.Lower + float64(category)*(size+gap)
}

// CategoryMiddle returns the centre coordinate of slot category.
func (a *Category) CategoryMiddle(category, count int, area geom.Rect, edge geom.Edge) float64 {
	_, available := extent(area, edge)
	return a.CategoryStart(category, count, area, edge) + a.categorySize(count, available)/2
}

// CategoryEnd returns the coordinate where slot category ends.
func (a *Category) CategoryEnd(category, count int, area geom.Rect, edge geom.Edge) float64 {
	_, available := extent(area, edge)
	return a.CategoryStart(category, count, area, edge) + a.categorySize(count, available)
}

func (a *Category) categorySize(count int, available float64) float64 {
	if count > 1 {
		return available * (1 - a.Lower - a.Upper - a.Category) / float64(count)
	}
	if count == 1 {
		return available * (1 - a.Lower - a.Upper)
	}
	return 0
}

func (a *Category) categoryGap(count int, available float64) float64 {
	if count > 1 {
		return available * a.Category / float64(count-1)
	}
	return 0
}

// extent returns the start coordinate and length of area along an axis
// drawn on edge.
func extent(area geom.Rect, edge geom.Edge) (origin, length float64) {
	if edge.IsHorizontal() {
		return area.MinX(), area.W
	}
	return area.MinY(), area.H
}
