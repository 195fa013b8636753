// Package geom holds the small geometric vocabulary shared by the chart
// packages: rectangles in screen space, plot orientation and axis edges.
//
// Screen coordinates follow the usual raster convention: X grows to the
// right and Y grows downwards.
package geom

import (
	"fmt"
	"strings"
)

// Point is a location in screen space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect returns the rectangle with top-left corner (x, y) and size w×h.
func NewRect(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) MinX() float64    { return r.X }
func (r Rect) MaxX() float64    { return r.X + r.W }
func (r Rect) MinY() float64    { return r.Y }
func (r Rect) MaxY() float64    { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so that adjacent rectangles never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Inset shrinks r by the given amounts on each side. Sizes never go negative.
func (r Rect) Inset(top, right, bottom, left float64) Rect {
	return Rect{
		X: r.X + left,
		Y: r.Y + top,
		W: max(0, r.W-left-right),
		H: max(0, r.H-top-bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.W, r.H)
}

// Orientation is the direction in which bars grow.
type Orientation int

const (
	// Vertical bars grow up or down; categories run along the horizontal axis.
	Vertical Orientation = iota
	// Horizontal bars grow left or right; categories run along the vertical axis.
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation converts "vertical" / "horizontal" (case-insensitive,
// empty means vertical) into an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown orientation %q (must be 'vertical' or 'horizontal')", s)
}

// Edge identifies the side of the data area an axis is drawn against.
type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

// IsHorizontal reports whether an axis on this edge runs left to right.
func (e Edge) IsHorizontal() bool { return e == Top || e == Bottom }

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// DomainEdge is the default edge for the category axis of a plot with
// orientation o.
func DomainEdge(o Orientation) Edge {
	if o == Horizontal {
		return Left
	}
	return Bottom
}

// RangeEdge is the default edge for the value axis of a plot with
// orientation o.
func RangeEdge(o Orientation) Edge {
	if o == Horizontal {
		return Bottom
	}
	return Left
}

// Space returns the extent of area along the axis perpendicular to the
// value axis: the width for vertical plots and the height for horizontal.
func Space(area Rect, o Orientation) float64 {
	if o == Horizontal {
		return area.H
	}
	return area.W
}
