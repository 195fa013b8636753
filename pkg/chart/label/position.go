package label

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

// Anchor names the point of a bar a label is attached to. End and base are
// measured along the bar's value direction, so for a negative value the end
// is the side facing away from zero.
type Anchor int

const (
	Center Anchor = iota
	InsideEnd
	OutsideEnd
	InsideBase
	OutsideBase
)

var anchorNames = map[Anchor]string{
	Center:      "center",
	InsideEnd:   "inside-end",
	OutsideEnd:  "outside-end",
	InsideBase:  "inside-base",
	OutsideBase: "outside-base",
}

func (a Anchor) String() string {
	if s, ok := anchorNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// ParseAnchor converts a config name into an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range anchorNames {
		if name == s {
			return a, nil
		}
	}
	return Center, fmt.Errorf("unknown label anchor %q", s)
}

// Position places a label relative to its bar. Offset is the gap in pixels
// between the anchor edge and the text.
type Position struct {
	Anchor Anchor
	Offset float64
}

// DefaultPosition centres labels inside their bars.
var DefaultPosition = Position{Anchor: Center, Offset: 4}

// Flip mirrors the position between the end and the base of the bar.
func (p Position) Flip() Position {
	switch p.Anchor {
	case InsideEnd:
		p.Anchor = InsideBase
	case InsideBase:
		p.Anchor = InsideEnd
	case OutsideEnd:
		p.Anchor = OutsideBase
	case OutsideBase:
		p.Anchor = OutsideEnd
	}
	return p
}

// Locate returns the text anchor point for a label on bar, plus the
// horizontal and vertical alignment fractions understood by
// surface.Surface.DrawText. endAtMax reports whether the value end of the
// bar lies on its larger coordinate along the value direction: the bottom
// edge for vertical bars, the right edge for horizontal ones.
func (p Position) Locate(bar geom.Rect, o geom.Orientation, endAtMax bool) (at geom.Point, ax, ay float64) {
	if p.Anchor == Center {
		return bar.Center(), 0.5, 0.5
	}

	vertical := o != geom.Horizontal
	lo, hi := bar.MinX(), bar.MaxX()
	if vertical {
		lo, hi = bar.MinY(), bar.MaxY()
	}
	base, end, dir := hi, lo, -1.0
	if endAtMax {
		base, end, dir = lo, hi, 1.0
	}

	// side is +1 when the text extends along the growth direction.
	var pos, side float64
	switch p.Anchor {
	case InsideEnd:
		pos, side = end-dir*p.Offset, -1
	case OutsideEnd:
		pos, side = end+dir*p.Offset, 1
	case InsideBase:
		pos, side = base+dir*p.Offset, 1
	default:
		pos, side = base-dir*p.Offset, -1
	}
	forward := side*dir > 0

	if vertical {
		ay = 0
		if forward {
			ay = 1
		}
		return geom.Point{X: bar.CenterX(), Y: pos}, 0.5, ay
	}
	ax = 1
	if forward {
		ax = 0
	}
	return geom.Point{X: pos, Y: bar.CenterY()}, ax, 0.5
}
