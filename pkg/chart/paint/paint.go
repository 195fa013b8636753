// Package paint describes how chart shapes are filled and outlined.
//
// A [Paint] is a tagged variant: either a solid colour or a two-point linear
// gradient. Code that needs to treat gradients specially checks
// [Paint.IsGradient] instead of inspecting concrete types.
package paint

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

// Kind tags the variant held by a Paint.
type Kind int

const (
	KindSolid Kind = iota
	KindGradient
)

// Gradient is a linear gradient from C1 at P1 to C2 at P2. Cyclic gradients
// mirror back and forth beyond the anchor points instead of clamping.
type Gradient struct {
	P1, P2 geom.Point
	C1, C2 color.RGBA
	Cyclic bool
}

// Paint fills or strokes a shape.
type Paint struct {
	Kind     Kind
	Color    color.RGBA
	Gradient Gradient
}

// Solid returns a solid paint of colour c.
func Solid(c color.RGBA) Paint { return Paint{Kind: KindSolid, Color: c} }

// LinearGradient returns a gradient paint.
func LinearGradient(p1 geom.Point, c1 color.RGBA, p2 geom.Point, c2 color.RGBA) Paint {
	return Paint{Kind: KindGradient, Gradient: Gradient{P1: p1, P2: p2, C1: c1, C2: c2}}
}

// IsGradient reports whether p holds a two-point gradient.
func (p Paint) IsGradient() bool { return p.Kind == KindGradient }

// Primary returns a representative colour: the solid colour, or the first
// gradient colour. Surfaces without gradient support fall back to it.
func (p Paint) Primary() color.RGBA {
	if p.IsGradient() {
		return p.Gradient.C1
	}
	return p.Color
}

// Stroke describes an outline pen.
type Stroke struct {
	Width float64
	Dash  []float64
}

// DefaultStroke is a solid one pixel pen.
var DefaultStroke = Stroke{Width: 1}

// Equal reports whether two strokes draw identically.
func (s Stroke) Equal(o Stroke) bool {
	if s.Width != o.Width || len(s.Dash) != len(o.Dash) {
		return false
	}
	for i := range s.Dash {
		if s.Dash[i] != o.Dash[i] {
			return false
		}
	}
	return true
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading '#' is
// optional).
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustColor is like ParseColor but panics on malformed input. It is meant
// for package-level palettes.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// DefaultPalette is the series colour cycle used when none is configured.
var DefaultPalette = []color.RGBA{
	MustColor("#4e79a7"),
	MustColor("#f28e2b"),
	MustColor("#e15759"),
	MustColor("#76b7b2"),
	MustColor("#59a14f"),
	MustColor("#edc948"),
	MustColor("#b07aa1"),
	MustColor("#ff9da7"),
	MustColor("#9c755f"),
	MustColor("#bab0ac"),
}

// Lighter returns c blended towards white by f in [0, 1].
func Lighter(c color.RGBA, f float64) color.RGBA {
	mix := func(v uint8) uint8 { return uint8(float64(v) + (255-float64(v))*f) }
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
