package paint

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

// GradientTransformer re-anchors a gradient so that it spans a shape.
type GradientTransformer interface {
	Transform(g Gradient, bounds geom.Rect) Gradient
}

// GradientType selects how [StandardGradientTransformer] lays a gradient
// over a shape.
type GradientType int

const (
	// GradientVertical runs from the top edge to the bottom edge.
	GradientVertical GradientType = iota
	// GradientHorizontal runs from the left edge to the right edge.
	GradientHorizontal
	// GradientCenterVertical runs from the top edge to the centre and mirrors.
	GradientCenterVertical
	// GradientCenterHorizontal runs from the centre to the right edge and mirrors.
	GradientCenterHorizontal
)

// ParseGradientType converts a config name into a GradientType.
func ParseGradientType(s string) (GradientType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical":
		return GradientVertical, nil
	case "horizontal":
		return GradientHorizontal, nil
	case "center-vertical", "center_vertical":
		return GradientCenterVertical, nil
	case "center-horizontal", "center_horizontal":
		return GradientCenterHorizontal, nil
	}
	return GradientVertical, fmt.Errorf("unknown gradient type %q", s)
}

// StandardGradientTransformer anchors gradients to a shape's edges or centre.
type StandardGradientTransformer struct {
	Type GradientType
}

// Transform implements [GradientTransformer].
func (t StandardGradientTransformer) Transform(g Gradient, b geom.Rect) Gradient {
	switch t.Type {
	case GradientHorizontal:
		return Gradient{
			P1: geom.Point{X: b.MinX(), Y: b.CenterY()}, C1: g.C1,
			P2: geom.Point{X: b.MaxX(), Y: b.CenterY()}, C2: g.C2,
		}
	case GradientCenterHorizontal:
		return Gradient{
			P1: geom.Point{X: b.CenterX(), Y: b.CenterY()}, C1: g.C2,
			P2: geom.Point{X: b.MaxX(), Y: b.CenterY()}, C2: g.C1,
			Cyclic: true,
		}
	case GradientCenterVertical:
		return Gradient{
			P1: geom.Point{X: b.CenterX(), Y: b.MinY()}, C1: g.C1,
			P2: geom.Point{X: b.CenterX(), Y: b.CenterY()}, C2: g.C2,
			Cyclic: true,
		}
	default:
		return Gradient{
			P1: geom.Point{X: b.CenterX(), Y: b.MinY()}, C1: g.C1,
			P2: geom.Point{X: b.CenterX(), Y: b.MaxY()}, C2: g.C2,
		}
	}
}
