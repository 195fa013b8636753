// Package surface defines the 2D drawing target charts are painted onto and
// provides three implementations:
//
//   - [Recorder] keeps an in-memory log of every call, for tests and for
//     inspecting a pass after the fact.
//   - [SVG] writes SVG markup.
//   - [Raster] paints into an RGBA image with github.com/fogleman/gg.
//
// A surface is stateful in the way a pen is: [Surface.SetPaint] and
// [Surface.SetStroke] affect every following Fill, Draw and DrawText call.
package surface

import (
	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
)

// Surface is a 2D drawing target.
type Surface interface {
	SetPaint(p paint.Paint)
	SetStroke(s paint.Stroke)
	// Fill paints the interior of r with the current paint.
	Fill(r geom.Rect)
	// Draw strokes the border of r with the current paint and stroke.
	Draw(r geom.Rect)
	// DrawText draws text so that the point (ax, ay) of its bounding box,
	// expressed as fractions of its width and height, lies at "at". ax=0 puts
	// the text to the right of the point and ax=1 to its left; ay=0 sits the
	// text on the point and ay=1 hangs it below.
	DrawText(text string, at geom.Point, ax, ay float64)
}
