package surface

import (
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
)

// Raster is a Surface backed by a gg drawing context. Coordinates are given
// in chart units and multiplied by the scale passed to [NewRaster].
type Raster struct {
	dc     *gg.Context
	scale  float64
	paint  paint.Paint
	stroke paint.Stroke
}

// NewRaster allocates a width×height chart at the given pixel scale.
func NewRaster(width, height, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(width*scale+0.5), int(height*scale+0.5))
	dc.Scale(scale, scale)
	return &Raster{
		dc:     dc,
		scale:  scale,
		paint:  paint.Solid(paint.MustColor("#000")),
		stroke: paint.DefaultStroke,
	}
}

func (r *Raster) SetPaint(p paint.Paint)    { r.paint = p }
func (r *Raster) SetStroke(s paint.Stroke) { r.stroke = s }

func (r *Raster) Fill(rect geom.Rect) {
	r.dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	r.dc.SetFillStyle(r.pattern())
	r.dc.Fill()
}

func (r *Raster) Draw(rect geom.Rect) {
	r.dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	r.dc.SetStrokeStyle(r.pattern())
	r.dc.SetLineWidth(r.stroke.Width)
	r.dc.SetDash(r.stroke.Dash...)
	r.dc.Stroke()
}

func (r *Raster) DrawText(text string, at geom.Point, ax, ay float64) {
	r.dc.SetColor(r.paint.Primary())
	r.dc.DrawStringAnchored(text, at.X, at.Y, ax, ay)
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

func (r *Raster) pattern() gg.Pattern {
	if !r.paint.IsGradient() {
		return gg.NewSolidPattern(r.paint.Color)
	}
	g := r.paint.Gradient
	if !g.Cyclic {
		lg := gg.NewLinearGradient(g.P1.X, g.P1.Y, g.P2.X, g.P2.Y)
		lg.AddColorStop(0, g.C1)
		lg.AddColorStop(1, g.C2)
		return lg
	}
	// gg clamps beyond the end points, so reflect one period on each side.
	dx, dy := g.P2.X-g.P1.X, g.P2.Y-g.P1.Y
	lg := gg.NewLinearGradient(g.P1.X-dx, g.P1.Y-dy, g.P2.X+dx, g.P2.Y+dy)
	lg.AddColorStop(0, g.C2)
	lg.AddColorStop(1.0/3, g.C1)
	lg.AddColorStop(2.0/3, g.C2)
	lg.AddColorStop(1, g.C1)
	return lg
}
