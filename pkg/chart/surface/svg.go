package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
)

const (
	DefaultFontFamily = `system-ui, -apple-system, "Segoe UI", Roboto, sans-serif`
	DefaultFontSize   = 11.0
)

// SVG is a Surface that writes SVG markup. Gradients are emitted as inline
// <linearGradient> definitions right before the shape that uses them.
type SVG struct {
	buf       bytes.Buffer
	width     float64
	height    float64
	paint     paint.Paint
	stroke    paint.Stroke
	gradients int

	FontFamily string
	FontSize   float64
}

// NewSVG starts a document of the given size.
func NewSVG(width, height float64) *SVG {
	s := &SVG{
		width:      width,
		height:     height,
		paint:      paint.Solid(paint.MustColor("#000")),
		stroke:     paint.DefaultStroke,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
	}
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	return s
}

func (s *SVG) SetPaint(p paint.Paint)   { s.paint = p }
func (s *SVG) SetStroke(st paint.Stroke) { s.stroke = st }

func (s *SVG) Fill(r geom.Rect) {
	fill := s.fillRef()
	fmt.Fprintf(&s.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
		r.X, r.Y, r.W, r.H, fill, opacityAttr("fill-opacity", s.paint.Primary().A))
}

func (s *SVG) Draw(r geom.Rect) {
	stroke := s.fillRef()
	fmt.Fprintf(&s.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"%s%s/>`+"\n",
		r.X, r.Y, r.W, r.H, stroke, s.stroke.Width, dashAttr(s.stroke.Dash),
		opacityAttr("stroke-opacity", s.paint.Primary().A))
}

func (s *SVG) DrawText(text string, at geom.Point, ax, ay float64) {
	fmt.Fprintf(&s.buf, `  <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="%s" font-family='%s' font-size="%.1f" fill="%s">%s</text>`+"\n",
		at.X, at.Y, textAnchor(ax), baseline(ay), s.FontFamily, s.FontSize,
		paint.Hex(s.paint.Primary()), EscapeXML(text))
}

// Region adds an invisible hit area carrying a tooltip and, when url is set,
// a link. Regions are drawn on top of what was painted before them.
func (s *SVG) Region(r geom.Rect, title, url string) {
	if title == "" && url == "" {
		return
	}
	WrapURL(&s.buf, url, func() {
		fmt.Fprintf(&s.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="transparent">`,
			r.X, r.Y, r.W, r.H)
		if title != "" {
			fmt.Fprintf(&s.buf, "<title>%s</title>", EscapeXML(title))
		}
		s.buf.WriteString("</rect>")
	})
	s.buf.WriteString("\n")
}

// Raw appends markup verbatim. Callers are responsible for its validity.
func (s *SVG) Raw(markup string) { s.buf.WriteString(markup) }

// Bytes returns the complete document. It can be called more than once.
func (s *SVG) Bytes() []byte {
	out := make([]byte, 0, s.buf.Len()+8)
	out = append(out, s.buf.Bytes()...)
	return append(out, "</svg>\n"...)
}

// fillRef returns the colour or gradient reference for the current paint,
// emitting the gradient definition first when needed.
func (s *SVG) fillRef() string {
	if !s.paint.IsGradient() {
		return paint.Hex(opaque(s.paint.Color))
	}
	g := s.paint.Gradient
	s.gradients++
	id := fmt.Sprintf("grad%d", s.gradients)
	spread := ""
	if g.Cyclic {
		spread = ` spreadMethod="reflect"`
	}
	fmt.Fprintf(&s.buf, `  <defs><linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s>`,
		id, g.P1.X, g.P1.Y, g.P2.X, g.P2.Y, spread)
	fmt.Fprintf(&s.buf, `<stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></linearGradient></defs>`+"\n",
		paint.Hex(opaque(g.C1)), paint.Hex(opaque(g.C2)))
	return "url(#" + id + ")"
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}

func opacityAttr(name string, a uint8) string {
	if a == 0xff {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, name, float64(a)/255)
}

func dashAttr(dash []float64) string {
	if len(dash) == 0 {
		return ""
	}
	parts := make([]string, len(dash))
	for i, d := range dash {
		parts[i] = fmt.Sprintf("%g", d)
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
}

func textAnchor(ax float64) string {
	switch {
	case ax < 0.25:
		return "start"
	case ax > 0.75:
		return "end"
	}
	return "middle"
}

func baseline(ay float64) string {
	switch {
	case ay < 0.25:
		return "alphabetic"
	case ay > 0.75:
		return "hanging"
	}
	return "middle"
}

// EscapeXML escapes s for use in text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// WrapURL surrounds whatever fn writes with a link when url is set.
func WrapURL(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, `  <a href="%s" target="_blank">`, EscapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("</a>")
	}
}
