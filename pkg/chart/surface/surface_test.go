package surface

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
)

var (
	_ Surface = (*Recorder)(nil)
	_ Surface = (*SVG)(nil)
	_ Surface = (*Raster)(nil)
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.SetPaint(paint.Solid(paint.MustColor("#f00")))
	r.Fill(geom.NewRect(0, 0, 1, 1))
	r.SetStroke(paint.DefaultStroke)
	r.Draw(geom.NewRect(0, 0, 1, 1))
	r.DrawText("x", geom.Point{}, 0.5, 0.5)

	if len(r.Ops) != 5 {
		t.Fatalf("len(Ops) = %d, want 5", len(r.Ops))
	}
	if r.Count(OpFill) != 1 || r.Count(OpDraw) != 1 || r.Count(OpDrawText) != 1 {
		t.Errorf("unexpected op counts: %v", r.Ops)
	}
	if got := r.Filled(); len(got) != 1 || got[0] != geom.NewRect(0, 0, 1, 1) {
		t.Errorf("Filled() = %v", got)
	}

	r.Reset()
	if len(r.Ops) != 0 {
		t.Errorf("Reset() left %d ops", len(r.Ops))
	}
}

func TestSVGDocument(t *testing.T) {
	s := NewSVG(200, 100)
	s.SetPaint(paint.Solid(paint.MustColor("#4e79a7")))
	s.Fill(geom.NewRect(10, 20, 30, 40))
	s.SetStroke(paint.Stroke{Width: 2, Dash: []float64{3, 1}})
	s.Draw(geom.NewRect(10, 20, 30, 40))
	s.DrawText("a<b", geom.Point{X: 25, Y: 15}, 0.5, 0)
	s.Region(geom.NewRect(10, 20, 30, 40), "tip & more", "https://example.com/?a=1&b=2")

	out := string(s.Bytes())
	for _, want := range []string{
		`viewBox="0 0 200.0 100.0"`,
		`<rect x="10.00" y="20.00" width="30.00" height="40.00" fill="#4e79a7"/>`,
		`stroke-width="2.00" stroke-dasharray="3 1"`,
		`text-anchor="middle" dominant-baseline="alphabetic"`,
		`>a&lt;b</text>`,
		`<title>tip &amp; more</title>`,
		`href="https://example.com/?a=1&amp;b=2"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("SVG not closed")
	}
	if string(s.Bytes()) != out {
		t.Error("Bytes() is not repeatable")
	}
}

func TestSVGGradient(t *testing.T) {
	s := NewSVG(10, 10)
	p := paint.LinearGradient(geom.Point{}, paint.MustColor("#f00"), geom.Point{Y: 10}, paint.MustColor("#00f"))
	p.Gradient.Cyclic = true
	s.SetPaint(p)
	s.Fill(geom.NewRect(0, 0, 10, 10))
	s.Fill(geom.NewRect(0, 0, 5, 5))

	out := string(s.Bytes())
	if !strings.Contains(out, `fill="url(#grad1)"`) || !strings.Contains(out, `fill="url(#grad2)"`) {
		t.Errorf("gradients not referenced:\n%s", out)
	}
	if !strings.Contains(out, `spreadMethod="reflect"`) {
		t.Error("cyclic gradient should reflect")
	}
}

func TestSVGTranslucentFill(t *testing.T) {
	s := NewSVG(10, 10)
	s.SetPaint(paint.Solid(paint.MustColor("#ff000080")))
	s.Fill(geom.NewRect(0, 0, 1, 1))
	out := string(s.Bytes())
	if !strings.Contains(out, `fill="#ff0000" fill-opacity="0.502"`) {
		t.Errorf("translucent fill not encoded:\n%s", out)
	}
}

func TestRasterPNG(t *testing.T) {
	r := NewRaster(20, 10, 2)
	r.SetPaint(paint.Solid(paint.MustColor("#f00")))
	r.Fill(geom.NewRect(0, 0, 20, 10))

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want 40x20", b)
	}
	cr, cg, _, ca := img.At(20, 10).RGBA()
	if cr>>8 != 0xff || cg != 0 || ca>>8 != 0xff {
		t.Errorf("centre pixel = %v, want red", img.At(20, 10))
	}
}
