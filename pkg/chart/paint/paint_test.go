package paint

import (
	"image/color"
	"testing"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}, false},
		{"00ff00", color.RGBA{G: 255, A: 255}, false},
		{"#00f", color.RGBA{B: 255, A: 255}, false},
		{"#11223344", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, false},
		{"#12", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff}); got != "#4e79a7" {
		t.Errorf("Hex() = %q, want #4e79a7", got)
	}
	if got := Hex(color.RGBA{R: 1, G: 2, B: 3, A: 4}); got != "#01020304" {
		t.Errorf("Hex() = %q, want #01020304", got)
	}
}

func TestPaintVariant(t *testing.T) {
	red := MustColor("#f00")
	blue := MustColor("#00f")

	if Solid(red).IsGradient() {
		t.Error("solid paint reported as gradient")
	}
	g := LinearGradient(geom.Point{}, red, geom.Point{X: 1}, blue)
	if !g.IsGradient() {
		t.Error("gradient paint not reported as gradient")
	}
	if g.Primary() != red {
		t.Errorf("Primary() = %v, want %v", g.Primary(), red)
	}
}

func TestStandardGradientTransformer(t *testing.T) {
	red := MustColor("#f00")
	blue := MustColor("#00f")
	in := Gradient{C1: red, C2: blue}
	bounds := geom.NewRect(10, 20, 40, 100)

	tests := []struct {
		name   string
		typ    GradientType
		p1, p2 geom.Point
		cyclic bool
	}{
		{"vertical", GradientVertical, geom.Point{X: 30, Y: 20}, geom.Point{X: 30, Y: 120}, false},
		{"horizontal", GradientHorizontal, geom.Point{X: 10, Y: 70}, geom.Point{X: 50, Y: 70}, false},
		{"center vertical", GradientCenterVertical, geom.Point{X: 30, Y: 20}, geom.Point{X: 30, Y: 70}, true},
		{"center horizontal", GradientCenterHorizontal, geom.Point{X: 30, Y: 70}, geom.Point{X: 50, Y: 70}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StandardGradientTransformer{Type: tt.typ}.Transform(in, bounds)
			if got.P1 != tt.p1 || got.P2 != tt.p2 {
				t.Errorf("anchors = %v -> %v, want %v -> %v", got.P1, got.P2, tt.p1, tt.p2)
			}
			if got.Cyclic != tt.cyclic {
				t.Errorf("Cyclic = %v, want %v", got.Cyclic, tt.cyclic)
			}
		})
	}
}

func TestStrokeEqual(t *testing.T) {
	a := Stroke{Width: 1, Dash: []float64{2, 2}}
	if !a.Equal(Stroke{Width: 1, Dash: []float64{2, 2}}) {
		t.Error("identical strokes should be equal")
	}
	if a.Equal(DefaultStroke) {
		t.Error("dashed stroke should differ from default")
	}
}
