package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackbar/pkg/chart/entity"
	"github.com/matzehuels/stackbar/pkg/chart/plot"
)

type jsonOutput struct {
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Orientation string             `json:"orientation"`
	Area        jsonRect           `json:"area"`
	Range       *jsonRange         `json:"range,omitempty"`
	Groups      []string           `json:"groups"`
	BarWidths   []float64          `json:"bar_widths"`
	Items       int                `json:"items"`
	Entities    *entity.Collection `json:"entities"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// RenderJSON lays out p and exports the frame as an image map: the data
// area, the range bounds, the group order and one entity per drawn bar.
func RenderJSON(p *plot.Category, opts ...Option) ([]byte, error) {
	f := Measure(p, opts...)

	out := jsonOutput{
		Width:       f.Width,
		Height:      f.Height,
		Orientation: p.Orientation().String(),
		Area:        jsonRect{X: f.Area.X, Y: f.Area.Y, Width: f.Area.W, Height: f.Area.H},
		Groups:      []string{},
		BarWidths:   f.Pass.BarWidth,
		Items:       f.Pass.Items,
		Entities:    f.Entities,
	}
	if f.Pass.HasRange {
		out.Range = &jsonRange{Lower: f.Pass.Range.Lower, Upper: f.Pass.Range.Upper}
	}
	if r := p.Renderer(0); r != nil {
		out.Groups = r.GroupMap().Groups()
	}
	return json.MarshalIndent(out, "", "  ")
}
