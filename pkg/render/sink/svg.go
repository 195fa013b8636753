package sink

import (
	"github.com/matzehuels/stackbar/pkg/chart/plot"
	"github.com/matzehuels/stackbar/pkg/chart/surface"
)

// RenderSVG renders p as an SVG document. Unless [WithoutRegions] is given,
// every bar with a tooltip or URL gets a transparent hit region on top.
func RenderSVG(p *plot.Category, opts ...Option) []byte {
	o := newOptions(opts)
	svg := surface.NewSVG(o.width, o.height)
	svg.FontSize = o.fontSize
	f := draw(svg, p, o)
	if o.regions {
		for _, it := range f.Entities.Items() {
			svg.Region(it.Area, it.ToolTip, it.URL)
		}
	}
	return svg.Bytes()
}
