package sink

import (
	"context"

	"github.com/matzehuels/stackbar/pkg/chart/plot"
	"github.com/matzehuels/stackbar/pkg/render"
)

// RenderPDF renders p as SVG and converts it with rsvg-convert.
func RenderPDF(ctx context.Context, p *plot.Category, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(p, opts...))
}
