package sink

import (
	"bytes"

	"github.com/matzehuels/stackbar/pkg/chart/plot"
	"github.com/matzehuels/stackbar/pkg/chart/surface"
)

// RenderPNG rasterises p at the configured scale. Sizes beyond
// [CheckRaster] limits are rejected before any pixels are allocated.
func RenderPNG(p *plot.Category, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	if err := CheckRaster(o.width, o.height, o.scale); err != nil {
		return nil, err
	}
	r := surface.NewRaster(o.width, o.height, o.scale)
	draw(r, p, o)

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
