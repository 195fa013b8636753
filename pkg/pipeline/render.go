package pipeline

import (
	"context"

	"github.com/matzehuels/stackbar/pkg/chart/plot"
	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/render/sink"
)

// Render produces each format for p.
func Render(ctx context.Context, p *plot.Category, formats []string, opts ...sink.Option) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var (
			b   []byte
			err error
		)
		switch format {
		case FormatSVG:
			b = sink.RenderSVG(p, opts...)
		case FormatPNG:
			b, err = sink.RenderPNG(p, opts...)
		case FormatPDF:
			b, err = sink.RenderPDF(ctx, p, opts...)
		case FormatJSON:
			b, err = sink.RenderJSON(p, opts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		artifacts[format] = b
	}
	return artifacts, nil
}
