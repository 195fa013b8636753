// Package render converts finished SVG charts to other formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (librsvg). The chart sinks in
// [sink] call ToPDF for PDF output. PNG output is rasterised natively by
// [sink.RenderPNG]; ToPNG serves callers who want librsvg's rasteriser for
// pixel parity with the PDF.
//
//	svg := sink.RenderSVG(p, sink.WithTitle("Sales"))
//	pdf, err := render.ToPDF(ctx, svg)
//
// [sink]: github.com/matzehuels/stackbar/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/stackbar/pkg/render/sink#RenderPNG
package render
