// Package sink renders a [plot.Category] into output formats.
//
// Every sink lays out the same frame: an optional title, the data area with
// value ticks and category labels around it, and a series legend below.
// [Draw] performs that layout on any [surface.Surface]; the format functions
// wrap it:
//
//   - [RenderSVG]: vector output with tooltip and link regions per bar
//   - [RenderPNG]: raster output drawn with fogleman/gg
//   - [RenderPDF]: SVG converted by rsvg-convert
//   - [RenderJSON]: an image map of bar rectangles, tooltips and URLs
//
// Options are shared by all sinks:
//
//	svg := sink.RenderSVG(p, sink.WithSize(800, 600), sink.WithTitle("Sales"))
//
// [plot.Category]: github.com/matzehuels/stackbar/pkg/chart/plot#Category
// [surface.Surface]: github.com/matzehuels/stackbar/pkg/chart/surface#Surface
package sink
