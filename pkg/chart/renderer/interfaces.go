package renderer

import (
	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/label"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
)

// CategoryAxis maps category indices onto the axis that runs across bars.
type CategoryAxis interface {
	CategoryStart(category, count int, area geom.Rect, edge geom.Edge) float64
	CategoryMiddle(category, count int, area geom.Rect, edge geom.Edge) float64
	CategoryMargin() float64
	LowerMargin() float64
	UpperMargin() float64
}

// ValueAxis maps data values onto the axis bars grow along.
type ValueAxis interface {
	ValueToPixel(v float64, area geom.Rect, edge geom.Edge) float64
}

// Plot is the part of the owning plot the renderer needs. index is the
// renderer's position in the plot, which selects its dataset and axis.
type Plot interface {
	Orientation() geom.Orientation
	DomainAxisEdge() geom.Edge
	RangeAxisEdge() geom.Edge
	Dataset(index int) data.Dataset
	DomainAxisForDataset(index int) CategoryAxis
}

// Styler resolves per-item appearance.
type Styler interface {
	ItemPaint(row, column int) paint.Paint
	ItemOutlinePaint(row, column int) paint.Paint
	ItemStroke(row, column int) paint.Stroke
	ItemLabelPaint(row, column int) paint.Paint

	// LabelGenerator returns nil when the item has no label.
	LabelGenerator(row, column int) label.Generator
	IsItemLabelVisible(row, column int) bool
	PositiveLabelPosition(row, column int) label.Position
	NegativeLabelPosition(row, column int) label.Position

	// ToolTipGenerator and URLGenerator may return nil.
	ToolTipGenerator(row, column int) label.Generator
	URLGenerator(row, column int) label.URLGenerator
}

// ChangeEvent describes a configuration change on a renderer.
type ChangeEvent struct {
	Renderer *GroupedStackedBar
}

// ChangeListener is notified after a renderer's configuration changes.
type ChangeListener interface {
	RendererChanged(ChangeEvent)
}

// ChangeListenerFunc adapts a function to [ChangeListener].
type ChangeListenerFunc func(ChangeEvent)

func (f ChangeListenerFunc) RendererChanged(e ChangeEvent) { f(e) }
