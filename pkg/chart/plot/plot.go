// Package plot ties datasets, axes and renderers together and runs render
// passes over a data area.
package plot

import (
	"github.com/matzehuels/stackbar/pkg/chart/axis"
	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
	"github.com/matzehuels/stackbar/pkg/chart/renderer"
	"github.com/matzehuels/stackbar/pkg/chart/surface"
)

type layer struct {
	ds     data.Dataset
	r      *renderer.GroupedStackedBar
	detach func()
}

// Category is a plot with a category domain axis and a value range axis.
// Each layer pairs a dataset with the renderer that draws it; the layer's
// position is the index passed to the renderer.
type Category struct {
	orientation geom.Orientation
	domain      *axis.Category
	value       *axis.Value
	layers      []layer

	// AutoRange fits the value axis to the layers' range bounds on every
	// draw. When false the value axis range is left as configured.
	AutoRange bool
	// Background fills the data area before drawing. A zero alpha skips it.
	Background paint.Paint
	// Outline strokes the data area border after drawing. A zero alpha
	// skips it.
	Outline paint.Paint

	dirty   bool
	changes int
}

// New returns a vertical plot showing ds with r.
func New(ds data.Dataset, r *renderer.GroupedStackedBar) *Category {
	p := &Category{
		orientation: geom.Vertical,
		domain:      axis.NewCategory(),
		value:       axis.NewValue(),
		AutoRange:   true,
		Background:  paint.Solid(paint.MustColor("#fff")),
		Outline:     paint.Solid(paint.MustColor("#808080")),
		dirty:       true,
	}
	p.AddLayer(ds, r)
	return p
}

// AddLayer adds a dataset and its renderer and returns the layer index.
// The plot listens to the renderer for configuration changes.
func (p *Category) AddLayer(ds data.Dataset, r *renderer.GroupedStackedBar) int {
	l := layer{ds: ds, r: r}
	if r != nil {
		l.detach = r.AddChangeListener(renderer.ChangeListenerFunc(p.rendererChanged))
	}
	p.layers = append(p.layers, l)
	p.dirty = true
	return len(p.layers) - 1
}

// Detach stops listening to every renderer.
func (p *Category) Detach() {
	for i := range p.layers {
		if p.layers[i].detach != nil {
			p.layers[i].detach()
			p.layers[i].detach = nil
		}
	}
}

func (p *Category) rendererChanged(renderer.ChangeEvent) {
	p.dirty = true
	p.changes++
}

// Dirty reports whether the plot changed since the last Draw.
func (p *Category) Dirty() bool { return p.dirty }

// ChangeCount returns how many renderer change notifications were received.
func (p *Category) ChangeCount() int { return p.changes }

func (p *Category) SetOrientation(o geom.Orientation) {
	p.orientation = o
	p.dirty = true
}

func (p *Category) Orientation() geom.Orientation { return p.orientation }
func (p *Category) DomainAxisEdge() geom.Edge      { return geom.DomainEdge(p.orientation) }
func (p *Category) RangeAxisEdge() geom.Edge       { return geom.RangeEdge(p.orientation) }
func (p *Category) DomainAxis() *axis.Category     { return p.domain }
func (p *Category) ValueAxis() *axis.Value         { return p.value }

// Dataset returns the dataset of layer index, or nil.
func (p *Category) Dataset(index int) data.Dataset {
	if index < 0 || index >= len(p.layers) || p.layers[index].ds == nil {
		return nil
	}
	return p.layers[index].ds
}

// Renderer returns the renderer of layer index, or nil.
func (p *Category) Renderer(index int) *renderer.GroupedStackedBar {
	if index < 0 || index >= len(p.layers) {
		return nil
	}
	return p.layers[index].r
}

// DomainAxisForDataset returns the shared domain axis.
func (p *Category) DomainAxisForDataset(index int) renderer.CategoryAxis { return p.domain }

// LayerCount returns the number of layers.
func (p *Category) LayerCount() int { return len(p.layers) }

// RangeBounds combines the range bounds reported by every layer's renderer.
func (p *Category) RangeBounds() (data.Range, bool) {
	var out data.Range
	found := false
	for _, l := range p.layers {
		if l.r == nil {
			continue
		}
		b, ok := l.r.FindRangeBounds(l.ds)
		if !ok {
			continue
		}
		if found {
			out = out.Combine(b)
		} else {
			out = b
		}
		found = true
	}
	return out, found
}

// Pass summarises a Draw call.
type Pass struct {
	Range    data.Range
	HasRange bool
	Items    int
	// BarWidth holds the bar width of each layer.
	BarWidth []float64
}

// Draw renders every layer into area. When info is non-nil its data area is
// set and renderers add item entities to info.Entities.
func (p *Category) Draw(s surface.Surface, area geom.Rect, info *renderer.Info) Pass {
	if info != nil {
		info.DataArea = area
	}
	if p.Background.Primary().A != 0 {
		s.SetPaint(p.Background)
		s.Fill(area)
	}

	var pass Pass
	pass.Range, pass.HasRange = p.RangeBounds()
	if p.AutoRange && pass.HasRange {
		p.value.AutoRange(pass.Range)
	}

	for i, l := range p.layers {
		if l.r == nil || l.ds == nil {
			pass.BarWidth = append(pass.BarWidth, 0)
			continue
		}
		state := l.r.InitState(area, p, i, info)
		pass.BarWidth = append(pass.BarWidth, state.BarWidth)
		rows, cols := l.ds.RowCount(), l.ds.ColumnCount()
		for n := range l.r.PassCount() {
			for col := range cols {
				for row := range rows {
					if n == 0 {
						if _, ok := l.ds.Value(row, col); ok {
							pass.Items++
						}
					}
					l.r.DrawItem(s, state, area, p, p.domain, p.value, l.ds, row, col, n)
				}
			}
		}
	}

	if p.Outline.Primary().A != 0 {
		s.SetStroke(paint.DefaultStroke)
		s.SetPaint(p.Outline)
		s.Draw(area)
	}
	p.dirty = false
	return pass
}

var _ renderer.Plot = (*Category)(nil)
