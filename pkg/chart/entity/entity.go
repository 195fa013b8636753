// Package entity records the interactive regions of a rendered chart.
//
// Renderers add one [Item] per drawn bar when the caller asked for entity
// collection. Sinks turn the collection into SVG tooltips or a JSON image
// map, and the CLI inspector uses it for hit-testing.
package entity

import (
	"encoding/json"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

// Item is the region covered by one dataset item.
type Item struct {
	Area        geom.Rect
	Row         int
	Column      int
	SeriesKey   string
	CategoryKey string
	Value       float64
	ToolTip     string
	URL         string
}

// Collection is an ordered list of items. Later items are considered to be
// drawn on top of earlier ones.
type Collection struct {
	items []Item
}

// NewCollection returns an empty collection.
func NewCollection() *Collection { return &Collection{} }

// Add appends an item.
func (c *Collection) Add(it Item) { c.items = append(c.items, it) }

// Items returns the collected items in insertion order.
func (c *Collection) Items() []Item { return c.items }

// Len returns the number of items.
func (c *Collection) Len() int { return len(c.items) }

// Clear removes every item.
func (c *Collection) Clear() { c.items = c.items[:0] }

// At returns the topmost item whose area contains p.
func (c *Collection) At(p geom.Point) (Item, bool) {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i].Area.Contains(p) {
			return c.items[i], true
		}
	}
	return Item{}, false
}

type jsonItem struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Row      int     `json:"row"`
	Column   int     `json:"column"`
	Series   string  `json:"series"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	ToolTip  string  `json:"tooltip,omitempty"`
	URL      string  `json:"url,omitempty"`
}

// MarshalJSON encodes the collection as an array of flat item objects.
func (c *Collection) MarshalJSON() ([]byte, error) {
	out := make([]jsonItem, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, jsonItem{
			X: it.Area.X, Y: it.Area.Y,
			Width: it.Area.W, Height: it.Area.H,
			Row: it.Row, Column: it.Column,
			Series: it.SeriesKey, Category: it.CategoryKey,
			Value:   it.Value,
			ToolTip: it.ToolTip,
			URL:     it.URL,
		})
	}
	return json.Marshal(out)
}
