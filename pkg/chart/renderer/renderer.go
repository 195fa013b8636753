package renderer

import (
	"reflect"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/chart/group"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// OutlineWidthThreshold is the bar width, in pixels, at or below which bar
// outlines are not drawn.
const OutlineWidthThreshold = 3.0

// Settings holds the stacked-bar configuration of a renderer.
type Settings struct {
	// MaximumBarWidth caps the bar width as a fraction of the space across
	// the bars.
	MaximumBarWidth float64
	// ItemMargin is the fraction of space left between groups when there is
	// more than one.
	ItemMargin float64
	// MinimumBarLength keeps tiny and zero values visible, in pixels.
	MinimumBarLength float64
	DrawBarOutline   bool
	// GradientTransformer re-anchors gradient paints to each bar. Nil leaves
	// gradients untouched.
	GradientTransformer paint.GradientTransformer
}

// DefaultSettings returns the settings a new renderer starts with.
func DefaultSettings() Settings {
	return Settings{
		MaximumBarWidth:     1.0,
		ItemMargin:          0.2,
		DrawBarOutline:      true,
		GradientTransformer: paint.StandardGradientTransformer{Type: paint.GradientVertical},
	}
}

// Validate checks that the fractions and lengths are in range.
func (s Settings) Validate() error {
	if err := errors.ValidateFraction("maximum bar width", s.MaximumBarWidth); err != nil {
		return err
	}
	if err := errors.ValidateFraction("item margin", s.ItemMargin); err != nil {
		return err
	}
	return errors.ValidateNonNegative("minimum bar length", s.MinimumBarLength)
}

func (s Settings) equal(o Settings) bool {
	return s.MaximumBarWidth == o.MaximumBarWidth &&
		s.ItemMargin == o.ItemMargin &&
		s.MinimumBarLength == o.MinimumBarLength &&
		s.DrawBarOutline == o.DrawBarOutline &&
		reflect.DeepEqual(s.GradientTransformer, o.GradientTransformer)
}

// GroupedStackedBar renders series stacked within groups, with groups side
// by side in each category.
type GroupedStackedBar struct {
	settings  Settings
	styler    Styler
	groups    *group.Map
	listeners map[int]ChangeListener
	nextID    int
}

// New returns a renderer with default settings, a [SeriesStyler] and an
// empty group map, so every series starts out in the default group.
func New() *GroupedStackedBar {
	return &GroupedStackedBar{
		settings:  DefaultSettings(),
		styler:    NewSeriesStyler(),
		groups:    group.New(),
		listeners: make(map[int]ChangeListener),
	}
}

// GroupMap returns a copy of the current group map.
func (r *GroupedStackedBar) GroupMap() *group.Map { return r.groups.Clone() }

// SetGroupMap replaces the group map and notifies listeners. The map is
// copied; later edits to m do not affect the renderer.
func (r *GroupedStackedBar) SetGroupMap(m *group.Map) error {
	if m == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "group map must not be nil")
	}
	r.groups = m.Clone()
	r.fireChange()
	return nil
}

// Settings returns the current settings.
func (r *GroupedStackedBar) Settings() Settings { return r.settings }

// SetSettings validates and applies s, then notifies listeners.
func (r *GroupedStackedBar) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.settings = s
	r.fireChange()
	return nil
}

// Styler returns the item styler.
func (r *GroupedStackedBar) Styler() Styler { return r.styler }

// SetStyler replaces the item styler and notifies listeners.
func (r *GroupedStackedBar) SetStyler(st Styler) error {
	if st == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "styler must not be nil")
	}
	r.styler = st
	r.fireChange()
	return nil
}

// AddChangeListener registers l and returns a function that unregisters it.
func (r *GroupedStackedBar) AddChangeListener(l ChangeListener) (remove func()) {
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	return func() { delete(r.listeners, id) }
}

func (r *GroupedStackedBar) fireChange() {
	e := ChangeEvent{Renderer: r}
	for id := range r.nextID {
		if l, ok := r.listeners[id]; ok {
			l.RendererChanged(e)
		}
	}
}

// PassCount returns the number of passes DrawItem needs per item.
func (r *GroupedStackedBar) PassCount() int { return 1 }

// FindRangeBounds returns the value range spanned by the stacked totals of
// ds under the current group map. It reports false for a nil or empty
// dataset.
func (r *GroupedStackedBar) FindRangeBounds(ds data.Dataset) (data.Range, bool) {
	if ds == nil {
		return data.Range{}, false
	}
	return data.FindStackedRangeBounds(ds, r.groups)
}

// Equal reports whether two renderers have the same group map and
// settings. Stylers and listeners are not compared.
func (r *GroupedStackedBar) Equal(other *GroupedStackedBar) bool {
	if r == other {
		return true
	}
	if r == nil || other == nil {
		return false
	}
	return r.groups.Equal(other.groups) && r.settings.equal(other.settings)
}
