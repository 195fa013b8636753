// Package group assigns series to groups for grouped stacked bar charts.
//
// A [Map] associates each series key with a group key. Groups are indexed in
// the order they were first registered and that index never changes for the
// lifetime of the map: re-registering a known group, or moving every series
// out of it, leaves its slot in place. Series that were never assigned belong
// to the map's default group, which always occupies index 0, so a Map always
// reports at least one group.
//
// Maps are not safe for concurrent mutation. Renderers treat them as
// configuration: build one, hand it over, and replace it wholesale rather
// than editing it while charts are being drawn.
package group

import (
	"maps"
	"slices"
)

// DefaultGroup is the group key used for unassigned series when the map is
// created with [New].
const DefaultGroup = "Default Group"

// Map assigns series keys to group keys.
type Map struct {
	defaultGroup string
	groups       []string
	index        map[string]int
	series       map[string]string
}

// New returns an empty map whose default group is [DefaultGroup].
func New() *Map {
	return NewWithDefault(DefaultGroup)
}

// NewWithDefault returns an empty map with the given default group key.
func NewWithDefault(defaultGroup string) *Map {
	return &Map{
		defaultGroup: defaultGroup,
		groups:       []string{defaultGroup},
		index:        map[string]int{defaultGroup: 0},
		series:       make(map[string]string),
	}
}

// Default returns the key of the group that unassigned series belong to.
func (m *Map) Default() string { return m.defaultGroup }

// Set assigns series to group, replacing any previous assignment. Setting
// the same pair twice has no further effect.
func (m *Map) Set(series, group string) {
	if _, ok := m.index[group]; !ok {
		m.index[group] = len(m.groups)
		m.groups = append(m.groups, group)
	}
	m.series[series] = group
}

// GroupOf returns the group series belongs to, or the default group for
// series that were never assigned.
func (m *Map) GroupOf(series string) string {
	if g, ok := m.series[series]; ok {
		return g
	}
	return m.defaultGroup
}

// Count returns the number of registered groups, including the default.
func (m *Map) Count() int { return len(m.groups) }

// Index returns the position of group in registration order, or -1 when
// the group is unknown.
func (m *Map) Index(group string) int {
	if i, ok := m.index[group]; ok {
		return i
	}
	return -1
}

// Groups returns the group keys in index order.
func (m *Map) Groups() []string { return slices.Clone(m.groups) }

// Keys returns the explicitly assigned series keys, sorted.
func (m *Map) Keys() []string { return slices.Sorted(maps.Keys(m.series)) }

// Members returns the assigned series of group, sorted.
func (m *Map) Members(group string) []string {
	var out []string
	for s, g := range m.series {
		if g == group {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	return &Map{
		defaultGroup: m.defaultGroup,
		groups:       slices.Clone(m.groups),
		index:        maps.Clone(m.index),
		series:       maps.Clone(m.series),
	}
}

// Equal reports whether m and other hold the same series-to-group
// associations and default group. Registration order is not compared.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.defaultGroup == other.defaultGroup && maps.Equal(m.series, other.series)
}
