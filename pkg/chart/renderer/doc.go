// Package renderer draws grouped stacked bar charts.
//
// # Overview
//
// Every series (dataset row) belongs to a group, as assigned by a
// [group.Map]. Within a category, series of the same group stack on top of
// each other, positive values upwards from zero and zero or negative values
// downwards. The groups of a category are laid out side by side in the order
// they were registered with the map.
//
// # Render Pass
//
// A plot drives the renderer through one pass per draw:
//
//	state := r.InitState(area, plot, index, info)
//	for column := range ds.ColumnCount() {
//	    for row := range ds.RowCount() {
//	        r.DrawItem(s, state, area, plot, domain, value, ds, row, column, 0)
//	    }
//	}
//
// [GroupedStackedBar.InitState] computes the bar width once. The returned
// [State] belongs to that pass alone; passes for different targets must each
// start from their own InitState call since the available space may differ.
//
// # Collaborators
//
// The renderer does no coordinate mapping of its own. Axes, the plot, and
// item styling are reached through the small interfaces declared here
// ([CategoryAxis], [ValueAxis], [Plot], [Styler]); the implementations used
// by stackbar live in the axis and plot packages and in [SeriesStyler].
//
// # Concurrency
//
// A renderer is configuration. Replacing its group map or settings is not
// synchronized and must not race with a pass. Concurrent passes over an
// unchanged renderer are fine as long as each has its own [State] and
// surface.
//
// [group.Map]: github.com/matzehuels/stackbar/pkg/chart/group.Map
package renderer
