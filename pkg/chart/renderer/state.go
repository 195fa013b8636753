package renderer

import (
	"github.com/matzehuels/stackbar/pkg/chart/entity"
	"github.com/matzehuels/stackbar/pkg/chart/geom"
)

// Info collects optional diagnostics for a pass. A nil Entities collection
// disables entity registration.
type Info struct {
	DataArea geom.Rect
	Entities *entity.Collection
}

// State is the scratch space of a single render pass.
type State struct {
	// BarWidth is the thickness shared by every bar in the pass.
	BarWidth float64
	Info     *Info
}

// EntityCollection returns the collection items are registered with, or nil.
func (s *State) EntityCollection() *entity.Collection {
	if s == nil || s.Info == nil {
		return nil
	}
	return s.Info.Entities
}
