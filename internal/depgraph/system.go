package depgraph

import (
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/sysval"
)

// System is the expanded configuration tree plus the indexes needed to
// resolve references and enumerate Components: the full Path → value map
// produced by sysconfig.Expand, the subset of it that is Components, and
// (once Build has run) the Graph linking them.
type System struct {
	// Flat indexes every Path present in the tree, Component or not, to
	// whatever value lives there — an intermediate map, a scalar, a
	// sequence, or a *sysval.Component.
	Flat map[string]any
	// Components indexes only the Paths that hold a *sysval.Component.
	Components map[string]*sysval.Component
	// Graph is nil until Build succeeds.
	Graph *Graph
}

// NewSystem wraps the indexes sysconfig.Expand produced. It does not build
// the Graph; call Build for that.
func NewSystem(flat map[string]any, components map[string]*sysval.Component) *System {
	return &System{Flat: flat, Components: components}
}

// ComponentAt returns the Component at p, if any.
func (s *System) ComponentAt(p path.Path) (*sysval.Component, bool) {
	c, ok := s.Components[p.String()]
	return c, ok
}

// ValueAt returns whatever value (Component or plain data) lives at p.
func (s *System) ValueAt(p path.Path) (any, bool) {
	v, ok := s.Flat[p.String()]
	return v, ok
}
