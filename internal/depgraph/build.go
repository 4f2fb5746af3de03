package depgraph

import (
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/syserr"
	"github.com/vk/systemic/internal/sysval"
)

// Root is the synthetic sentinel every Component gains an edge to, so that
// a Component with no other outgoing edges still participates in
// topological traversals. It is the tree's own root Path — no real
// Component is ever addressed by the empty Path, so the two can share an
// identifier safely.
var Root = path.Root

// Build links every Component's dependency edges into sys.Graph (§4.5): for
// each Component at Path P, every reference found in its config is resolved
// to a base D and expanded to the set of Components reachable under D, and
// an edge P → that Component is added. Every Component also gains an edge
// to Root. Unresolvable references fail with MissingDependency; a cyclic
// result fails with CyclicDependency.
func Build(sys *System) error {
	g := New()
	g.AddNode(Root.String())

	for id := range sys.Components {
		g.AddNode(id)
	}

	for id, comp := range sys.Components {
		p := path.Path(splitID(id))

		for _, ref := range sysval.GetRefs(comp.Config) {
			base, err := Resolve(sys, p, ref.Key)
			if err != nil {
				return err
			}
			for _, target := range ComponentsUnder(sys, base) {
				if target.Equal(p) {
					continue
				}
				if err := g.AddEdge(id, target.String()); err != nil {
					return err
				}
			}
		}

		if p.String() != Root.String() {
			if err := g.AddEdge(id, Root.String()); err != nil {
				return err
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return &syserr.CyclicDependencyError{Path: err.Error()}
	}

	sys.Graph = g
	return nil
}

// splitID reconstructs a Path from the dotted string form used as a Graph
// node ID. This is exact as long as no configuration key itself contains a
// literal ".", the same assumption Path.String's encoding already makes.
func splitID(id string) []string {
	if id == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(id); i++ {
		if id[i] == '.' {
			out = append(out, id[start:i])
			start = i + 1
		}
	}
	out = append(out, id[start:])
	return out
}
