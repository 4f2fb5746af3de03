package depgraph

import (
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/syserr"
)

// Resolve implements the lexical-scope resolution rule: given the Path P of
// the Component that contains the reference and the reference's own
// key-sequence R, it tries scope++R at P, then at each successive ancestor
// of P, until it finds an existing value or runs out of scope.
//
// from is P itself: it is the first scope tried, and it also labels a
// MissingDependency error.
func Resolve(sys *System, from path.Path, ref path.Path) (path.Path, error) {
	scope := from
	for {
		candidate := scope.Append(ref...)
		if _, ok := sys.Flat[candidate.String()]; ok {
			return candidate, nil
		}
		parent, ok := scope.Parent()
		if !ok {
			return nil, &syserr.MissingDependencyError{From: from.String(), Ref: ref.String()}
		}
		scope = parent
	}
}
