package depgraph

import (
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/sysval"
)

// ComponentsUnder implements dependency collection under a resolved base
// path D (§4.4): if D itself is a Component, the set is {D}; if it is a
// map, the set is the union, over every namespaced-key child whose value
// actually resolves to a Component, of that child's own location; a
// namespaced-looking key is not enough on its own, and anything else
// contributes nothing. This is the Open Question's branch (b): the core
// requires such keys to actually name Components rather than treating the
// shape of the key alone as proof.
func ComponentsUnder(sys *System, base path.Path) []path.Path {
	v, ok := sys.Flat[base.String()]
	if !ok {
		return nil
	}

	if _, ok := v.(*sysval.Component); ok {
		return []path.Path{base}
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	var out []path.Path
	for key := range m {
		if !sysval.IsNamespaced(key) {
			continue
		}
		childPath := base.Append(key)
		if _, ok := sys.Flat[childPath.String()].(*sysval.Component); !ok {
			continue
		}
		out = append(out, childPath)
	}
	return out
}
