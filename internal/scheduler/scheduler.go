// Package scheduler turns a depgraph.Graph into the ordered sequence of
// Paths a transition should visit: a full topological sort when no targets
// are given, or the transitive closure around a set of targets, in either
// the dependency-respecting forward direction or its reverse.
package scheduler

import (
	"sort"

	"github.com/vk/systemic/internal/depgraph"
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/syserr"
)

// Direction picks which side of the graph a target closure expands along,
// and whether the final topological order is reversed. Forward suits
// transitions that must bring dependencies up before their dependents
// (init, resume); Reverse suits transitions that must bring dependents down
// before their dependencies (halt, suspend).
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// Order computes the ordered sequence of Component Paths a transition
// should run over (§4.6). With no targets, it is the full topological sort
// of every Component in the graph. With targets, it is the transitive
// closure — dependencies-of for Forward, dependents-of for Reverse — unioned
// with the targets themselves, sorted topologically and, for Reverse,
// reversed.
func Order(sys *depgraph.System, targets []path.Path, dir Direction) ([]path.Path, error) {
	allIDs := make(map[string]bool)
	for id := range sys.Components {
		allIDs[id] = true
	}

	var subset map[string]bool
	if len(targets) == 0 {
		subset = allIDs
	} else {
		subset = make(map[string]bool)
		for _, t := range targets {
			id := t.String()
			if !allIDs[id] {
				return nil, &syserr.UnknownComponentError{Path: id}
			}
			subset[id] = true
			var closureErr error
			if dir == Forward {
				closureErr = collectClosure(sys.Graph.Dependencies, id, subset)
			} else {
				closureErr = collectClosure(sys.Graph.Dependents, id, subset)
			}
			if closureErr != nil {
				return nil, closureErr
			}
		}
		// A closure may have pulled in the synthetic Root edge target; it is
		// never a real Component and never appears in output.
		delete(subset, depgraph.Root.String())
	}

	ordered, err := topoSort(sys, subset)
	if err != nil {
		return nil, err
	}

	if dir == Reverse {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	return ordered, nil
}

func collectClosure(neighbors func(string) ([]string, error), id string, into map[string]bool) error {
	ids, err := neighbors(id)
	if err != nil {
		return err
	}
	for _, n := range ids {
		if into[n] {
			continue
		}
		into[n] = true
		if err := collectClosure(neighbors, n, into); err != nil {
			return err
		}
	}
	return nil
}

// topoSort performs Kahn's algorithm over the induced subgraph on subset,
// using only dependency edges among members of subset, breaking ties
// deterministically with path.Less so the same graph always schedules in
// the same order.
func topoSort(sys *depgraph.System, subset map[string]bool) ([]path.Path, error) {
	inDegree := make(map[string]int, len(subset))
	for id := range subset {
		deps, err := sys.Graph.Dependencies(id)
		if err != nil {
			return nil, err
		}
		for _, d := range deps {
			if subset[d] {
				inDegree[id]++
			}
		}
	}

	ready := make([]string, 0, len(subset))
	for id := range subset {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	var order []path.Path
	visited := make(map[string]bool)
	for len(ready) > 0 {
		sortIDs(ready)
		next := ready[0]
		ready = ready[1:]
		visited[next] = true
		order = append(order, pathFromID(next))

		dependents, err := sys.Graph.Dependents(next)
		if err != nil {
			return nil, err
		}
		for _, dep := range dependents {
			if !subset[dep] || visited[dep] {
				continue
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(subset) {
		return nil, &syserr.CyclicDependencyError{Path: "scheduler: induced subgraph is not acyclic"}
	}
	return order, nil
}

func sortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return path.Less(pathFromID(ids[i]), pathFromID(ids[j]))
	})
}

func pathFromID(id string) path.Path {
	if id == "" {
		return path.Root
	}
	var out path.Path
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
