// Package syserr defines the typed error kinds raised across the runtime's
// layers, per the error handling design: pre-flight errors abort a
// lifecycle call before any handler runs, while ActionError wraps whatever a
// handler itself raised.
package syserr

import "fmt"

// InvalidConfigError reports a malformed Component or reference literal
// discovered while expanding a configuration tree.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", e.Reason)
}

// MissingDependencyError reports a Ref that could not be resolved to any
// existing path under lexical-scope resolution.
type MissingDependencyError struct {
	// From is the Component that contains the unresolved reference.
	From string
	// Ref is the key-sequence that failed to resolve.
	Ref string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing dependency: %q in %q could not be resolved to any existing path", e.Ref, e.From)
}

// CyclicDependencyError reports a cycle detected while building the
// dependency graph.
type CyclicDependencyError struct {
	Path string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency detected involving %q", e.Path)
}

// UnknownComponentError reports a target path passed to the scheduler that
// does not name any node in the graph.
type UnknownComponentError struct {
	Path string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("unknown component: %q is not present in the dependency graph", e.Path)
}

// NeighborDirection distinguishes which side of a Component's edges a
// WrongNeighborStatusError is reporting on.
type NeighborDirection string

const (
	DirectionDependency NeighborDirection = "dependency"
	DirectionDependent  NeighborDirection = "dependent"
)

// WrongNeighborStatusError reports that a Component's dependency or
// dependent precondition for a transition was not satisfied.
type WrongNeighborStatusError struct {
	Path      string
	Neighbor  string
	Direction NeighborDirection
	Status    string
}

func (e *WrongNeighborStatusError) Error() string {
	return fmt.Sprintf("wrong neighbor status: %q's %s %q has status %q", e.Path, e.Direction, e.Neighbor, e.Status)
}

// ActionError wraps any error raised by a Component handler during a
// transition, and any neighbor-status failure (a WrongNeighborStatusError)
// found while running one. It carries enough context for an exception handler hook to
// make sense of the failure without re-deriving it.
type ActionError struct {
	Action string
	Path   string
	Cause  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q failed for %q: %v", e.Action, e.Path, e.Cause)
}

func (e *ActionError) Unwrap() error {
	return e.Cause
}
