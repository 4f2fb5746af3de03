// Package runtime wires sysconfig, depgraph, scheduler, and engine together
// behind the five-entry-point System facade: init, halt, suspend,
// resume, and resume-or-init, each operating over an optional target-paths
// set.
package runtime

import (
	"context"

	"github.com/vk/systemic/internal/depgraph"
	"github.com/vk/systemic/internal/engine"
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/scheduler"
	"github.com/vk/systemic/internal/sysconfig"
)

// System is the running instance a caller holds: the expanded configuration
// tree plus its dependency graph, the Registry that dispatches Kind to
// handlers, and the Hooks governing tracing and exception handling for
// every lifecycle call made against it.
type System struct {
	graph *depgraph.System
	reg   engine.Registry
	hooks engine.Hooks
}

// New expands a raw configuration tree, builds its dependency graph, and
// returns the System ready for lifecycle calls. The returned System has
// every Component at sysval.StatusAbsent; call Init to bring it up.
func New(config map[string]any, reg engine.Registry, hooks engine.Hooks) (*System, error) {
	_, components, flat, err := sysconfig.Expand(config)
	if err != nil {
		return nil, err
	}
	g := depgraph.NewSystem(flat, components)
	if err := depgraph.Build(g); err != nil {
		return nil, err
	}
	return &System{graph: g, reg: reg, hooks: hooks}, nil
}

// Graph exposes the underlying depgraph.System for callers that need to
// inspect Component status or value directly.
func (s *System) Graph() *depgraph.System {
	return s.graph
}

// Init runs the init transition over the forward (dependencies)
// topological closure of paths (or the whole graph, if paths is empty).
func (s *System) Init(ctx context.Context, paths ...path.Path) error {
	return s.run(ctx, paths, scheduler.Forward, engine.Init)
}

// Halt runs the halt transition over the reverse (dependents) closure.
func (s *System) Halt(ctx context.Context, paths ...path.Path) error {
	return s.run(ctx, paths, scheduler.Reverse, engine.Halt)
}

// Suspend runs the suspend transition over the reverse (dependents) closure.
func (s *System) Suspend(ctx context.Context, paths ...path.Path) error {
	return s.run(ctx, paths, scheduler.Reverse, engine.Suspend)
}

// Resume runs the resume transition over the forward (dependencies) closure.
func (s *System) Resume(ctx context.Context, paths ...path.Path) error {
	return s.run(ctx, paths, scheduler.Forward, engine.Resume)
}

// ResumeOrInit runs resume and then init, back to back, over the forward
// closure; the can-run gate ensures that for any given path only the
// applicable one of the two actually fires.
func (s *System) ResumeOrInit(ctx context.Context, paths ...path.Path) error {
	if err := s.run(ctx, paths, scheduler.Forward, engine.Resume); err != nil {
		return err
	}
	return s.run(ctx, paths, scheduler.Forward, engine.Init)
}

func (s *System) run(ctx context.Context, paths []path.Path, dir scheduler.Direction, t engine.Transition) error {
	order, err := scheduler.Order(s.graph, paths, dir)
	if err != nil {
		return err
	}
	_, err = engine.Run(ctx, s.graph, s.reg, order, t, s.hooks)
	return err
}
