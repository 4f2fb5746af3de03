// Package registry holds the mapping from a Component's Kind to the Go
// functions that implement its lifecycle: the central glue between a
// configuration author's namespaced kind strings and the compiled handlers
// that actually run them.
package registry

import (
	"fmt"

	"github.com/vk/systemic/internal/engine"
	"github.com/vk/systemic/internal/sysval"
)

// Registry holds the HandlerSet registered for every known Kind.
type Registry struct {
	handlers map[sysval.Kind]engine.HandlerSet
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[sysval.Kind]engine.HandlerSet)}
}

// Register adds the HandlerSet for kind. Registering the same kind twice is
// a programmer error and panics, matching the fail-fast module wiring the
// rest of the runtime uses at startup.
func (r *Registry) Register(kind sysval.Kind, hs engine.HandlerSet) {
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("handlers for kind %q already registered", kind))
	}
	if hs.Init == nil {
		panic(fmt.Sprintf("kind %q registered with no init-node handler", kind))
	}
	r.handlers[kind] = hs
}

// Lookup implements engine.Registry.
func (r *Registry) Lookup(kind sysval.Kind) (engine.HandlerSet, bool) {
	hs, ok := r.handlers[kind]
	return hs, ok
}

// Kinds returns every registered Kind, for diagnostics.
func (r *Registry) Kinds() []sysval.Kind {
	out := make([]sysval.Kind, 0, len(r.handlers))
	for k := range r.handlers {
		out = append(out, k)
	}
	return out
}
