package engine

import (
	"context"

	"github.com/vk/systemic/internal/sysval"
)

// HandlerFunc is a Kind's implementation of one lifecycle operation. It
// receives the Component's resolved config — every Ref already substituted
// with its target's current value, enriched with the transient "system",
// "path", and "value" fields (the last being the Component's own value
// before this call) — and returns the value the Component takes on.
type HandlerFunc func(ctx context.Context, resolvedConfig map[string]any) (any, error)

// HandlerSet is the four-operation handler contract a Kind registers.
// Halt, Suspend, and Resume may be left nil; Resolved fills in the
// spec's defaults: halt defaults to identity (returns the Component's
// existing value unchanged), suspend delegates to halt, and resume
// delegates to init.
type HandlerSet struct {
	Init    HandlerFunc
	Halt    HandlerFunc
	Suspend HandlerFunc
	Resume  HandlerFunc
}

// identity returns the Component's current value unchanged — the default
// halt-node behavior.
func identity(existing any) HandlerFunc {
	return func(ctx context.Context, resolvedConfig map[string]any) (any, error) {
		return existing, nil
	}
}

// Resolved returns the handler to invoke for transition t, applying the
// default-delegation rules for any operation the Kind did not register.
// existingValue is needed only for the identity default, since it must
// answer with the Component's current value rather than its (unrelated)
// config.
func (hs HandlerSet) Resolved(t Transition, existingValue any) HandlerFunc {
	switch t {
	case Init:
		return hs.Init
	case Halt:
		if hs.Halt != nil {
			return hs.Halt
		}
		return identity(existingValue)
	case Suspend:
		if hs.Suspend != nil {
			return hs.Suspend
		}
		return hs.Resolved(Halt, existingValue)
	case Resume:
		if hs.Resume != nil {
			return hs.Resume
		}
		return hs.Init
	default:
		return nil
	}
}

// Registry looks up the HandlerSet registered for a Kind. It is satisfied
// by internal/registry.Registry.
type Registry interface {
	Lookup(kind sysval.Kind) (HandlerSet, bool)
}
