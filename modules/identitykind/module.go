// Package identitykind implements the distinguished built-in "identity"
// Kind: init-node returns its own config unchanged, making inert
// data composable as a Component wherever that is convenient. It is the
// simplest possible Kind. It is available only in a Registry that Register
// was called on; internal/runtime does not add it on its own.
package identitykind

import (
	"context"

	"github.com/vk/systemic/internal/engine"
	"github.com/vk/systemic/internal/registry"
	"github.com/vk/systemic/internal/sysval"
)

// Init returns the resolved config as-is, minus the transient fields the
// engine enriched it with — a Component of this Kind is pure data.
func Init(ctx context.Context, resolvedConfig map[string]any) (any, error) {
	out := make(map[string]any, len(resolvedConfig))
	for k, v := range resolvedConfig {
		if k == "system" || k == "path" || k == "value" {
			continue
		}
		out[k] = v
	}
	return out, nil
}

// Register wires the identity Kind's handler set into r. Halt, Suspend, and
// Resume are left nil so the engine's default delegation (identity, halt,
// init respectively) applies.
func Register(r *registry.Registry) {
	r.Register(sysval.IdentityKind, engine.HandlerSet{Init: Init})
}
