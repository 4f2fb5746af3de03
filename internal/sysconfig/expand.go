// Package sysconfig normalizes a raw, author-written configuration tree —
// nested maps, sequences, scalars, sysval.Call tuples, and sysval.Ref
// literals — into the canonical form the rest of the runtime operates on:
// every Component made explicit and addressable by its Path, with a full
// index from Path to whatever lives there.
package sysconfig

import (
	"fmt"

	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/syserr"
	"github.com/vk/systemic/internal/sysval"
)

// kindField and friends are the reserved tagged field names a Component map
// may carry alongside its configuration. config keys are whatever remains
// once these are stripped.
const (
	kindField   = "kind"
	valueField  = "value"
	statusField = "status"
	pathField   = "path"
	systemField = "system"
)

var reservedFields = map[string]bool{
	kindField: true, valueField: true, statusField: true, pathField: true, systemField: true,
}

// Expand walks a raw configuration tree and returns the canonical,
// fully-expanded tree (with every Call tuple and auto-wrapped map rewritten
// into a *sysval.Component) plus two indexes over it: the set of
// Components keyed by their Path, and a full Path index over every
// Component and every intermediate map (used by the reference resolver's
// existence checks).
//
// Expand must only ever be called on a raw configuration with no graph yet
// attached — the auto-wrap shorthand rule applies on this pass and this
// pass only.
func Expand(tree any) (expanded any, components map[string]*sysval.Component, flat map[string]any, err error) {
	components = make(map[string]*sysval.Component)
	flat = make(map[string]any)

	root, ok := tree.(map[string]any)
	if !ok {
		return nil, nil, nil, &syserr.InvalidConfigError{Reason: "root configuration must be a map"}
	}

	expandedRoot, err := expandMap(root, path.Root, components, flat)
	if err != nil {
		return nil, nil, nil, err
	}
	flat[path.Root.String()] = expandedRoot
	return expandedRoot, components, flat, nil
}

// expandMap expands every entry of a map found at Path p, recording each
// Component and each intermediate map in flat as it goes. It never
// descends into sequences.
func expandMap(m map[string]any, p path.Path, components map[string]*sysval.Component, flat map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for key, val := range m {
		childPath := p.Append(key)
		expandedVal, err := expandEntry(key, val, childPath, components, flat)
		if err != nil {
			return nil, err
		}
		out[key] = expandedVal
		flat[childPath.String()] = expandedVal
	}
	return out, nil
}

// expandEntry expands a single map entry, applying the three Component
// recognition rules in order: an explicit Call tuple, an explicit
// kind-tagged map, or (only when neither applies) the terse auto-wrap rule
// for a namespaced key whose value is a plain map.
func expandEntry(key string, val any, p path.Path, components map[string]*sysval.Component, flat map[string]any) (any, error) {
	switch v := val.(type) {
	case sysval.Call:
		return expandCall(v, p, components, flat)
	case sysval.Ref:
		return v, nil
	case map[string]any:
		if kindVal, ok := v[kindField]; ok {
			kind, ok := kindVal.(sysval.Kind)
			if !ok {
				if s, ok := kindVal.(string); ok {
					kind = sysval.Kind(s)
				} else {
					return nil, &syserr.InvalidConfigError{Reason: fmt.Sprintf("%q: kind field must be a string-like Kind", p)}
				}
			}
			return expandComponentMap(kind, v, p, components, flat)
		}
		if sysval.IsNamespaced(key) {
			return expandComponentMap(sysval.Kind(key), v, p, components, flat)
		}
		expandedSub, err := expandMap(v, p, components, flat)
		if err != nil {
			return nil, err
		}
		return expandedSub, nil
	case []any:
		// Sequences are never descended into for Path/flatten purposes.
		return v, nil
	default:
		return v, nil
	}
}

// expandCall rewrites a sysval.Call tuple into its equivalent Component map
// and expands it, applying the three-argument merge semantics along the
// way.
func expandCall(call sysval.Call, p path.Path, components map[string]*sysval.Component, flat map[string]any) (*sysval.Component, error) {
	kind := call.Kind
	if kind == "" {
		kind = sysval.IdentityKind
	}
	cfg := call.Config
	if cfg == nil {
		cfg = map[string]any{}
	}
	if call.Extra != nil {
		cfg = sysval.MergeConfig(cfg, call.Extra)
	}
	return buildComponent(kind, cfg, p, components, flat)
}

// expandComponentMap handles an explicit kind-tagged map or an auto-wrapped
// namespaced-key map: everything besides the reserved fields becomes the
// Component's config.
func expandComponentMap(kind sysval.Kind, m map[string]any, p path.Path, components map[string]*sysval.Component, flat map[string]any) (*sysval.Component, error) {
	cfg := make(map[string]any, len(m))
	for k, v := range m {
		if reservedFields[k] {
			continue
		}
		cfg[k] = v
	}
	return buildComponent(kind, cfg, p, components, flat)
}

// buildComponent recursively expands a Component's config (so further
// nested Calls/Components/auto-wraps inside it are discovered at their own
// absolute Paths) and registers the resulting Component.
func buildComponent(kind sysval.Kind, cfg map[string]any, p path.Path, components map[string]*sysval.Component, flat map[string]any) (*sysval.Component, error) {
	expandedCfg, err := expandMap(cfg, p, components, flat)
	if err != nil {
		return nil, err
	}
	comp := &sysval.Component{
		Kind:   kind,
		Config: expandedCfg,
		Status: sysval.StatusAbsent,
	}
	components[p.String()] = comp
	flat[p.String()] = comp
	return comp, nil
}

// Flatten returns the Path → value index for an already-expanded tree,
// recomputing it from scratch by walking maps (never sequences), exactly as
// Expand does internally. It is exposed separately so callers holding an
// already-expanded System (with no raw Calls left to rewrite) can
// regenerate the index without re-running Component recognition.
func Flatten(expanded any) map[string]any {
	flat := make(map[string]any)
	flattenInto(expanded, path.Root, flat)
	return flat
}

func flattenInto(v any, p path.Path, flat map[string]any) {
	flat[p.String()] = v
	switch val := v.(type) {
	case *sysval.Component:
		for k, child := range val.Config {
			flattenInto(child, p.Append(k), flat)
		}
	case map[string]any:
		for k, child := range val {
			flattenInto(child, p.Append(k), flat)
		}
	}
}
