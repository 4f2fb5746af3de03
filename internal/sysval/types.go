// Package sysval defines the tagged data model shared by every layer of the
// runtime: the Component record that lives in the configuration tree, the
// Ref and Call literals a configuration author writes, and the small set of
// tree-walking primitives that know how to tell them apart. None of these
// types know anything about graphs, scheduling, or transitions — they are
// pure data, modeled as sum-typed values rather than a class hierarchy, per
// the "tagged data vs classes" design note.
package sysval

import (
	"strings"

	"github.com/vk/systemic/internal/path"
)

// Kind is a namespaced symbolic identifier used for handler dispatch, e.g.
// "svc/http-server". IsNamespaced reports whether a bare key looks like a
// Kind rather than an ordinary map key — the configuration surface uses the
// presence of a "/" as the namespacing convention.
type Kind string

// IsNamespaced reports whether s follows the "namespace/name" convention
// used to recognize a Kind written as a bare map key (the terse
// auto-wrapping rule in the tree walker) or as a Component location inside
// a referenced map (dependency collection).
func IsNamespaced(s string) bool {
	return strings.Contains(s, "/")
}

// Ref is a lexically-scoped symbolic pointer to another location in the
// configuration tree, written by a configuration author as ref(key) or
// ref([k1, ..., kn]).
type Ref struct {
	// Key is the key-sequence the Ref names, relative to the scope it is
	// resolved against — never an absolute Path on its own.
	Key path.Path
}

// Call is the in-memory form of a constructor-call tuple written by a
// configuration author as com(kind), com(kind, config), or
// com(kind, config, extra). A bare com(config-map) with no kind defaults to
// the identity Kind.
type Call struct {
	Kind   Kind
	Config map[string]any
	// Extra holds the third-argument "merge extra config" form; nil unless
	// the three-argument com() syntax was used.
	Extra map[string]any
}

// Status is the lifecycle status stored on a Component. Per the spec's own
// footnote, a successful resume transition is folded into Init for storage
// purposes — Status therefore only ever takes on these four values, even
// though the engine's Transition type distinguishes a fifth, Resume, for
// running the resume lifecycle operation itself.
type Status int

const (
	// StatusAbsent is the implicit status of a Component that has never
	// been transitioned; Go's zero value, matching "absent is represented
	// by the value being unset."
	StatusAbsent Status = iota
	StatusInit
	StatusHalt
	StatusSuspend
)

// String renders a Status for logs and error messages.
func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusInit:
		return "init"
	case StatusHalt:
		return "halt"
	case StatusSuspend:
		return "suspend"
	default:
		return "unknown"
	}
}

// Component is a node in the configuration tree, carrying a Kind, its
// configuration (which may itself contain Refs and nested Components),
// and the mutable lifecycle state the Transition engine maintains. The two
// transient fields the spec describes (the full system tree and the
// Component's own Path) are deliberately absent here — they are supplied
// per call by the engine, never persisted on the Component, so a Component
// remains a plain, comparable-by-value record between calls.
type Component struct {
	Kind   Kind
	Config map[string]any
	Status Status
	Value  any
}

// IdentityKind is the distinguished built-in Kind whose init-node operation
// returns its own config unchanged, making inert data composable as a
// Component whenever that is convenient.
const IdentityKind Kind = "identity"

// MergeConfig implements the three-argument com(kind, config, extra)
// semantics: a shallow, field-by-field merge where extra's keys win over
// config's on collision. It never mutates either input.
func MergeConfig(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
