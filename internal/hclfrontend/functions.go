// Package hclfrontend is an optional configuration-authoring surface built
// on HCL and go-cty: it lets an author write com(kind, config, extra) and
// ref(key) the way the spec's external interface describes them, and
// translates a parsed .hcl file into the generic map[string]any tree the
// core engine operates on. The core itself never imports this package —
// any frontend that can produce the same generic tree is equally valid.
package hclfrontend

import (
	"reflect"

	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/sysval"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// callCapsuleType and refCapsuleType let com() and ref() return values that
// survive HCL's own evaluation machinery intact, to be unwrapped back into
// sysval.Call and sysval.Ref once the expression tree is fully evaluated.
var (
	callCapsuleType = cty.Capsule("com", reflect.TypeOf(sysval.Call{}))
	refCapsuleType  = cty.Capsule("ref", reflect.TypeOf(sysval.Ref{}))
)

// comFunc implements com(kind), com(kind, config), and com(config-map) —
// the constructor-call tuple syntax. A single map argument is treated
// as a bare config with the identity Kind; a string first argument names
// the Kind explicitly.
var comFunc = function.New(&function.Spec{
	VarParam: &function.Parameter{
		Name:             "args",
		Type:             cty.DynamicPseudoType,
		AllowNull:        true,
		AllowDynamicType: true,
	},
	Type: function.StaticReturnType(callCapsuleType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		call, err := buildCall(args)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.CapsuleVal(callCapsuleType, call), nil
	},
})

func buildCall(args []cty.Value) (*sysval.Call, error) {
	call := &sysval.Call{Kind: sysval.IdentityKind}

	if len(args) == 0 {
		return call, nil
	}

	idx := 0
	if args[0].Type() == cty.String {
		call.Kind = sysval.Kind(args[0].AsString())
		idx = 1
	}

	if idx < len(args) {
		cfg, err := ToNative(args[idx])
		if err != nil {
			return nil, err
		}
		m, _ := cfg.(map[string]any)
		call.Config = m
		idx++
	}

	if idx < len(args) {
		extra, err := ToNative(args[idx])
		if err != nil {
			return nil, err
		}
		m, _ := extra.(map[string]any)
		call.Extra = m
	}

	return call, nil
}

// refFunc implements ref(key) and ref([k1, ..., kn]) — a lexically-scoped
// symbolic pointer. A bare string is a single-element key-sequence; a
// list of strings is a multi-element one.
var refFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "key", Type: cty.DynamicPseudoType, AllowDynamicType: true},
	},
	Type: function.StaticReturnType(refCapsuleType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		key, err := buildRefKey(args[0])
		if err != nil {
			return cty.NilVal, err
		}
		return cty.CapsuleVal(refCapsuleType, &sysval.Ref{Key: key}), nil
	},
})

func buildRefKey(v cty.Value) (path.Path, error) {
	if v.Type() == cty.String {
		return path.New(v.AsString()), nil
	}
	var keys []string
	it := v.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		keys = append(keys, elem.AsString())
	}
	return path.New(keys...), nil
}

// Functions is the set of functions an *hcl.EvalContext needs to evaluate
// a configuration tree written against this frontend's syntax.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"com": comFunc,
		"ref": refFunc,
	}
}
