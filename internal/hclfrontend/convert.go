package hclfrontend

import (
	"fmt"

	"github.com/vk/systemic/internal/sysval"
	"github.com/zclconf/go-cty/cty"
)

// ToNative converts an evaluated cty.Value back into the generic Go shapes
// the core engine understands: map[string]any, []any, string, bool,
// float64 (for every number), nil, and the two tagged leaves sysval.Ref and sysval.Call
// wherever com()/ref() produced a capsule value.
func ToNative(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("hclfrontend: value is not known at decode time")
	}

	switch {
	case v.Type().Equals(callCapsuleType):
		call := v.EncapsulatedValue().(*sysval.Call)
		return *call, nil
	case v.Type().Equals(refCapsuleType):
		ref := v.EncapsulatedValue().(*sysval.Ref)
		return *ref, nil
	}

	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Bool:
		return v.True(), nil
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	}

	if v.Type().IsObjectType() || v.Type().IsMapType() {
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			k, val := it.Element()
			native, err := ToNative(val)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = native
		}
		return out, nil
	}

	if v.Type().IsTupleType() || v.Type().IsListType() || v.Type().IsSetType() {
		var out []any
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			native, err := ToNative(val)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	}

	return nil, fmt.Errorf("hclfrontend: unsupported value type %s", v.Type().FriendlyName())
}
