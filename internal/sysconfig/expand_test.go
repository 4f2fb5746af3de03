package sysconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/sysval"
)

func TestExpand_ExplicitCall(t *testing.T) {
	tree := map[string]any{
		"a": sysval.Call{Kind: "test/k1", Config: map[string]any{"x": 1}},
	}

	_, components, flat, err := Expand(tree)
	require.NoError(t, err)

	comp, ok := components[path.New("a").String()]
	require.True(t, ok)
	assert.Equal(t, sysval.Kind("test/k1"), comp.Kind)
	assert.Equal(t, map[string]any{"x": 1}, comp.Config)
	assert.Equal(t, sysval.StatusAbsent, comp.Status)
	assert.Same(t, comp, flat[path.New("a").String()])
}

func TestExpand_CallWithDefaultIdentityKind(t *testing.T) {
	tree := map[string]any{
		"a": sysval.Call{Config: map[string]any{"x": 1}},
	}
	_, components, _, err := Expand(tree)
	require.NoError(t, err)
	assert.Equal(t, sysval.IdentityKind, components[path.New("a").String()].Kind)
}

func TestExpand_ThreeArgCallMergesExtraOverConfig(t *testing.T) {
	tree := map[string]any{
		"a": sysval.Call{
			Kind:   "test/k1",
			Config: map[string]any{"x": 1, "y": 2},
			Extra:  map[string]any{"y": 99},
		},
	}
	_, components, _, err := Expand(tree)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1, "y": 99}, components[path.New("a").String()].Config)
}

func TestExpand_ExplicitKindTaggedMap(t *testing.T) {
	tree := map[string]any{
		"a": map[string]any{
			"kind": "test/k1",
			"port": 8080,
		},
	}
	_, components, _, err := Expand(tree)
	require.NoError(t, err)

	comp := components[path.New("a").String()]
	require.NotNil(t, comp)
	assert.Equal(t, sysval.Kind("test/k1"), comp.Kind)
	assert.Equal(t, map[string]any{"port": 8080}, comp.Config)
}

func TestExpand_AutoWrapNamespacedKey(t *testing.T) {
	tree := map[string]any{
		"test/k1": map[string]any{"port": 8080},
	}
	_, components, _, err := Expand(tree)
	require.NoError(t, err)

	comp := components[path.New("test/k1").String()]
	require.NotNil(t, comp)
	assert.Equal(t, sysval.Kind("test/k1"), comp.Kind)
	assert.Equal(t, map[string]any{"port": 8080}, comp.Config)
}

func TestExpand_PlainNamespacedKeyNotAutoWrappedWhenValueIsNotAMap(t *testing.T) {
	tree := map[string]any{
		"test/k1": "just a string",
	}
	_, components, _, err := Expand(tree)
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestExpand_NestedComponentInsideConfig(t *testing.T) {
	tree := map[string]any{
		"parent": sysval.Call{Kind: "test/k1", Config: map[string]any{
			"child": sysval.Call{Kind: "test/k2", Config: map[string]any{}},
		}},
	}
	_, components, _, err := Expand(tree)
	require.NoError(t, err)

	require.Contains(t, components, path.New("parent").String())
	require.Contains(t, components, path.New("parent", "child").String())
	assert.Equal(t, sysval.Kind("test/k2"), components[path.New("parent", "child").String()].Kind)
}

func TestExpand_PlainDataPassesThroughUntouched(t *testing.T) {
	tree := map[string]any{
		"scalar": 42,
		"list":   []any{1, 2, 3},
		"nested": map[string]any{"inner": "value"},
	}
	expanded, components, flat, err := Expand(tree)
	require.NoError(t, err)
	assert.Empty(t, components)

	out := expanded.(map[string]any)
	assert.Equal(t, 42, out["scalar"])
	assert.Equal(t, []any{1, 2, 3}, out["list"])
	assert.Equal(t, map[string]any{"inner": "value"}, out["nested"])
	assert.Contains(t, flat, path.New("nested").String())
	assert.Contains(t, flat, path.New("nested", "inner").String())
}

func TestExpand_RootMustBeAMap(t *testing.T) {
	_, _, _, err := Expand("not a map")
	require.Error(t, err)
}

func TestFlatten_MatchesExpandIndex(t *testing.T) {
	tree := map[string]any{
		"a": sysval.Call{Kind: "test/k1", Config: map[string]any{"x": 1}},
		"b": map[string]any{"nested": sysval.Call{Kind: "test/k2", Config: map[string]any{}}},
	}
	expanded, _, expandFlat, err := Expand(tree)
	require.NoError(t, err)

	reflattened := Flatten(expanded)
	assert.Equal(t, expandFlat[path.New("a").String()], reflattened[path.New("a").String()])
	assert.Equal(t, expandFlat[path.New("b", "nested").String()], reflattened[path.New("b", "nested").String()])
}
