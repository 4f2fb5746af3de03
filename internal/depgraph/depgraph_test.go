package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/systemic/internal/path"
	"github.com/vk/systemic/internal/sysconfig"
	"github.com/vk/systemic/internal/syserr"
	"github.com/vk/systemic/internal/sysval"
)

func TestGraph_AddEdgeAndQuery(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge("a", "b"))

	deps, err := g.Dependencies("a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b"}, deps)

	dependents, err := g.Dependents("b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a"}, dependents)
}

func TestGraph_RejectsSelfEdge(t *testing.T) {
	g := New()
	err := g.AddEdge("a", "a")
	assert.Error(t, err)
}

func TestGraph_DetectCycles(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("c", "a"))

	assert.Error(t, g.DetectCycles())
}

func TestGraph_AcyclicPasses(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))

	assert.NoError(t, g.DetectCycles())
}

func TestResolve_FindsValueAtFullScope(t *testing.T) {
	sys := &System{Flat: map[string]any{
		"a.b.target": "value",
	}}
	got, err := Resolve(sys, path.New("a", "b"), path.New("target"))
	require.NoError(t, err)
	assert.Equal(t, path.New("a", "b", "target"), got)
}

func TestResolve_WalksUpScopeUntilFound(t *testing.T) {
	sys := &System{Flat: map[string]any{
		"a.target": "value",
	}}
	got, err := Resolve(sys, path.New("a", "b", "c"), path.New("target"))
	require.NoError(t, err)
	assert.Equal(t, path.New("a", "target"), got)
}

func TestResolve_FailsWhenNothingMatches(t *testing.T) {
	sys := &System{Flat: map[string]any{}}
	_, err := Resolve(sys, path.New("a"), path.New("missing"))
	require.Error(t, err)
	var missing *syserr.MissingDependencyError
	require.ErrorAs(t, err, &missing)
}

func TestComponentsUnder_DirectComponent(t *testing.T) {
	comp := &sysval.Component{Kind: "test/k"}
	sys := &System{Flat: map[string]any{"a": comp}}
	got := ComponentsUnder(sys, path.New("a"))
	assert.Equal(t, []path.Path{path.New("a")}, got)
}

func TestComponentsUnder_MapEnumeratesNamespacedComponentChildren(t *testing.T) {
	sys := &System{Flat: map[string]any{
		"a": map[string]any{
			"test/svc1": &sysval.Component{Kind: "test/svc1"},
			"plain_key": "not a component location",
		},
		"a.test/svc1": &sysval.Component{Kind: "test/svc1"},
	}}
	got := ComponentsUnder(sys, path.New("a"))
	assert.Equal(t, []path.Path{path.New("a", "test/svc1")}, got)
}

func TestComponentsUnder_NamespacedKeyWithoutComponentIsIgnored(t *testing.T) {
	sys := &System{Flat: map[string]any{
		"a": map[string]any{
			"test/svc1": "opaque",
		},
		"a.test/svc1": "opaque",
	}}
	assert.Empty(t, ComponentsUnder(sys, path.New("a")))
}

func TestComponentsUnder_ScalarYieldsNothing(t *testing.T) {
	sys := &System{Flat: map[string]any{"a": 42}}
	assert.Empty(t, ComponentsUnder(sys, path.New("a")))
}

func TestBuild_LinksDependencyEdgeAndRoot(t *testing.T) {
	tree := map[string]any{
		"db": sysval.Call{Kind: "test/db", Config: map[string]any{}},
		"svc": sysval.Call{Kind: "test/svc", Config: map[string]any{
			"backend": sysval.Ref{Key: path.New("db")},
		}},
	}
	_, components, flat, err := sysconfig.Expand(tree)
	require.NoError(t, err)

	sys := NewSystem(flat, components)
	require.NoError(t, Build(sys))

	deps, err := sys.Graph.Dependencies(path.New("svc").String())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{path.New("db").String(), Root.String()}, deps)

	deps, err = sys.Graph.Dependencies(path.New("db").String())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{Root.String()}, deps)
}

func TestBuild_MissingDependencyFails(t *testing.T) {
	tree := map[string]any{
		"svc": sysval.Call{Kind: "test/svc", Config: map[string]any{
			"backend": sysval.Ref{Key: path.New("does-not-exist")},
		}},
	}
	_, components, flat, err := sysconfig.Expand(tree)
	require.NoError(t, err)

	sys := NewSystem(flat, components)
	err = Build(sys)
	require.Error(t, err)
	var missing *syserr.MissingDependencyError
	require.ErrorAs(t, err, &missing)
}

func TestBuild_CyclicDependencyFails(t *testing.T) {
	tree := map[string]any{
		"a": sysval.Call{Kind: "test/a", Config: map[string]any{
			"dep": sysval.Ref{Key: path.New("b")},
		}},
		"b": sysval.Call{Kind: "test/b", Config: map[string]any{
			"dep": sysval.Ref{Key: path.New("a")},
		}},
	}
	_, components, flat, err := sysconfig.Expand(tree)
	require.NoError(t, err)

	sys := NewSystem(flat, components)
	err = Build(sys)
	require.Error(t, err)
	var cyclic *syserr.CyclicDependencyError
	require.ErrorAs(t, err, &cyclic)
}

func TestBuild_ReferenceToEnclosingMapPullsInEveryChild(t *testing.T) {
	tree := map[string]any{
		"backends": map[string]any{
			"test/primary":   map[string]any{},
			"test/secondary": map[string]any{},
		},
		"svc": sysval.Call{Kind: "test/svc", Config: map[string]any{
			"all": sysval.Ref{Key: path.New("backends")},
		}},
	}
	_, components, flat, err := sysconfig.Expand(tree)
	require.NoError(t, err)

	sys := NewSystem(flat, components)
	require.NoError(t, Build(sys))

	deps, err := sys.Graph.Dependencies(path.New("svc").String())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		path.New("backends", "test/primary").String(),
		path.New("backends", "test/secondary").String(),
		Root.String(),
	}, deps)
}
