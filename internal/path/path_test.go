package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.Equal(t, Root, New())
	assert.Equal(t, Path{"a", "b"}, New("a", "b"))
}

func TestAppend(t *testing.T) {
	base := New("a")
	appended := base.Append("b", "c")

	assert.Equal(t, Path{"a", "b", "c"}, appended)
	assert.Equal(t, Path{"a"}, base, "Append must not mutate the receiver")
}

func TestParent(t *testing.T) {
	parent, ok := New("a", "b", "c").Parent()
	require.True(t, ok)
	assert.Equal(t, New("a", "b"), parent)

	_, ok = Root.Parent()
	assert.False(t, ok)
}

func TestIsRoot(t *testing.T) {
	assert.True(t, Root.IsRoot())
	assert.False(t, New("a").IsRoot())
}

func TestEqual(t *testing.T) {
	assert.True(t, New("a", "b").Equal(New("a", "b")))
	assert.False(t, New("a", "b").Equal(New("a", "c")))
	assert.False(t, New("a").Equal(New("a", "b")))
}

func TestString(t *testing.T) {
	assert.Equal(t, "", Root.String())
	assert.Equal(t, "a.b.c", New("a", "b", "c").String())
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, New("a", "b", "c").HasPrefix(New("a", "b")))
	assert.True(t, New("a", "b").HasPrefix(New("a", "b")))
	assert.True(t, New("a", "b").HasPrefix(Root))
	assert.False(t, New("a", "b").HasPrefix(New("a", "c")))
	assert.False(t, New("a").HasPrefix(New("a", "b")))
}

func TestLess(t *testing.T) {
	assert.True(t, Less(New("a"), New("b")))
	assert.True(t, Less(New("a"), New("a", "b")))
	assert.False(t, Less(New("a", "b"), New("a")))
	assert.False(t, Less(New("a"), New("a")))
}
