package vtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachDetachLookup(t *testing.T) {
	root := NewRoot()
	child := NewDir("a")

	require.NoError(t, Attach(child, root, "a"))
	got, ok := Lookup(root, "a")
	require.True(t, ok)
	assert.Equal(t, child, got)
	assert.Equal(t, root, child.Parent())

	// Re-attaching a still-attached node is rejected.
	other := NewDir("b")
	require.NoError(t, Attach(other, root, "b"))
	err := Attach(other, root, "c")
	assert.Error(t, err)

	Detach(child)
	_, ok = Lookup(root, "a")
	assert.False(t, ok)
	assert.Nil(t, child.Parent())
}

func TestRootHasNilParent(t *testing.T) {
	root := NewRoot()
	assert.Nil(t, root.Parent())
}

func TestChildrenIterSnapshot(t *testing.T) {
	root := NewRoot()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, Attach(NewDir(name), root, name))
	}
	snap := ChildrenIter(root)
	assert.Len(t, snap, 3)

	// Mutating root after the snapshot doesn't affect it.
	Detach(snap["a"])
	assert.Len(t, snap, 3)
	assert.Len(t, ChildrenIter(root), 2)
}

func TestCollectDescendantsExclusivePreOrder(t *testing.T) {
	root := NewRoot()
	a := NewDir("a")
	require.NoError(t, Attach(a, root, "a"))
	f := NewFile("f")
	require.NoError(t, Attach(f, a, "f"))
	b := NewDir("b")
	require.NoError(t, Attach(b, a, "b"))

	var list []Node
	require.NoError(t, CollectDescendantsExclusive(root, &list))
	assert.Len(t, list, 3)

	for _, n := range list {
		count, _ := n.Lock().State()
		assert.Equal(t, -1, count)
	}
	for i := len(list) - 1; i >= 0; i-- {
		list[i].Lock().ExitExclusive()
	}
}

func TestFileAttrsDefaultArchive(t *testing.T) {
	f := NewFile("x")
	assert.True(t, f.Attrs().Has(Archive))
}

func TestDirAttrsSynthesisesDirectoryBit(t *testing.T) {
	d := NewDir("x")
	assert.True(t, d.Attrs().Has(directory))
	// The Directory bit is never actually stored.
	assert.False(t, d.rawAttrs().Has(directory))
}
