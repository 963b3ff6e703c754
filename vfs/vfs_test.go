package vfs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfscore/memfs"
	"github.com/vfscore/vfscore/vlock"
)

func newVFS(t *testing.T) *VFS {
	t.Helper()
	return New(memfs.Options{}, nil)
}

func TestMkdirRejectsMissingParent(t *testing.T) {
	v := newVFS(t)
	err := v.Mkdir("/a/b")
	require.Error(t, err)
}

func TestMkdirAllBuildsIntermediates(t *testing.T) {
	v := newVFS(t)
	require.NoError(t, v.MkdirAll("/a/b/c"))
	st, err := v.Stat("/a/b/c")
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestWriteFileThenReadFile(t *testing.T) {
	v := newVFS(t)
	require.NoError(t, v.WriteFile("/f", []byte("hello world")))
	got, err := v.ReadFile("/f")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

func TestOpenFileFlagsRoundTrip(t *testing.T) {
	v := newVFS(t)
	h, err := v.OpenFile("/f", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, vlock.ShareNone)
	require.NoError(t, err)
	_, err = h.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	h2, err := v.OpenFile("/f", os.O_RDONLY, vlock.ShareRead)
	require.NoError(t, err)
	buf := make([]byte, 16)
	n, _ := h2.Read(buf)
	require.NoError(t, h2.Close())
	assert.Equal(t, "data", string(buf[:n]))
}

func TestRenameDispatchesByType(t *testing.T) {
	v := newVFS(t)
	require.NoError(t, v.WriteFile("/f", []byte("x")))
	require.NoError(t, v.Rename("/f", "/g"))
	st, err := v.Stat("/g")
	require.NoError(t, err)
	assert.False(t, st.IsDir())

	require.NoError(t, v.MkdirAll("/d"))
	require.NoError(t, v.Rename("/d", "/e"))
	st, err = v.Stat("/e")
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestStatParentRejectsFileAncestor(t *testing.T) {
	v := newVFS(t)
	require.NoError(t, v.WriteFile("/f", []byte("x")))
	_, _, err := v.StatParent("/f/g")
	require.Error(t, err)
}

func TestStatParentReturnsDirAndName(t *testing.T) {
	v := newVFS(t)
	require.NoError(t, v.MkdirAll("/a/b"))
	dir, name, err := v.StatParent("/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, "c", name)
	assert.Equal(t, "b", dir.Name())
}
