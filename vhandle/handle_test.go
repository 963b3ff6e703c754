package vhandle

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

func newLockedFile(t *testing.T, exclusive bool) *vtree.File {
	t.Helper()
	f := vtree.NewFile("f")
	if exclusive {
		f.Lock().EnterExclusive()
	} else {
		require.NoError(t, f.Lock().EnterShared(vlock.ShareRead))
	}
	return f
}

func TestWriteHandleReadReturnsEROFS(t *testing.T) {
	f := newLockedFile(t, true)
	h := NewWriteHandle(f, true, false)
	defer h.Close()

	_, err := h.Read(make([]byte, 4))
	assert.ErrorIs(t, err, vfserr.EROFS)
}

func TestReadHandleWriteReturnsEROFS(t *testing.T) {
	f := newLockedFile(t, false)
	h := NewReadHandle(f, false)
	defer h.Close()

	_, err := h.Write([]byte("x"))
	assert.ErrorIs(t, err, vfserr.EROFS)
}

func TestWriteHandleAppendModeStartsAtEnd(t *testing.T) {
	f := vtree.NewFile("f")
	f.SetBytes([]byte("hello"))
	f.Lock().EnterExclusive()

	h := NewWriteHandle(f, true, true)
	defer h.Close()

	n, err := h.Write([]byte("!"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "hello!", string(f.Bytes()))
}

func TestWriteHandleSeekAndOverwrite(t *testing.T) {
	f := vtree.NewFile("f")
	f.SetBytes([]byte("0123456789"))
	f.Lock().EnterExclusive()

	h := NewWriteHandle(f, true, false)
	defer h.Close()

	pos, err := h.Seek(3, io.SeekStart)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pos)

	_, err = h.Write([]byte("XY"))
	require.NoError(t, err)
	assert.Equal(t, "012XY56789", string(f.Bytes()))
}

func TestSeekNegativeIsInvalidArgument(t *testing.T) {
	f := newLockedFile(t, true)
	h := NewWriteHandle(f, true, false)
	defer h.Close()

	_, err := h.Seek(-1, io.SeekStart)
	assert.True(t, vfserr.Is(err, vfserr.InvalidArgument))
}

func TestCloseIsIdempotentAndReleasesLock(t *testing.T) {
	f := newLockedFile(t, true)
	h := NewWriteHandle(f, true, false)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	assert.True(t, f.Lock().TryEnterExclusive())
}

func TestCloseReleasesSharedLock(t *testing.T) {
	f := newLockedFile(t, false)
	h := NewReadHandle(f, false)

	require.NoError(t, h.Close())
	assert.True(t, f.Lock().TryEnterExclusive())
}

func TestENOSYSStubs(t *testing.T) {
	f := newLockedFile(t, true)
	h := NewWriteHandle(f, true, false)
	defer h.Close()

	assert.ErrorIs(t, h.Chdir(), vfserr.ENOSYS)
	assert.ErrorIs(t, h.Chmod(0), vfserr.ENOSYS)
	assert.ErrorIs(t, h.Chown(0, 0), vfserr.ENOSYS)
	_, err := h.Readdir(-1)
	assert.ErrorIs(t, err, vfserr.ENOSYS)
	_, err = h.Readdirnames(-1)
	assert.ErrorIs(t, err, vfserr.ENOSYS)
	assert.NoError(t, h.Flush())
}

func TestHandleIDIsStable(t *testing.T) {
	f := newLockedFile(t, true)
	h := NewWriteHandle(f, true, false)
	defer h.Close()

	id1 := h.ID()
	id2 := h.ID()
	assert.Equal(t, id1, id2)
}
