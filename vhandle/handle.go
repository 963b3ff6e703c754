// Package vhandle implements the stream adapter: an open-file handle
// bound to a vtree.File node, releasing the node's lock exactly once on
// close, the way the teacher's baseHandle/ReadFileHandle/WriteFileHandle
// split shares one embedded base across both directions.
package vhandle

import (
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vtree"
)

// Handle is a stream bound to one file node. ReadHandle and WriteHandle
// each implement the subset that makes sense for their direction; the
// rest come from baseHandle's ENOSYS stubs.
type Handle interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	Length() int64
	SetLength(size int64) error
	// ID is the ambient diagnostic correlation ID for this handle.
	ID() uuid.UUID
}

// baseHandle holds the fields and close/seek/length logic shared by
// ReadHandle and WriteHandle, plus stubs for operations neither
// direction supports but a POSIX-shaped handle would expect:
// Chdir/Chmod/Chown/Readdir/Readdirnames return ENOSYS, Fd returns 0,
// and Flush returns nil.
type baseHandle struct {
	file      *vtree.File
	exclusive bool
	id        uuid.UUID

	mu       sync.Mutex
	position int64
	closed   bool
}

func newBase(file *vtree.File, exclusive bool) baseHandle {
	return baseHandle{file: file, exclusive: exclusive, id: uuid.New()}
}

func (h *baseHandle) ID() uuid.UUID { return h.id }

func (h *baseHandle) Length() int64 { return h.file.Size() }

// SetLength resizes the backing file's content buffer.
func (h *baseHandle) SetLength(size int64) error {
	if size < 0 {
		return vfserr.New(vfserr.InvalidArgument, "")
	}
	h.file.Truncate(size)
	now := nowTime()
	h.file.SetTimes(zeroTime, now, now)
	return nil
}

// Seek implements io.Seeker against the handle's own position cursor.
func (h *baseHandle) Seek(offset int64, whence int) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = h.position + offset
	case io.SeekEnd:
		newPos = h.file.Size() + offset
	default:
		return 0, vfserr.New(vfserr.InvalidArgument, "")
	}
	if newPos < 0 {
		return 0, vfserr.New(vfserr.InvalidArgument, "")
	}
	h.position = newPos
	return newPos, nil
}

// Close releases the node's lock exactly once, whether it was originally
// taken shared or exclusive; a second close is a no-op.
func (h *baseHandle) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	if h.exclusive {
		h.file.Lock().ExitExclusive()
	} else {
		h.file.Lock().ExitShared()
	}
	return nil
}

// The stubs a read-only or write-only handle doesn't implement: ENOSYS
// for Chdir/Chmod/Chown/Readdir/Readdirnames, 0 for Fd, nil for Flush.
func (h *baseHandle) Chdir() error                          { return vfserr.ENOSYS }
func (h *baseHandle) Chmod(mode uint32) error                { return vfserr.ENOSYS }
func (h *baseHandle) Chown(uid, gid int) error               { return vfserr.ENOSYS }
func (h *baseHandle) Fd() uintptr                            { return 0 }
func (h *baseHandle) Readdir(n int) ([]string, error)        { return nil, vfserr.ENOSYS }
func (h *baseHandle) Readdirnames(n int) ([]string, error)   { return nil, vfserr.ENOSYS }
func (h *baseHandle) Flush() error                           { return nil }
