package vhandle

import (
	"io"

	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vtree"
)

// ReadHandle is a Handle opened for reading only. Write returns EROFS,
// matching a read-only teacher ReadFileHandle.
type ReadHandle struct {
	baseHandle
}

// NewReadHandle returns a ReadHandle bound to file. exclusive records
// whether the node's lock was taken exclusively (Close must then release
// it the same way), matching the lock mode OpenFile chose.
func NewReadHandle(file *vtree.File, exclusive bool) *ReadHandle {
	return &ReadHandle{baseHandle: newBase(file, exclusive)}
}

// Read copies from the current position, advancing it, and updates the
// file's last-access time.
func (h *ReadHandle) Read(p []byte) (int, error) {
	h.mu.Lock()
	pos := h.position
	h.mu.Unlock()

	n := h.file.ReadAt(p, pos)
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	h.mu.Lock()
	h.position += int64(n)
	h.mu.Unlock()
	h.file.SetTimes(zeroTime, nowTime(), zeroTime)
	return n, nil
}

// Write is unsupported on a read-only handle.
func (h *ReadHandle) Write(p []byte) (int, error) { return 0, vfserr.EROFS }
