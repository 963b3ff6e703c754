package vhandle

import (
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vtree"
)

// WriteHandle is a Handle opened for writing. Read returns EROFS,
// matching a write-only teacher WriteFileHandle.
type WriteHandle struct {
	baseHandle
}

// NewWriteHandle returns a WriteHandle bound to file. If appendMode is
// set, the handle's position starts at the file's current end, the
// Append open mode's "seek to end" effect.
func NewWriteHandle(file *vtree.File, exclusive, appendMode bool) *WriteHandle {
	h := &WriteHandle{baseHandle: newBase(file, exclusive)}
	if appendMode {
		h.position = file.Size()
	}
	return h
}

// Read is unsupported on a write-only handle.
func (h *WriteHandle) Read(p []byte) (int, error) { return 0, vfserr.EROFS }

// Write writes p at the current position, advancing it, and updates the
// file's last-access and last-write times.
func (h *WriteHandle) Write(p []byte) (int, error) {
	h.mu.Lock()
	pos := h.position
	h.mu.Unlock()

	n := h.file.WriteAt(p, pos)
	h.mu.Lock()
	h.position += int64(n)
	h.mu.Unlock()
	now := nowTime()
	h.file.SetTimes(zeroTime, now, now)
	return n, nil
}
