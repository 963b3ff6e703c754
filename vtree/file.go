package vtree

import "sync"

// File is a file node: a growable byte buffer plus the common base
// fields. A simple mutex suffices to serialise concurrent writers on the
// same open handle, since the node lock already serialises readers and
// writers at the node level; that mutex is contentMu below.
type File struct {
	base
	contentMu sync.Mutex
	content   []byte
}

// NewFile creates a detached, empty file node. Default attribute for new
// files is Archive.
func NewFile(name string) *File {
	f := &File{base: newBase(name)}
	f.attrs = Archive
	return f
}

func (f *File) IsDir() bool { return false }

// Attrs synthesises the Normal bit when no other bit is set.
func (f *File) Attrs() Attrs {
	a := f.rawAttrs()
	if a == 0 {
		return normal
	}
	return a
}

// Size returns the current content length.
func (f *File) Size() int64 {
	f.contentMu.Lock()
	defer f.contentMu.Unlock()
	return int64(len(f.content))
}

// ReadAt copies up to len(p) bytes starting at off into p, returning the
// number of bytes copied.
func (f *File) ReadAt(p []byte, off int64) int {
	f.contentMu.Lock()
	defer f.contentMu.Unlock()
	if off < 0 || off >= int64(len(f.content)) {
		return 0
	}
	return copy(p, f.content[off:])
}

// WriteAt writes p at offset off, growing the buffer if necessary.
func (f *File) WriteAt(p []byte, off int64) int {
	f.contentMu.Lock()
	defer f.contentMu.Unlock()
	end := off + int64(len(p))
	if end > int64(len(f.content)) {
		grown := make([]byte, end)
		copy(grown, f.content)
		f.content = grown
	}
	copy(f.content[off:end], p)
	return len(p)
}

// Truncate resizes the content buffer to size, zero-filling on growth.
func (f *File) Truncate(size int64) {
	f.contentMu.Lock()
	defer f.contentMu.Unlock()
	if size <= int64(len(f.content)) {
		f.content = f.content[:size]
		return
	}
	grown := make([]byte, size)
	copy(grown, f.content)
	f.content = grown
}

// Bytes returns a copy of the entire content buffer.
func (f *File) Bytes() []byte {
	f.contentMu.Lock()
	defer f.contentMu.Unlock()
	out := make([]byte, len(f.content))
	copy(out, f.content)
	return out
}

// SetBytes replaces the entire content buffer with a copy of b.
func (f *File) SetBytes(b []byte) {
	f.contentMu.Lock()
	defer f.contentMu.Unlock()
	f.content = append([]byte(nil), b...)
}
