package memfs

import "github.com/vfscore/vfscore/vfserr"

// CanWatch always reports false: the in-memory backend implements no
// filesystem-watcher event dispatcher.
func (b *Backend) CanWatch() bool { return false }

// Watch is a stub: change notification is explicitly out of scope for
// this backend.
func (b *Backend) Watch() error { return vfserr.ENOSYS }
