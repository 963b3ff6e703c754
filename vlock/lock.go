// Package vlock implements the per-node and global reader/writer lock
// that every node in vtree and the filesystem-wide lock in memfs embed
// inline, the way the teacher's Dir/File types carry their own
// sync.Mutex rather than wrapping the node in an external lock, so
// collection mutation and metadata updates share the same critical
// section as the lock itself.
package vlock

import (
	"sync"

	"github.com/vfscore/vfscore/vfserr"
)

// Lock is an intrusive shared/exclusive lock with share-mode tracking.
// Its shared_count convention is followed exactly: -1 exclusive, 0
// unlocked, >0 number of shared holders.
type Lock struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int // -1 exclusive, 0 unlocked, >0 shared holders
	mode  ShareMode
}

// New returns a ready-to-use Lock.
func New() *Lock {
	l := &Lock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// EnterShared blocks until the lock can be taken in the given share
// mode: it blocks while an exclusive holder is present, and once
// acquired, requires the requested mode to be a subset of any mode
// already recorded by an existing shared holder, failing Busy otherwise.
// The first shared holder sets the share mode.
func (l *Lock) EnterShared(mode ShareMode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.count < 0 {
		l.cond.Wait()
	}
	if l.count > 0 && !compatible(mode, l.mode) {
		return vfserr.New(vfserr.Busy, "")
	}
	if l.count == 0 {
		l.mode = mode
	}
	l.count++
	return nil
}

// TryEnterShared is EnterShared's non-blocking variant: it returns false
// immediately instead of waiting when the lock is held exclusively or the
// requested share mode is incompatible.
func (l *Lock) TryEnterShared(mode ShareMode) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count < 0 {
		return false
	}
	if l.count > 0 && !compatible(mode, l.mode) {
		return false
	}
	if l.count == 0 {
		l.mode = mode
	}
	l.count++
	return true
}

// EnterExclusive blocks until shared_count == 0, then takes the lock
// exclusively.
func (l *Lock) EnterExclusive() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.count != 0 {
		l.cond.Wait()
	}
	l.count = -1
}

// TryEnterExclusive is EnterExclusive's non-blocking variant.
func (l *Lock) TryEnterExclusive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count != 0 {
		return false
	}
	l.count = -1
	return true
}

// ExitShared releases one shared holder, restoring the share mode to
// none once the last holder leaves, and broadcasts to waiters.
func (l *Lock) ExitShared() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count <= 0 {
		panic("vlock: ExitShared on a lock with no shared holder")
	}
	l.count--
	if l.count == 0 {
		l.mode = ShareNone
	}
	l.cond.Broadcast()
}

// ExitExclusive releases the exclusive holder and broadcasts to waiters.
func (l *Lock) ExitExclusive() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count != -1 {
		panic("vlock: ExitExclusive on a lock that isn't held exclusively")
	}
	l.count = 0
	l.cond.Broadcast()
}

// State reports the current raw count and recorded share mode, for tests
// and instrumentation only.
func (l *Lock) State() (count int, mode ShareMode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count, l.mode
}
