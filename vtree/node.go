// Package vtree implements the in-memory node tree: Dir and File node
// variants sharing a common base of parent back-reference, attributes,
// timestamps, and an embedded per-node lock, the way the teacher's
// Dir/File types both carry their own metadata fields and sync.Mutex
// rather than an external wrapper.
package vtree

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vfscore/vfscore/vlock"
)

// Node is the common interface implemented by *Dir and *File.
type Node interface {
	// Name is the node's leaf name ("" for the root).
	Name() string
	// Parent is the containing directory, or nil for the root.
	Parent() *Dir
	// setParent is used only by Attach/Detach in this package.
	setParent(*Dir)
	// setName is used only by Attach in this package.
	setName(string)
	// IsDir reports whether this node is a directory.
	IsDir() bool
	// Lock is the node's embedded reader/writer lock.
	Lock() *vlock.Lock
	// Attrs returns the effective attribute bits, with Normal/Directory
	// synthesised on read.
	Attrs() Attrs
	// SetAttrs stores raw attribute bits, excluding Normal/Directory.
	SetAttrs(Attrs)
	// Times returns (created, accessed, modified).
	Times() (time.Time, time.Time, time.Time)
	// SetTimes updates any non-zero field; a zero time.Time leaves that
	// field unchanged.
	SetTimes(created, accessed, modified time.Time)
	// ID is a synthetic, process-local unique identifier, used for
	// diagnostics/metrics correlation only.
	ID() uuid.UUID
	// disposed reports whether Dispose has been called.
	disposed() bool
	// dispose marks the node as permanently detached and unusable.
	dispose()
}

// base holds the fields common to Dir and File.
type base struct {
	mu       sync.Mutex // guards name/parent/attrs/times/disposedFlag
	name     string
	parent   *Dir
	attrs    Attrs
	created  time.Time
	accessed time.Time
	modified time.Time
	lock     *vlock.Lock
	id       uuid.UUID
	gone     bool
}

func newBase(name string) base {
	now := time.Now()
	return base{
		name:     name,
		created:  now,
		accessed: now,
		modified: now,
		lock:     vlock.New(),
		id:       uuid.New(),
	}
}

func (b *base) Name() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.name
}

func (b *base) Parent() *Dir {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.parent
}

func (b *base) setParent(p *Dir) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.parent = p
}

func (b *base) setName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
}

func (b *base) Lock() *vlock.Lock { return b.lock }

func (b *base) rawAttrs() Attrs {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attrs
}

func (b *base) SetAttrs(a Attrs) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attrs = a &^ (normal | directory)
	b.modified = time.Now()
}

func (b *base) Times() (time.Time, time.Time, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created, b.accessed, b.modified
}

func (b *base) SetTimes(created, accessed, modified time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !created.IsZero() {
		b.created = created
	}
	if !accessed.IsZero() {
		b.accessed = accessed
	}
	if !modified.IsZero() {
		b.modified = modified
	}
}

func (b *base) touchAccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accessed = time.Now()
}

func (b *base) touchWrite() {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.accessed = now
	b.modified = now
}

func (b *base) ID() uuid.UUID { return b.id }

func (b *base) disposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gone
}

func (b *base) dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gone = true
}

// FileTimeZero is the sentinel "file time zero": 1601-01-01 00:00:00
// UTC, the classic Windows epoch, expressed in local time, returned for
// absent paths rather than erroring.
var FileTimeZero = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC).Local()
