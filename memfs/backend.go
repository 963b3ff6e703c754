// Package memfs implements the operation layer as the public in-memory
// Backend: every operation of the backend interface, built on vtree's
// node tree and lockorch's ordered lock acquisition, the way the
// teacher's vfs.VFS sits directly on an fs.Fs rather than reimplementing
// locking per method.
package memfs

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/vfscore/vfscore/lockorch"
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

// Backend is the in-memory filesystem core: a node tree rooted at Root,
// the lock orchestrator that resolves paths against it, and the single
// filesystem-wide lock that cross-parent operations promote to
// exclusive.
type Backend struct {
	root   *vtree.Dir
	orch   *lockorch.Orchestrator
	global *vlock.Lock
	opts   Options
	log    *logrus.Entry
	mx     *metrics
	enumMu sync.Mutex
	enum   *cache.Cache
}

// New returns an empty Backend: a single root directory with no children.
// reg may be nil to skip Prometheus registration (tests typically pass
// nil to avoid colliding with the default registry across test cases).
func New(opts Options, reg prometheus.Registerer) *Backend {
	b := &Backend{
		root:   vtree.NewRoot(),
		global: vlock.New(),
		opts:   opts,
		log:    logrus.WithField("component", "memfs"),
		mx:     newMetrics(reg),
	}
	b.orch = lockorch.New(b.root)
	if opts.EnumerationCacheTTL > 0 {
		b.enum = cache.New(opts.EnumerationCacheTTL, 2*opts.EnumerationCacheTTL)
	}
	return b
}

// Root returns the backend's root directory node.
func (b *Backend) Root() *vtree.Dir { return b.root }

// enterGlobal acquires the global lock shared (same-parent operations) or
// exclusive (cross-parent operations, per the orchestrator's promotion
// rule) and returns the release function.
func (b *Backend) enterGlobal(exclusive bool) func() {
	start := time.Now()
	if exclusive {
		b.global.EnterExclusive()
		exitMetrics := b.mx.enterGlobal("global", true, time.Since(start))
		return func() {
			exitMetrics()
			b.global.ExitExclusive()
		}
	}
	// The global lock's own share mode is irrelevant to callers: every
	// shared holder here wants the same thing, "don't let an exclusive
	// cross-parent op run concurrently with me".
	_ = b.global.EnterShared(vlock.ShareReadWrite)
	exitMetrics := b.mx.enterGlobal("global", false, time.Since(start))
	return func() {
		exitMetrics()
		b.global.ExitShared()
	}
}

func (b *Backend) comparer() func(a, bName string) bool {
	if b.opts.CaseInsensitive {
		return func(a, c string) bool { return foldEqual(a, c) }
	}
	return func(a, c string) bool { return a == c }
}

func foldEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// invalidateEnumCache drops the cached enumeration snapshot of dir
// itself, called after any mutation that changes dir's children.
// Cached snapshots of dir's subdirectories are not dropped.
func (b *Backend) invalidateEnumCache(dir upath.UPath) {
	if b.enum == nil {
		return
	}
	b.enumMu.Lock()
	defer b.enumMu.Unlock()
	b.enum.Delete(dir.String())
}
