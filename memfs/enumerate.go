package memfs

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/vfscore/vfscore/lockorch"
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vpattern"
	"github.com/vfscore/vfscore/vtree"
)

// Recursion selects whether EnumeratePaths descends into subdirectories.
type Recursion int

const (
	TopDirectoryOnly Recursion = iota
	AllDirectories
)

// SearchTarget restricts EnumeratePaths' results by node kind.
type SearchTarget int

const (
	Files SearchTarget = iota
	Directories
	Both
)

// EnumeratePaths returns a channel yielding every path under anchor
// matching pattern: a lazy sequence, buffering each directory's children
// snapshot under that directory's lock and yielding matches outside it,
// so no lock is ever held across the channel-send suspension point.
// Concurrent subdirectory snapshots (recursion) are bounded by a
// semaphore.Weighted and driven by an errgroup.Group, the way the
// teacher's directory-cache refresh fans a bounded number of concurrent
// remote listings. A subdirectory deleted before it's visited is silently
// skipped; only the initial anchor not being a directory is a hard error.
// The caller should drain the channel or cancel ctx to abandon the walk.
func (b *Backend) EnumeratePaths(ctx context.Context, anchor upath.UPath, pattern string, recursion Recursion, target SearchTarget) (<-chan upath.UPath, error) {
	matcher, err := vpattern.Compile(anchor, pattern, b.opts.CaseInsensitive)
	if err != nil {
		return nil, err
	}

	root, err := b.snapshotDir(matcher.Anchor)
	if err != nil {
		return nil, err
	}

	out := make(chan upath.UPath)
	go func() {
		defer close(out)
		g, gctx := errgroup.WithContext(ctx)
		sem := semaphore.NewWeighted(b.opts.concurrency())
		b.walkDir(gctx, g, sem, matcher.Anchor, root, matcher, recursion, target, out)
		_ = g.Wait()
	}()
	return out, nil
}

func (b *Backend) walkDir(
	ctx context.Context,
	g *errgroup.Group,
	sem *semaphore.Weighted,
	dirPath upath.UPath,
	children map[string]vtree.Node,
	matcher vpattern.Matcher,
	recursion Recursion,
	target SearchTarget,
	out chan<- upath.UPath,
) {
	for name, node := range children {
		seg, err := upath.New(name)
		if err != nil {
			continue
		}
		childPath, err := upath.Combine(dirPath, seg)
		if err != nil {
			continue
		}
		isDir := node.IsDir()

		if matcher.Match(name) && matchesTarget(isDir, target) {
			select {
			case out <- childPath:
			case <-ctx.Done():
				return
			}
		}

		if isDir && recursion == AllDirectories {
			childPath := childPath
			g.Go(func() error {
				if aerr := sem.Acquire(ctx, 1); aerr != nil {
					return nil
				}
				defer sem.Release(1)
				grandchildren, serr := b.snapshotDir(childPath)
				if serr != nil {
					// Deleted or turned into a file between listing and
					// visiting: skip silently.
					return nil
				}
				b.walkDir(ctx, g, sem, childPath, grandchildren, matcher, recursion, target, out)
				return nil
			})
		}
	}
}

func matchesTarget(isDir bool, target SearchTarget) bool {
	switch target {
	case Files:
		return !isDir
	case Directories:
		return isDir
	default:
		return true
	}
}

// snapshotDir resolves path, takes a stable snapshot of its children
// under its lock, and releases the lock before returning: the same
// "buffer under lock, yield outside lock" rule applied one level up from
// the individual entries. Snapshots are cached for Options.EnumerationCacheTTL
// when enabled (github.com/patrickmn/go-cache), mirroring the teacher's
// vfscommon.Options.DirCacheTime idea.
func (b *Backend) snapshotDir(path upath.UPath) (map[string]vtree.Node, error) {
	if b.enum != nil {
		if v, ok := b.enum.Get(path.String()); ok {
			return v.(map[string]vtree.Node), nil
		}
	}

	release := b.enterGlobal(false)
	defer release()

	res, err := b.orch.Resolve(path, lockorch.Flags{ShareMode: vlock.ShareRead}, nil)
	if err != nil {
		return nil, err
	}
	defer res.Release()

	dir, ok := res.Node.(*vtree.Dir)
	if !ok {
		return nil, vfserr.New(vfserr.NotADirectory, path.String())
	}
	snap := vtree.ChildrenIter(dir)

	if b.enum != nil {
		b.enum.SetDefault(path.String(), snap)
	}
	return snap, nil
}
