package lockorch

import (
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

// Orchestrator resolves UPaths against a node tree rooted at Root,
// acquiring locks along the way. It holds no lock of its own; the
// filesystem global lock is managed by the operation layer, which must
// take it (shared for same-parent operations, exclusive for cross-parent
// ones) before calling Resolve and release it only after every Result
// from the batch has been released.
type Orchestrator struct {
	Root *vtree.Dir
}

// New returns an Orchestrator over root.
func New(root *vtree.Dir) *Orchestrator {
	return &Orchestrator{Root: root}
}

// entry records one lock this Resolve call acquired, for rollback.
type entry struct {
	node      vtree.Node
	exclusive bool
}

// Resolve walks path from the root, acquiring locks per flags, and
// returns the terminal Result. already holds Results from earlier targets
// in the same batch operation (already sorted and resolved by the
// caller); any node already locked by one of them is not re-locked here.
// On any failure, every lock Resolve itself acquired during this call is
// released, in reverse order, before the error is returned.
func (o *Orchestrator) Resolve(path upath.UPath, flags Flags, already []*Result) (*Result, error) {
	held := heldSet(already)

	var acquired []entry
	rollback := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			if acquired[i].exclusive {
				acquired[i].node.Lock().ExitExclusive()
			} else {
				acquired[i].node.Lock().ExitShared()
			}
		}
	}

	segs := path.Segments()

	// Root fast path: resolving "/" locks only the root.
	if len(segs) == 0 {
		if !held[o.Root] {
			if err := acquireTerminal(o.Root, flags, vlock.ShareRead); err != nil {
				return nil, err
			}
			acquired = append(acquired, entry{o.Root, flags.NodeExclusive})
		}
		return &Result{
			Node: o.Root, Parent: nil, Name: "",
			Flags: flags, nodeHeldByUs: !held[o.Root],
		}, nil
	}

	var cur vtree.Node = o.Root
	curLockedByUs := false

	lockParent := func(n vtree.Node, immediateOfTerminal bool) bool {
		if held[n] {
			return false
		}
		exclusive := flags.CreatePathIfNotExist || (immediateOfTerminal && flags.KeepParentExclusive)
		if exclusive {
			n.Lock().EnterExclusive()
		} else {
			n.Lock().EnterShared(vlock.ShareRead)
		}
		acquired = append(acquired, entry{n, exclusive})
		return true
	}

	curLockedByUs = lockParent(cur, len(segs) == 1)

	for i, seg := range segs {
		isLast := i == len(segs)-1

		dir, ok := cur.(*vtree.Dir)
		if !ok {
			rollback()
			return nil, vfserr.New(intermediateFileKind(flags), path.String())
		}

		child, exists := vtree.Lookup(dir, seg)
		if !exists {
			if !isLast && flags.CreatePathIfNotExist {
				if !curLockedByUs {
					rollback()
					return nil, vfserr.Newf(vfserr.IO, path.String(), "parent not held exclusively for path creation")
				}
				newDir := vtree.NewDir(seg)
				if err := vtree.Attach(newDir, dir, seg); err != nil {
					rollback()
					return nil, err
				}
				child = newDir
			} else {
				rollback()
				if isLast {
					return nil, vfserr.New(vfserr.FileNotFound, path.String())
				}
				return nil, vfserr.New(vfserr.DirectoryNotFound, path.String())
			}
		} else if !isLast {
			if _, ok := child.(*vtree.Dir); !ok {
				rollback()
				return nil, vfserr.New(intermediateFileKind(flags), path.String())
			}
		}

		if isLast {
			childHeldByUs := false
			if !held[child] {
				if err := acquireTerminal(child, flags, flags.ShareMode); err != nil {
					rollback()
					return nil, err
				}
				acquired = append(acquired, entry{child, flags.NodeExclusive})
				childHeldByUs = true
			}

			parentHeldByUs := false
			if curLockedByUs {
				if flags.keepsParent() {
					parentHeldByUs = true
					// Remove dir from the rollback list: ownership
					// transfers to the Result, which the caller now
					// releases. childHeldByUs may have appended an entry
					// after dir's, so drop by identity, not position.
					acquired = dropEntry(acquired, dir)
				} else {
					if flags.CreatePathIfNotExist {
						dir.Lock().ExitExclusive()
					} else {
						dir.Lock().ExitShared()
					}
					acquired = dropEntry(acquired, dir)
				}
			}

			return &Result{
				Node: child, Parent: dir, Name: seg, Flags: flags,
				parentHeldByUs: parentHeldByUs,
				nodeHeldByUs:   childHeldByUs,
			}, nil
		}

		// Intermediate segment: lock the child, then release the old
		// parent immediately.
		childLockedByUs := lockParent(child, i+2 == len(segs))
		if curLockedByUs {
			if flags.CreatePathIfNotExist {
				cur.Lock().ExitExclusive()
			} else {
				cur.Lock().ExitShared()
			}
			// cur's entry was the second-to-last appended (child's may
			// have just been appended); find and drop it precisely.
			acquired = dropEntry(acquired, cur)
		}
		cur = child
		curLockedByUs = childLockedByUs
	}

	// Unreachable: the loop always returns on isLast.
	rollback()
	return nil, vfserr.New(vfserr.IO, path.String())
}

// intermediateFileKind picks the error Kind for an intermediate segment
// that names an existing file. Most callers want NotADirectory; a few
// (create_directory) treat any file-where-directory-expected segment as
// a flat IO failure, matching the Kind their own terminal-segment check
// already returns for the same condition.
func intermediateFileKind(flags Flags) vfserr.Kind {
	if flags.IntermediateFileIsIO {
		return vfserr.IO
	}
	return vfserr.NotADirectory
}

func acquireTerminal(n vtree.Node, flags Flags, shareMode vlock.ShareMode) error {
	if flags.NodeExclusive {
		n.Lock().EnterExclusive()
		return nil
	}
	return n.Lock().EnterShared(shareMode)
}

func heldSet(already []*Result) map[vtree.Node]bool {
	held := make(map[vtree.Node]bool, len(already)*2)
	for _, r := range already {
		held[r.Node] = true
		if r.ParentKept() {
			held[r.Parent] = true
		}
	}
	return held
}

// dropEntry removes the (only) entry for node from acquired, preserving
// the relative order of the rest.
func dropEntry(acquired []entry, node vtree.Node) []entry {
	for i, e := range acquired {
		if e.node == node {
			return append(acquired[:i], acquired[i+1:]...)
		}
	}
	return acquired
}
