package lockorch

import "github.com/vfscore/vfscore/vtree"

// Result is the GLOSSARY's "node result": the tuple the orchestrator
// hands back to the operation layer for one resolved target.
type Result struct {
	// Node is the resolved node, locked per Flags.NodeExclusive/ShareMode.
	Node vtree.Node
	// Parent is the node's containing directory (nil only for the root).
	Parent *vtree.Dir
	// Name is the node's leaf name relative to Parent ("" for the root).
	Name string
	// Flags are the flags this target was resolved with.
	Flags Flags

	parentHeldByUs bool // true if Parent's lock was acquired by this Resolve call and is still ours
	nodeHeldByUs   bool // true if Node's lock was acquired by this Resolve call (false if reused from `already`)
}

// ParentKept reports whether Parent is still locked on behalf of the
// caller (because Flags.KeepParentExclusive/KeepParentShared was set).
func (r *Result) ParentKept() bool { return r.Flags.keepsParent() }

// ReleaseNode releases the terminal node's lock, if this Resolve call is
// the one that acquired it (a node reused from an `already` batch is
// released once, by whichever Result first acquired it).
func (r *Result) ReleaseNode() {
	if !r.nodeHeldByUs {
		return
	}
	if r.Flags.NodeExclusive {
		r.Node.Lock().ExitExclusive()
	} else {
		r.Node.Lock().ExitShared()
	}
	r.nodeHeldByUs = false
}

// ReleaseParent releases Parent's kept lock, if any, and if this Resolve
// call is the one holding it.
func (r *Result) ReleaseParent() {
	if r.Parent == nil || !r.parentHeldByUs {
		return
	}
	if r.Flags.KeepParentExclusive {
		r.Parent.Lock().ExitExclusive()
	} else if r.Flags.KeepParentShared {
		r.Parent.Lock().ExitShared()
	}
	r.parentHeldByUs = false
}

// Release releases both the node and (if kept) the parent lock. Callers
// should release every Result obtained from a batch Resolve call in
// reverse order of the sorted input paths, which ReleaseAll does for a
// whole batch.
func (r *Result) Release() {
	r.ReleaseNode()
	r.ReleaseParent()
}

// ReleaseAll releases a batch of Results in reverse order.
func ReleaseAll(results []*Result) {
	for i := len(results) - 1; i >= 0; i-- {
		results[i].Release()
	}
}
