package vtree

import "fmt"

// Attach adds child to parent's children map under name and sets child's
// parent back-reference. It rejects re-attaching a node that still has a
// parent; the caller must Detach first. The caller must already hold
// parent exclusively; every tree mutation requires the relevant node(s)
// to be already locked by the caller in the correct mode, and this
// package trusts that rather than re-checking it.
func Attach(child Node, parent *Dir, name string) error {
	if child.Parent() != nil {
		return fmt.Errorf("vtree: Attach: child %q already attached", name)
	}
	parent.children[name] = child
	child.setParent(parent)
	child.setName(name)
	return nil
}

// Detach removes child from its parent's children map and clears its
// parent back-reference. No-op if child is already detached.
func Detach(child Node) {
	p := child.Parent()
	if p == nil {
		return
	}
	for k, v := range p.children {
		if v == child {
			delete(p.children, k)
			break
		}
	}
	child.setParent(nil)
}

// Lookup returns the child of parent named name.
func Lookup(parent *Dir, name string) (Node, bool) {
	return parent.lookupLocked(name)
}

// Dispose marks node as permanently detached and unusable. The caller
// must hold node exclusively and must already have Detach-ed it.
func Dispose(node Node) { node.dispose() }

// IsDisposed reports whether Dispose has been called on node.
func IsDisposed(node Node) bool { return node.disposed() }

// ChildrenIter returns a stable snapshot of parent's children, safe to
// range over after parent's lock has been released: the snapshot must be
// taken under the lock, then iterated outside it.
func ChildrenIter(parent *Dir) map[string]Node {
	return parent.snapshotLocked()
}

// CollectDescendantsExclusive acquires an exclusive lock on every
// descendant of node in pre-order and appends each to list, in
// traversal order. On success the caller owns every acquired lock and
// must release them in reverse order. If acquiring any lock along the
// way fails, every lock taken during this call is released (in reverse
// order) before the error is returned, and *list is left exactly as it
// was on entry.
func CollectDescendantsExclusive(node Node, list *[]Node) error {
	collected, err := collectExclusive(node, nil)
	if err != nil {
		for i := len(collected) - 1; i >= 0; i-- {
			collected[i].Lock().ExitExclusive()
		}
		return err
	}
	*list = append(*list, collected...)
	return nil
}

// collectExclusive is the recursive worker: it accumulates into acc and
// returns the full accumulated slice plus an error. On error the caller
// is responsible for unlocking every entry in the returned slice.
func collectExclusive(node Node, acc []Node) ([]Node, error) {
	dir, ok := node.(*Dir)
	if !ok {
		return acc, nil
	}
	for _, child := range ChildrenIter(dir) {
		child.Lock().EnterExclusive()
		acc = append(acc, child)
		var err error
		acc, err = collectExclusive(child, acc)
		if err != nil {
			return acc, err
		}
	}
	return acc, nil
}
