package vtree

// Dir is a directory node: a name-to-child mapping plus the common base
// fields. Order of the mapping is irrelevant.
type Dir struct {
	base
	children map[string]Node
}

// NewDir creates a detached directory node.
func NewDir(name string) *Dir {
	return &Dir{base: newBase(name), children: make(map[string]Node)}
}

// NewRoot creates the single well-known root directory, whose parent is
// permanently nil.
func NewRoot() *Dir {
	return NewDir("")
}

func (d *Dir) IsDir() bool { return true }

// Attrs synthesises the Directory bit on top of the stored attributes;
// attribute storage never carries the Directory bit itself.
func (d *Dir) Attrs() Attrs { return d.rawAttrs() | directory }

// Len reports the number of direct children. Caller must hold at least a
// shared lock on d.
func (d *Dir) Len() int { return len(d.children) }

// lookupLocked returns the child named name, assuming the caller already
// holds d's lock in a mode compatible with reading d.children.
func (d *Dir) lookupLocked(name string) (Node, bool) {
	n, ok := d.children[name]
	return n, ok
}

// snapshotLocked returns a stable copy of the children map, assuming the
// caller holds d's lock; used by enumeration to buffer results under the
// lock before releasing it.
func (d *Dir) snapshotLocked() map[string]Node {
	out := make(map[string]Node, len(d.children))
	for k, v := range d.children {
		out[k] = v
	}
	return out
}
