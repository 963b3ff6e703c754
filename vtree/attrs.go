package vtree

// Attrs holds the persisted attribute bits of a node. Attribute storage
// never carries the Normal or Directory bits; those are synthesised on
// read by Node.Attrs().
type Attrs uint32

const (
	ReadOnly Attrs = 1 << iota
	Hidden
	System
	Archive

	// normal and directory are synthesised, never stored; see
	// Node.Attrs.
	normal    Attrs = 1 << 30
	directory Attrs = 1 << 31
)

// Has reports whether a is set in the receiver.
func (a Attrs) Has(flag Attrs) bool { return a&flag != 0 }

// Set returns a with flag set (or cleared, when set is false).
func (a Attrs) Set(flag Attrs, set bool) Attrs {
	if set {
		return a | flag
	}
	return a &^ flag
}
