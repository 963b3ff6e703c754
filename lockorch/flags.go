// Package lockorch implements the lock orchestrator, the algorithmic
// heart of the system: given a target path and per-target flags, it
// walks the node tree acquiring locks in a deadlock-free order and
// hands the operation layer a Result (the resolved node, its parent,
// its name, the flags).
package lockorch

import "github.com/vfscore/vfscore/vlock"

// Flags are the per-target traversal flags.
type Flags struct {
	// NodeExclusive: the final node is locked exclusively; otherwise
	// shared with ShareMode.
	NodeExclusive bool
	// ShareMode is the share mode used for a shared terminal-node lock
	// (ignored when NodeExclusive is set). When the terminal is the root,
	// a shared lock is always taken with ShareRead.
	ShareMode vlock.ShareMode
	// KeepParentExclusive / KeepParentShared: the immediate parent of the
	// terminal segment stays locked (in the given mode) after traversal,
	// until the caller explicitly releases it via Result.ReleaseParent.
	KeepParentExclusive bool
	KeepParentShared    bool
	// CreatePathIfNotExist: missing intermediate directories are created
	// along the way. It does not create the terminal node itself; a
	// missing terminal segment is still reported as FileNotFound, with
	// every lock taken during the walk released and no Result returned.
	// Directories created before that point stay attached.
	CreatePathIfNotExist bool
	// IntermediateFileIsIO: an intermediate path segment that names an
	// existing file is reported as IO rather than NotADirectory.
	IntermediateFileIsIO bool
}

func (f Flags) keepsParent() bool { return f.KeepParentExclusive || f.KeepParentShared }
