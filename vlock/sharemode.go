package vlock

// ShareMode is the compatibility flag set recorded at open time that
// restricts subsequent concurrent opens.
type ShareMode int

const (
	// ShareNone: the holder requires exclusivity; memfs.OpenFile takes
	// the node lock exclusively for it. Recorded as a shared mode, it
	// rejects later ShareRead/ShareWrite requests, while a ShareNone
	// request (an empty bit set) is compatible with any recorded mode.
	ShareNone ShareMode = 0
	// ShareRead: other readers with a compatible mode may join.
	ShareRead ShareMode = 1 << iota
	// ShareWrite: other writers with a compatible mode may join.
	ShareWrite
	// ShareReadWrite is ShareRead|ShareWrite.
	ShareReadWrite = ShareRead | ShareWrite
)

func (m ShareMode) String() string {
	switch m {
	case ShareNone:
		return "None"
	case ShareRead:
		return "Read"
	case ShareWrite:
		return "Write"
	case ShareReadWrite:
		return "ReadWrite"
	default:
		return "Unknown"
	}
}

// compatible implements the exact asymmetric subset rule: the existing
// mode must be a superset of the requested mode, i.e. requested bits are
// all present in current (requested & current == requested). A first
// holder that opened as ShareRead rejects a later ShareReadWrite request.
func compatible(requested, current ShareMode) bool {
	return requested&current == requested
}
