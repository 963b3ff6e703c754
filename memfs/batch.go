package memfs

import (
	"sort"

	"github.com/vfscore/vfscore/lockorch"
	"github.com/vfscore/vfscore/upath"
)

// batchTarget is one path to resolve as part of a multi-target operation.
type batchTarget struct {
	path  upath.UPath
	flags lockorch.Flags
}

// resolveBatch resolves every target in path-lexicographic order (the
// orchestrator's ordering contract, the caller's responsibility to
// uphold), threading each Resolve's growing `already` set so later
// targets skip re-locking nodes an earlier target in the same batch
// already holds. On success it
// returns one *lockorch.Result per input target, in the same order as
// targets, plus a release func that releases everything acquired in
// reverse acquisition order. On failure every partial acquisition is
// rolled back and release is a no-op.
func (b *Backend) resolveBatch(targets []batchTarget) (results []*lockorch.Result, release func(), err error) {
	order := make([]int, len(targets))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return targets[order[i]].path.String() < targets[order[j]].path.String()
	})

	results = make([]*lockorch.Result, len(targets))
	var acquired []*lockorch.Result
	for _, idx := range order {
		t := targets[idx]
		res, rerr := b.orch.Resolve(t.path, t.flags, acquired)
		if rerr != nil {
			lockorch.ReleaseAll(acquired)
			return nil, func() {}, rerr
		}
		acquired = append(acquired, res)
		results[idx] = res
	}
	return results, func() { lockorch.ReleaseAll(acquired) }, nil
}

// distinctParents reports whether a and b have different parent
// directories (by canonical path string), the condition under which the
// orchestrator requires promoting the global lock to exclusive.
func distinctParents(a, b upath.UPath) bool {
	pa, aok := a.Parent()
	pb, bok := b.Parent()
	if aok != bok {
		return true
	}
	if !aok {
		return false
	}
	return pa.String() != pb.String()
}
