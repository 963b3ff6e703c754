package memfs

import (
	"strings"

	"github.com/vfscore/vfscore/lockorch"
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

// isUnderOrEqual reports whether path is base itself or lies beneath
// it (base is an ancestor of path); used to reject moving a directory
// into its own subtree.
func isUnderOrEqual(base, path upath.UPath) bool {
	b, p := base.String(), path.String()
	if b == p {
		return true
	}
	if b == "/" {
		return strings.HasPrefix(p, "/")
	}
	return strings.HasPrefix(p, b+"/")
}

func (b *Backend) move(src, dest upath.UPath, wantDir bool) (err error) {
	if isRoot(src) || isRoot(dest) {
		return vfserr.New(vfserr.Unauthorised, dest.String())
	}
	if wantDir && isUnderOrEqual(src, dest) {
		return vfserr.New(vfserr.IO, dest.String())
	}

	srcParent, _ := src.Parent()
	destParent, _ := dest.Parent()
	cross := distinctParents(src, dest)

	release := b.enterGlobal(cross)
	defer release()

	results, releaseBatch, rerr := b.resolveBatch([]batchTarget{
		{path: src, flags: lockorch.Flags{NodeExclusive: true, KeepParentExclusive: true}},
		{path: destParent, flags: lockorch.Flags{NodeExclusive: true}},
	})
	if rerr != nil {
		return rerr
	}
	defer releaseBatch()

	srcRes, destParentRes := results[0], results[1]

	if srcRes.Node.IsDir() != wantDir {
		if wantDir {
			return vfserr.New(vfserr.NotADirectory, src.String())
		}
		return vfserr.New(vfserr.IsADirectory, src.String())
	}

	destParentDir, ok := destParentRes.Node.(*vtree.Dir)
	if !ok {
		return vfserr.New(vfserr.NotADirectory, dest.String())
	}
	destName := dest.Name()
	if _, exists := vtree.Lookup(destParentDir, destName); exists {
		return vfserr.New(vfserr.AlreadyExists, dest.String())
	}

	vtree.Detach(srcRes.Node)
	if aerr := vtree.Attach(srcRes.Node, destParentDir, destName); aerr != nil {
		return aerr
	}

	b.invalidateEnumCache(srcParent)
	b.invalidateEnumCache(destParent)
	return nil
}

// MoveFile renames/moves the file at src to dest. dest must not already
// exist.
func (b *Backend) MoveFile(src, dest upath.UPath) (err error) {
	defer func() { b.mx.observe("move_file", err) }()
	return b.move(src, dest, false)
}

// MoveDirectory renames/moves the directory at src to dest. Moving src
// into its own subtree fails IO.
func (b *Backend) MoveDirectory(src, dest upath.UPath) (err error) {
	defer func() { b.mx.observe("move_directory", err) }()
	return b.move(src, dest, true)
}

// CopyFile clones the file at src to dest. If dest exists and is
// read-only, it fails Unauthorised; if dest exists and overwrite is
// false, it fails AlreadyExists.
func (b *Backend) CopyFile(src, dest upath.UPath, overwrite bool) (err error) {
	defer func() { b.mx.observe("copy_file", err) }()
	if isRoot(src) || isRoot(dest) {
		return vfserr.New(vfserr.Unauthorised, dest.String())
	}

	destParent, _ := dest.Parent()
	cross := distinctParents(src, dest)

	release := b.enterGlobal(cross)
	defer release()

	results, releaseBatch, rerr := b.resolveBatch([]batchTarget{
		{path: src, flags: lockorch.Flags{ShareMode: vlock.ShareRead}},
		{path: destParent, flags: lockorch.Flags{NodeExclusive: true}},
	})
	if rerr != nil {
		return rerr
	}
	defer releaseBatch()

	srcRes, destParentRes := results[0], results[1]
	if srcRes.Node.IsDir() {
		return vfserr.New(vfserr.IsADirectory, src.String())
	}
	srcFile := srcRes.Node.(*vtree.File)

	destParentDir, ok := destParentRes.Node.(*vtree.Dir)
	if !ok {
		return vfserr.New(vfserr.NotADirectory, dest.String())
	}
	destName := dest.Name()

	if existing, exists := vtree.Lookup(destParentDir, destName); exists {
		if existing.IsDir() {
			return vfserr.New(vfserr.IsADirectory, dest.String())
		}
		existingFile := existing.(*vtree.File)
		existingFile.Lock().EnterExclusive()
		defer existingFile.Lock().ExitExclusive()
		if existingFile.Attrs().Has(vtree.ReadOnly) {
			return vfserr.New(vfserr.Unauthorised, dest.String())
		}
		if !overwrite {
			return vfserr.New(vfserr.AlreadyExists, dest.String())
		}
		existingFile.SetBytes(srcFile.Bytes())
		b.invalidateEnumCache(destParent)
		return nil
	}

	newFile := vtree.NewFile(destName)
	newFile.SetBytes(srcFile.Bytes())
	if aerr := vtree.Attach(newFile, destParentDir, destName); aerr != nil {
		return aerr
	}
	b.invalidateEnumCache(destParent)
	return nil
}

// ReplaceFile atomically substitutes dest with src: dest's prior content
// is preserved at backup (if given), and src is detached and re-attached
// under dest's name. src and dest must both exist as files; src, dest,
// and backup must be pairwise distinct.
func (b *Backend) ReplaceFile(src, dest, backup upath.UPath, ignoreMetadataErrors bool) (err error) {
	defer func() { b.mx.observe("replace_file", err) }()
	if isRoot(src) || isRoot(dest) {
		return vfserr.New(vfserr.Unauthorised, dest.String())
	}
	hasBackup := !backup.IsNull()
	if src.String() == dest.String() {
		return vfserr.New(vfserr.InvalidArgument, dest.String())
	}
	if hasBackup {
		if backup.String() == src.String() || backup.String() == dest.String() {
			return vfserr.New(vfserr.InvalidArgument, backup.String())
		}
	}

	cross := distinctParents(src, dest)
	var backupParent upath.UPath
	if hasBackup {
		backupParent, _ = backup.Parent()
		if distinctParents(src, backup) || distinctParents(dest, backup) {
			cross = true
		}
	}

	release := b.enterGlobal(cross)
	defer release()

	targets := []batchTarget{
		{path: src, flags: lockorch.Flags{NodeExclusive: true, KeepParentExclusive: true}},
		{path: dest, flags: lockorch.Flags{NodeExclusive: true, KeepParentExclusive: true}},
	}
	if hasBackup {
		targets = append(targets, batchTarget{path: backupParent, flags: lockorch.Flags{NodeExclusive: true}})
	}

	results, releaseBatch, rerr := b.resolveBatch(targets)
	if rerr != nil {
		return rerr
	}
	defer releaseBatch()

	srcRes, destRes := results[0], results[1]
	if srcRes.Node.IsDir() {
		return vfserr.New(vfserr.IsADirectory, src.String())
	}
	if destRes.Node.IsDir() {
		return vfserr.New(vfserr.IsADirectory, dest.String())
	}

	destParentDir := destRes.Parent
	destName := dest.Name()
	destNode := destRes.Node

	if hasBackup {
		backupParentDir, ok := results[2].Node.(*vtree.Dir)
		if !ok {
			return vfserr.New(vfserr.NotADirectory, backup.String())
		}
		backupName := backup.Name()
		if existingBackup, exists := vtree.Lookup(backupParentDir, backupName); exists {
			vtree.Detach(existingBackup)
			vtree.Dispose(existingBackup)
		}
		vtree.Detach(destNode)
		if aerr := vtree.Attach(destNode, backupParentDir, backupName); aerr != nil {
			return aerr
		}
		b.invalidateEnumCache(backupParent)
	} else {
		vtree.Detach(destNode)
		vtree.Dispose(destNode)
	}

	srcNode := srcRes.Node
	vtree.Detach(srcNode)
	if aerr := vtree.Attach(srcNode, destParentDir, destName); aerr != nil {
		return aerr
	}

	srcParentPath, _ := src.Parent()
	destParentPath, _ := dest.Parent()
	b.invalidateEnumCache(srcParentPath)
	b.invalidateEnumCache(destParentPath)
	// ignoreMetadataErrors has no effect in the in-memory backend: there
	// is no separate metadata store whose update could fail independently
	// of the node swap itself.
	_ = ignoreMetadataErrors
	return nil
}
