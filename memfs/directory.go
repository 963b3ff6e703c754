package memfs

import (
	"github.com/vfscore/vfscore/lockorch"
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

// isRoot reports whether path denotes the filesystem root, the one path
// every create/delete/move endpoint rejects with Unauthorised.
func isRoot(path upath.UPath) bool {
	return len(path.Segments()) == 0
}

// CreateDirectory creates path and any missing intermediate directories.
// It is a no-op if path already denotes a directory, and fails IO if any
// segment, terminal or intermediate, names an existing file.
func (b *Backend) CreateDirectory(path upath.UPath) (err error) {
	defer func() { b.mx.observe("create_directory", err) }()
	if isRoot(path) {
		return vfserr.New(vfserr.Unauthorised, path.String())
	}
	parentPath, _ := path.Parent()

	release := b.enterGlobal(false)
	defer release()

	// Resolving path itself creates every missing directory above it; a
	// missing terminal segment comes back FileNotFound and is created
	// below, under its now-existing parent.
	if pre, perr := b.orch.Resolve(path, lockorch.Flags{
		NodeExclusive:        true,
		CreatePathIfNotExist: true,
		IntermediateFileIsIO: true,
	}, nil); perr == nil {
		pre.Release()
	} else if !vfserr.Is(perr, vfserr.FileNotFound) {
		return perr
	}

	res, rerr := b.orch.Resolve(parentPath, lockorch.Flags{
		NodeExclusive:        true,
		CreatePathIfNotExist: true,
		IntermediateFileIsIO: true,
	}, nil)
	if rerr != nil {
		return rerr
	}
	defer res.Release()

	parentDir, ok := res.Node.(*vtree.Dir)
	if !ok {
		return vfserr.New(vfserr.IO, path.String())
	}

	name := path.Name()
	if existing, exists := vtree.Lookup(parentDir, name); exists {
		if existing.IsDir() {
			return nil
		}
		return vfserr.New(vfserr.IO, path.String())
	}

	newDir := vtree.NewDir(name)
	if aerr := vtree.Attach(newDir, parentDir, name); aerr != nil {
		return aerr
	}
	b.invalidateEnumCache(parentPath)
	return nil
}

// DirectoryExists reports whether path resolves to a directory node. A
// null or missing path yields false; the root always yields true.
func (b *Backend) DirectoryExists(path upath.UPath) bool {
	if path.IsNull() {
		return false
	}
	release := b.enterGlobal(false)
	defer release()

	res, err := b.orch.Resolve(path, lockorch.Flags{ShareMode: vlock.ShareRead}, nil)
	if err != nil {
		return false
	}
	defer res.Release()
	return res.Node.IsDir()
}

// FileExists reports whether path resolves to a file node. A null or
// missing path yields false.
func (b *Backend) FileExists(path upath.UPath) bool {
	if path.IsNull() {
		return false
	}
	release := b.enterGlobal(false)
	defer release()

	res, err := b.orch.Resolve(path, lockorch.Flags{ShareMode: vlock.ShareRead}, nil)
	if err != nil {
		return false
	}
	defer res.Release()
	return !res.Node.IsDir()
}

// DeleteDirectory removes path. If recursive is false and the directory
// has children, it fails DirectoryNotEmpty. Otherwise every descendant is
// locked exclusively first; if any is read-only, the whole call fails
// Unauthorised and nothing is detached.
func (b *Backend) DeleteDirectory(path upath.UPath, recursive bool) (err error) {
	defer func() { b.mx.observe("delete_directory", err) }()
	if isRoot(path) {
		return vfserr.New(vfserr.Unauthorised, path.String())
	}

	release := b.enterGlobal(false)
	defer release()

	res, rerr := b.orch.Resolve(path, lockorch.Flags{
		NodeExclusive:       true,
		KeepParentExclusive: true,
	}, nil)
	if rerr != nil {
		return rerr
	}
	defer res.Release()

	dir, ok := res.Node.(*vtree.Dir)
	if !ok {
		return vfserr.New(vfserr.NotADirectory, path.String())
	}

	if dir.Len() > 0 && !recursive {
		return vfserr.New(vfserr.DirectoryNotEmpty, path.String())
	}

	var descendants []vtree.Node
	if derr := vtree.CollectDescendantsExclusive(dir, &descendants); derr != nil {
		return derr
	}
	for _, n := range descendants {
		if n.Attrs().Has(vtree.ReadOnly) {
			for i := len(descendants) - 1; i >= 0; i-- {
				descendants[i].Lock().ExitExclusive()
			}
			return vfserr.New(vfserr.Unauthorised, path.String())
		}
	}

	for i := len(descendants) - 1; i >= 0; i-- {
		vtree.Detach(descendants[i])
		vtree.Dispose(descendants[i])
		descendants[i].Lock().ExitExclusive()
	}

	vtree.Detach(dir)
	vtree.Dispose(dir)
	b.invalidateEnumCache(path)
	if parentPath, ok := path.Parent(); ok {
		b.invalidateEnumCache(parentPath)
	}
	return nil
}

// DeleteFile removes the file at path.
func (b *Backend) DeleteFile(path upath.UPath) (err error) {
	defer func() { b.mx.observe("delete_file", err) }()
	if isRoot(path) {
		return vfserr.New(vfserr.Unauthorised, path.String())
	}

	release := b.enterGlobal(false)
	defer release()

	res, rerr := b.orch.Resolve(path, lockorch.Flags{
		NodeExclusive:       true,
		KeepParentExclusive: true,
	}, nil)
	if rerr != nil {
		return rerr
	}
	defer res.Release()

	if res.Node.IsDir() {
		return vfserr.New(vfserr.IsADirectory, path.String())
	}

	vtree.Detach(res.Node)
	vtree.Dispose(res.Node)
	if parentPath, ok := path.Parent(); ok {
		b.invalidateEnumCache(parentPath)
	}
	return nil
}
