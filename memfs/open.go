package memfs

import (
	"github.com/vfscore/vfscore/lockorch"
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vhandle"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

// OpenMode is the caller's requested open disposition (resolved against
// the existing-or-absent effective mode table below).
type OpenMode int

const (
	Create OpenMode = iota
	CreateNew
	Open
	OpenOrCreate
	Truncate
	Append
)

// FileAccess is the requested read/write access.
type FileAccess int

const (
	AccessRead FileAccess = 1 << iota
	AccessWrite
	AccessReadWrite = AccessRead | AccessWrite
)

// OpenFile resolves mode/access against the existing-or-absent state of
// path via the effective-mode table and returns a stream handle bound to
// the resulting node. The node's lock is released exactly once, on
// handle close.
func (b *Backend) OpenFile(path upath.UPath, mode OpenMode, access FileAccess, share vlock.ShareMode) (h vhandle.Handle, err error) {
	defer func() { b.mx.observe("open_file", err) }()

	if mode == Append && access&AccessRead != 0 {
		return nil, vfserr.New(vfserr.InvalidArgument, path.String())
	}
	if isRoot(path) {
		return nil, vfserr.New(vfserr.Unauthorised, path.String())
	}

	release := b.enterGlobal(false)
	defer release()

	parentPath, _ := path.Parent()
	name := path.Name()

	flags := lockorch.Flags{
		CreatePathIfNotExist: true,
		KeepParentExclusive:  true,
	}
	parentRes, rerr := b.orch.Resolve(parentPath, flags, nil)
	if rerr != nil {
		return nil, rerr
	}
	defer parentRes.Release()

	parentDir, ok := parentRes.Node.(*vtree.Dir)
	if !ok {
		return nil, vfserr.New(vfserr.NotADirectory, path.String())
	}

	existing, exists := vtree.Lookup(parentDir, name)

	var truncate, create bool
	switch mode {
	case Create:
		if exists {
			truncate = true
		} else {
			create = true
		}
	case CreateNew:
		if exists {
			return nil, vfserr.New(vfserr.AlreadyExists, path.String())
		}
		create = true
	case Open:
		if !exists {
			return nil, vfserr.New(vfserr.FileNotFound, path.String())
		}
	case OpenOrCreate:
		if !exists {
			create = true
		}
	case Truncate:
		if !exists {
			return nil, vfserr.New(vfserr.FileNotFound, path.String())
		}
		truncate = true
	case Append:
		if !exists {
			create = true
		}
	default:
		return nil, vfserr.New(vfserr.InvalidArgument, path.String())
	}

	var file *vtree.File
	if create {
		file = vtree.NewFile(name)
		if aerr := vtree.Attach(file, parentDir, name); aerr != nil {
			return nil, aerr
		}
	} else {
		if existing.IsDir() {
			return nil, vfserr.New(vfserr.IsADirectory, path.String())
		}
		file = existing.(*vtree.File)
		if access&AccessWrite != 0 && file.Attrs().Has(vtree.ReadOnly) {
			return nil, vfserr.New(vfserr.Unauthorised, path.String())
		}
	}

	nodeExclusive := share == vlock.ShareNone
	if nodeExclusive {
		file.Lock().EnterExclusive()
	} else {
		if lerr := file.Lock().EnterShared(share); lerr != nil {
			if create {
				vtree.Detach(file)
				vtree.Dispose(file)
			}
			return nil, lerr
		}
	}

	if truncate {
		file.Truncate(0)
	}

	var handle vhandle.Handle
	switch {
	case access&AccessWrite != 0:
		handle = vhandle.NewWriteHandle(file, nodeExclusive, mode == Append)
	default:
		handle = vhandle.NewReadHandle(file, nodeExclusive)
	}

	b.invalidateEnumCache(parentPath)
	return handle, nil
}
