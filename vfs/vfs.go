// Package vfs is the porcelain over memfs.Backend: a friendlier,
// Go-idiomatic call surface (Stat, StatParent, os.O_*-flag OpenFile,
// Mkdir/MkdirAll, Rename, ReadFile/WriteFile) the way the teacher's own
// vfs.VFS type sits over an fs.Fs, introducing no new semantics of its
// own, only convenience wrappers over memfs's plumbing.
package vfs

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vfscore/vfscore/memfs"
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vhandle"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

// VFS wraps a memfs.Backend with a friendlier call surface.
type VFS struct {
	backend *memfs.Backend
}

// New mounts a fresh, empty in-memory filesystem.
func New(opts memfs.Options, reg prometheus.Registerer) *VFS {
	return &VFS{backend: memfs.New(opts, reg)}
}

// Backend returns the underlying memfs.Backend, for callers that need the
// full Backend interface surface directly.
func (v *VFS) Backend() *memfs.Backend { return v.backend }

// Root returns the filesystem's root directory node.
func (v *VFS) Root() *vtree.Dir { return v.backend.Root() }

// Stat parses and resolves path, returning its attributes, size (0 for
// directories), and the three timestamps.
func (v *VFS) Stat(rawPath string) (Info, error) {
	path, err := upath.New(rawPath)
	if err != nil {
		return Info{}, err
	}
	attrs, err := v.backend.GetAttributes(path)
	if err != nil {
		return Info{}, err
	}
	isDir := v.backend.DirectoryExists(path)
	var size int64
	if !isDir {
		size, _ = v.backend.GetFileLength(path)
	}
	return Info{
		Path: path, Attrs: attrs, IsDirFlag: isDir, Size: size,
		Created:  v.backend.GetCreationTime(path),
		Accessed: v.backend.GetLastAccessTime(path),
		Modified: v.backend.GetLastWriteTime(path),
	}, nil
}

// StatParent resolves path's parent directory, returning it plus path's
// leaf name. A parent that is itself a file surfaces NotADirectory (which
// errors.Is does not match against os.ErrExist); a missing parent
// surfaces DirectoryNotFound.
func (v *VFS) StatParent(rawPath string) (*vtree.Dir, string, error) {
	path, err := upath.New(rawPath)
	if err != nil {
		return nil, "", err
	}
	parentPath, ok := path.Parent()
	if !ok {
		return nil, "", vfserr.New(vfserr.InvalidArgument, rawPath)
	}
	if !v.backend.DirectoryExists(parentPath) {
		if v.backend.FileExists(parentPath) {
			return nil, "", vfserr.New(vfserr.NotADirectory, parentPath.String())
		}
		return nil, "", vfserr.New(vfserr.DirectoryNotFound, parentPath.String())
	}
	dir, ok := lookupDir(v.backend.Root(), parentPath)
	if !ok {
		return nil, "", vfserr.New(vfserr.DirectoryNotFound, parentPath.String())
	}
	return dir, path.Name(), nil
}

func lookupDir(root *vtree.Dir, path upath.UPath) (*vtree.Dir, bool) {
	cur := root
	for _, seg := range path.Segments() {
		child, ok := vtree.Lookup(cur, seg)
		if !ok {
			return nil, false
		}
		d, ok := child.(*vtree.Dir)
		if !ok {
			return nil, false
		}
		cur = d
	}
	return cur, true
}

// flagsToModeAccess translates os.O_* flags into memfs's OpenMode/
// FileAccess pair, the way the teacher's vfs.OpenFile maps os.O_RDONLY /
// os.O_WRONLY / os.O_RDWR plus O_CREATE/O_EXCL/O_TRUNC/O_APPEND onto its
// own internal CreateInfo.
func flagsToModeAccess(flag int) (memfs.OpenMode, memfs.FileAccess) {
	var access memfs.FileAccess
	switch {
	case flag&os.O_RDWR != 0:
		access = memfs.AccessReadWrite
	case flag&os.O_WRONLY != 0:
		access = memfs.AccessWrite
	default:
		access = memfs.AccessRead
	}

	var mode memfs.OpenMode
	switch {
	case flag&os.O_APPEND != 0:
		mode = memfs.Append
	case flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		mode = memfs.CreateNew
	case flag&os.O_TRUNC != 0 && flag&os.O_CREATE != 0:
		mode = memfs.Create
	case flag&os.O_TRUNC != 0:
		mode = memfs.Truncate
	case flag&os.O_CREATE != 0:
		mode = memfs.OpenOrCreate
	default:
		mode = memfs.Open
	}
	return mode, access
}

// OpenFile opens path using the same os.O_* flags as os.OpenFile.
func (v *VFS) OpenFile(rawPath string, flag int, share vlock.ShareMode) (vhandle.Handle, error) {
	path, err := upath.New(rawPath)
	if err != nil {
		return nil, err
	}
	mode, access := flagsToModeAccess(flag)
	return v.backend.OpenFile(path, mode, access, share)
}

// Mkdir creates path, failing if any intermediate segment is missing.
func (v *VFS) Mkdir(rawPath string) error {
	path, err := upath.New(rawPath)
	if err != nil {
		return err
	}
	parentPath, ok := path.Parent()
	if ok && !v.backend.DirectoryExists(parentPath) {
		return vfserr.New(vfserr.DirectoryNotFound, parentPath.String())
	}
	return v.backend.CreateDirectory(path)
}

// MkdirAll creates path and every missing intermediate directory.
func (v *VFS) MkdirAll(rawPath string) error {
	path, err := upath.New(rawPath)
	if err != nil {
		return err
	}
	return v.backend.CreateDirectory(path)
}

// Rename moves oldPath to newPath, dispatching to MoveFile or
// MoveDirectory based on oldPath's current type.
func (v *VFS) Rename(oldPath, newPath string) error {
	src, err := upath.New(oldPath)
	if err != nil {
		return err
	}
	dest, err := upath.New(newPath)
	if err != nil {
		return err
	}
	if v.backend.DirectoryExists(src) {
		return v.backend.MoveDirectory(src, dest)
	}
	return v.backend.MoveFile(src, dest)
}

// ReadFile reads the entire content of path.
func (v *VFS) ReadFile(rawPath string) ([]byte, error) {
	path, err := upath.New(rawPath)
	if err != nil {
		return nil, err
	}
	h, err := v.backend.OpenFile(path, memfs.Open, memfs.AccessRead, vlock.ShareRead)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	size := h.Length()
	buf := make([]byte, size)
	var total int64
	for total < size {
		n, rerr := h.Read(buf[total:])
		total += int64(n)
		if rerr != nil {
			break
		}
	}
	return buf[:total], nil
}

// WriteFile creates or truncates path and writes data to it.
func (v *VFS) WriteFile(rawPath string, data []byte) error {
	path, err := upath.New(rawPath)
	if err != nil {
		return err
	}
	h, err := v.backend.OpenFile(path, memfs.Create, memfs.AccessWrite, vlock.ShareNone)
	if err != nil {
		return err
	}
	defer h.Close()
	_, err = h.Write(data)
	return err
}

// Info is Stat's result.
type Info struct {
	Path      upath.UPath
	Attrs     vtree.Attrs
	IsDirFlag bool
	Size      int64
	Created   time.Time
	Accessed  time.Time
	Modified  time.Time
}

// IsDir reports whether Info describes a directory.
func (i Info) IsDir() bool { return i.IsDirFlag }
