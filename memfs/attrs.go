package memfs

import (
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/vfscore/vfscore/lockorch"
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vlock"
	"github.com/vfscore/vfscore/vtree"
)

// GetAttributes returns path's effective attribute bits. A path that
// doesn't resolve returns zero attributes together with the resolution
// error (unlike the timestamp getters, which return FileTimeZero).
func (b *Backend) GetAttributes(path upath.UPath) (vtree.Attrs, error) {
	release := b.enterGlobal(false)
	defer release()
	res, err := b.orch.Resolve(path, lockorch.Flags{ShareMode: vlock.ShareRead}, nil)
	if err != nil {
		return 0, err
	}
	defer res.Release()
	return res.Node.Attrs(), nil
}

// SetAttributes stores attrs on path, excluding the synthesised Normal and
// Directory bits.
func (b *Backend) SetAttributes(path upath.UPath, attrs vtree.Attrs) error {
	release := b.enterGlobal(false)
	defer release()
	res, err := b.orch.Resolve(path, lockorch.Flags{NodeExclusive: true}, nil)
	if err != nil {
		return err
	}
	defer res.Release()
	res.Node.SetAttrs(attrs)
	return nil
}

// ContentType opportunistically sniffs a file's content via
// gabriel-vasile/mimetype, an additive diagnostic field alongside the
// POSIX attribute bits (never stored as an attribute bit itself).
func (b *Backend) ContentType(path upath.UPath) (string, error) {
	if !b.opts.SniffContentType {
		return "", nil
	}
	release := b.enterGlobal(false)
	defer release()
	res, err := b.orch.Resolve(path, lockorch.Flags{ShareMode: vlock.ShareRead}, nil)
	if err != nil {
		return "", err
	}
	defer res.Release()
	file, ok := res.Node.(*vtree.File)
	if !ok {
		return "", nil
	}
	return mimetype.Detect(file.Bytes()).String(), nil
}

// GetCreationTime, GetLastAccessTime, and GetLastWriteTime return
// path's three timestamps, or vtree.FileTimeZero (the fixed 1601-01-01
// UTC epoch, in local time) if path doesn't resolve, rather than erroring.

func (b *Backend) GetCreationTime(path upath.UPath) time.Time {
	created, _, _ := b.times(path)
	return created
}

func (b *Backend) GetLastAccessTime(path upath.UPath) time.Time {
	_, accessed, _ := b.times(path)
	return accessed
}

func (b *Backend) GetLastWriteTime(path upath.UPath) time.Time {
	_, _, modified := b.times(path)
	return modified
}

func (b *Backend) times(path upath.UPath) (created, accessed, modified time.Time) {
	release := b.enterGlobal(false)
	defer release()
	res, err := b.orch.Resolve(path, lockorch.Flags{ShareMode: vlock.ShareRead}, nil)
	if err != nil {
		return vtree.FileTimeZero, vtree.FileTimeZero, vtree.FileTimeZero
	}
	defer res.Release()
	return res.Node.Times()
}

// SetCreationTime, SetLastAccessTime, and SetLastWriteTime update a
// single timestamp field on path, leaving the others unchanged.

func (b *Backend) SetCreationTime(path upath.UPath, t time.Time) error {
	return b.setTime(path, t, time.Time{}, time.Time{})
}

func (b *Backend) SetLastAccessTime(path upath.UPath, t time.Time) error {
	return b.setTime(path, time.Time{}, t, time.Time{})
}

func (b *Backend) SetLastWriteTime(path upath.UPath, t time.Time) error {
	return b.setTime(path, time.Time{}, time.Time{}, t)
}

func (b *Backend) setTime(path upath.UPath, created, accessed, modified time.Time) error {
	release := b.enterGlobal(false)
	defer release()
	res, err := b.orch.Resolve(path, lockorch.Flags{NodeExclusive: true}, nil)
	if err != nil {
		return err
	}
	defer res.Release()
	res.Node.SetTimes(created, accessed, modified)
	return nil
}

// GetFileLength returns the content length of the file at path.
func (b *Backend) GetFileLength(path upath.UPath) (int64, error) {
	release := b.enterGlobal(false)
	defer release()
	res, err := b.orch.Resolve(path, lockorch.Flags{ShareMode: vlock.ShareRead}, nil)
	if err != nil {
		return 0, err
	}
	defer res.Release()
	file, ok := res.Node.(*vtree.File)
	if !ok {
		return 0, vfserr.New(vfserr.IsADirectory, path.String())
	}
	return file.Size(), nil
}
