// Package vfserr defines the error taxonomy shared by every vfscore
// component (upath, vtree, lockorch, memfs, vfs). Errors are sentinel
// values of a small numeric Kind, the way the teacher's vfs package
// represents low-level failures as syscall-errno-flavoured values
// (ENOSYS, ENOENT, EROFS, ...) rather than ad-hoc string errors.
package vfserr

import (
	"errors"
	"fmt"
	"os"
)

// Kind identifies one of the error categories from the taxonomy.
type Kind int

// The error kinds. Not an exhaustive syscall errno set: these are the
// kinds the operation layer actually distinguishes, nothing more.
const (
	_ Kind = iota
	InvalidPath
	FileNotFound
	DirectoryNotFound
	AlreadyExists
	NotADirectory
	IsADirectory
	DirectoryNotEmpty
	Unauthorised
	Busy
	IO
	Disposed
	InvalidArgument
)

var kindNames = map[Kind]string{
	InvalidPath:       "invalid path",
	FileNotFound:      "file not found",
	DirectoryNotFound: "directory not found",
	AlreadyExists:     "already exists",
	NotADirectory:     "not a directory",
	IsADirectory:      "is a directory",
	DirectoryNotEmpty: "directory not empty",
	Unauthorised:      "unauthorised",
	Busy:              "busy",
	IO:                "I/O error",
	Disposed:          "disposed",
	InvalidArgument:   "invalid argument",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a taxonomy error: a Kind plus the path and optional detail
// that produced it.
type Error struct {
	Kind   Kind
	Path   string
	Detail string
}

func (e *Error) Error() string {
	if e.Path == "" {
		if e.Detail == "" {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Detail)
	}
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Path)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind.String(), e.Path, e.Detail)
}

// Is lets callers use errors.Is against the standard library sentinels
// the way the teacher's vfs tests compare directly against os.ErrNotExist
// and os.ErrExist; a taxonomy Error of kind FileNotFound/DirectoryNotFound
// is also an os.ErrNotExist, and AlreadyExists is also an os.ErrExist.
func (e *Error) Is(target error) bool {
	switch target {
	case os.ErrNotExist:
		return e.Kind == FileNotFound || e.Kind == DirectoryNotFound
	case os.ErrExist:
		return e.Kind == AlreadyExists
	case os.ErrPermission:
		return e.Kind == Unauthorised
	}
	return false
}

// New builds an *Error of the given kind for path.
func New(kind Kind, path string) error {
	return &Error{Kind: kind, Path: path}
}

// Newf builds an *Error of the given kind for path with a formatted detail.
func Newf(kind Kind, path, format string, args ...any) error {
	return &Error{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind of err if it (or something it wraps) is an
// *Error, and ok=false otherwise.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is a taxonomy error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
