package vfserr

import "fmt"

// Errno is a low-level, OS-handle-facing error code, the flavour the
// teacher's baseHandle stubs return (ENOSYS and friends) for operations a
// read-only or write-only stream handle doesn't implement. It is
// deliberately distinct from Error/Kind above: Kind is the taxonomy the
// operation layer speaks in, Errno is what a stream Handle returns for
// POSIX-shaped method stubs.
type Errno int

// The handful of low-level codes vhandle's baseHandle needs.
const (
	OK     Errno = 0
	ENOSYS Errno = 38
	ENOENT Errno = 2
	EROFS  Errno = 30
	EPERM  Errno = 1
	ENOTEMPTY Errno = 39
	EEXIST Errno = 17
	EINVAL Errno = 22
	EBUSY  Errno = 16
	EISDIR Errno = 21
	ENOTDIR Errno = 20
)

var errnoText = map[Errno]string{
	OK:        "Success",
	ENOSYS:    "Function not implemented",
	ENOENT:    "No such file or directory",
	EROFS:     "Read-only file system",
	EPERM:     "Operation not permitted",
	ENOTEMPTY: "Directory not empty",
	EEXIST:    "File exists",
	EINVAL:    "Invalid argument",
	EBUSY:     "Device or resource busy",
	EISDIR:    "Is a directory",
	ENOTDIR:   "Not a directory",
}

// Error implements the error interface.
func (e Errno) Error() string {
	if s, ok := errnoText[e]; ok {
		return s
	}
	return fmt.Sprintf("Low level error %d", int(e))
}
