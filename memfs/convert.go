package memfs

import "github.com/vfscore/vfscore/upath"

// ConvertPathToInternal and ConvertPathFromInternal are identity
// conversions for the in-memory backend: there is no host-filesystem
// representation to translate to or from. Backends that do have one,
// e.g. the physical-disk adapter, implement these for real; that adapter
// is out of scope here.

func (b *Backend) ConvertPathToInternal(path upath.UPath) string { return path.String() }

func (b *Backend) ConvertPathFromInternal(internal string) (upath.UPath, error) {
	return upath.New(internal)
}
