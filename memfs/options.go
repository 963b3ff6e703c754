package memfs

import "time"

// Options configures a Backend. The zero value is usable, matching every
// field's documented default.
type Options struct {
	// CaseInsensitive selects the ordinal-ignore-case comparer for
	// directory lookups and pattern matching. Default false (ordinal).
	CaseInsensitive bool
	// EnumerationCacheTTL is how long a directory listing snapshot taken
	// by EnumeratePaths is reused before being retaken under lock, the
	// in-memory analogue of the teacher's vfscommon.Options.DirCacheTime.
	// Zero disables the cache.
	EnumerationCacheTTL time.Duration
	// EnumerationConcurrency bounds how many subdirectories a recursive
	// EnumeratePaths call may snapshot concurrently. Zero means 8.
	EnumerationConcurrency int64
	// SniffContentType enables opportunistic content-type detection in
	// Backend.ContentType via github.com/gabriel-vasile/mimetype; when
	// false, ContentType returns "". GetAttributes never sniffs.
	SniffContentType bool
}

func (o Options) concurrency() int64 {
	if o.EnumerationConcurrency <= 0 {
		return 8
	}
	return o.EnumerationConcurrency
}
