// Package upath implements UPath, the normalized absolute-or-relative
// path value used as the universal addressing scheme across every vfscore
// backend. It is grounded on the teacher's path-handling idiom (plain
// string-based helpers, sentinel errors, a fast path for already-clean
// input) generalised to a full normalisation scheme: '/' separator only,
// no repeated or trailing separators, '.' elimination, '..' folding, and
// a >2-dot segment being invalid.
package upath

import (
	"strings"

	"github.com/vfscore/vfscore/vfserr"
)

// UPath is a normalized path value. The zero value is the null path.
type UPath struct {
	s     string
	valid bool // false for the null path
}

// Null is the distinguished absent path.
var Null = UPath{}

// Empty is the distinguished empty path.
var Empty = UPath{s: "", valid: true}

// IsNull reports whether p is the null path.
func (p UPath) IsNull() bool { return !p.valid }

// IsEmpty reports whether p is the non-null empty path.
func (p UPath) IsEmpty() bool { return p.valid && p.s == "" }

// String returns the canonical string form, or "" for the null path.
func (p UPath) String() string { return p.s }

// IsAbsolute reports whether p begins with '/'.
func (p UPath) IsAbsolute() bool { return p.valid && strings.HasPrefix(p.s, "/") }

// New parses and canonicalises s into a UPath.
func New(s string) (UPath, error) {
	return normalise(s)
}

// MustNew is New but panics on error; for package-level test fixtures.
func MustNew(s string) UPath {
	p, err := New(s)
	if err != nil {
		panic(err)
	}
	return p
}

// isClean reports whether s already satisfies every canonical-form rule,
// letting normalise take a fast, allocation-free path for the common
// case of already-clean input.
func isClean(s string) bool {
	if s == "" || s == "/" {
		return true
	}
	if strings.ContainsRune(s, '\\') {
		return false
	}
	if strings.HasSuffix(s, "/") {
		return false
	}
	if strings.Contains(s, "//") {
		return false
	}
	segStart := 0
	if s[0] == '/' {
		segStart = 1
	}
	for segStart <= len(s) {
		i := strings.IndexByte(s[segStart:], '/')
		var seg string
		if i < 0 {
			seg = s[segStart:]
			segStart = len(s) + 1
		} else {
			seg = s[segStart : segStart+i]
			segStart += i + 1
		}
		if seg == "." || seg == ".." {
			return false
		}
		if allDots(seg) && len(seg) > 2 {
			return false
		}
		if strings.ContainsRune(seg, ':') {
			return false
		}
	}
	return true
}

func allDots(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] != '.' {
			return false
		}
	}
	return true
}

// normalise is a two-pass algorithm: a scan to detect the fast path, and
// (if needed) a rewrite pass that drops '.' segments and folds '..'
// segments against the preceding non-'..' segment.
func normalise(s string) (UPath, error) {
	if s == "" {
		return Empty, nil
	}

	clean := strings.ReplaceAll(s, "\\", "/")
	if clean == s && isClean(clean) {
		return UPath{s: clean, valid: true}, nil
	}

	absolute := strings.HasPrefix(clean, "/")
	rawSegs := strings.Split(clean, "/")

	out := make([]string, 0, len(rawSegs))
	for _, seg := range rawSegs {
		switch {
		case seg == "" || seg == ".":
			continue
		case seg == "..":
			if len(out) == 0 {
				if absolute {
					return UPath{}, vfserr.New(vfserr.InvalidPath, s)
				}
				out = append(out, "..")
				continue
			}
			if out[len(out)-1] == ".." {
				out = append(out, "..")
				continue
			}
			out = out[:len(out)-1]
		default:
			if allDots(seg) && len(seg) > 2 {
				return UPath{}, vfserr.New(vfserr.InvalidPath, s)
			}
			if strings.ContainsRune(seg, ':') {
				return UPath{}, vfserr.New(vfserr.InvalidPath, s)
			}
			out = append(out, seg)
		}
	}

	joined := strings.Join(out, "/")
	if absolute {
		joined = "/" + joined
	}
	if joined == "" && s == "." {
		joined = "."
	}
	return UPath{s: joined, valid: true}, nil
}

// Combine returns b if b is absolute or a is empty; otherwise the
// canonical form of a + "/" + b. Combine is
// right-associative for chains (combine(combine(a,b),c) ==
// combine(a,combine(b,c))) because both sides reduce to the same
// flattened, re-normalised segment list.
func Combine(a, b UPath) (UPath, error) {
	if b.IsAbsolute() || a.IsEmpty() {
		return b, nil
	}
	if a.IsNull() || b.IsNull() {
		return UPath{}, vfserr.New(vfserr.InvalidPath, "combine of null path")
	}
	if b.IsEmpty() {
		return a, nil
	}
	return normalise(a.s + "/" + b.s)
}

// MustCombine is Combine but panics on error.
func MustCombine(a, b UPath) UPath {
	p, err := Combine(a, b)
	if err != nil {
		panic(err)
	}
	return p
}

// Parent returns the parent of p (everything before the final '/') and
// true, or the zero UPath and false if p has no parent (root or a
// single-segment relative path).
func (p UPath) Parent() (UPath, bool) {
	if p.IsNull() || p.IsEmpty() {
		return UPath{}, false
	}
	s := p.s
	if s == "/" {
		return UPath{}, false
	}
	idx := strings.LastIndexByte(s, '/')
	if idx < 0 {
		return UPath{}, false
	}
	if idx == 0 {
		return UPath{s: "/", valid: true}, true
	}
	return UPath{s: s[:idx], valid: true}, true
}

// Name returns the final segment of p (the leaf name).
func (p UPath) Name() string {
	s := p.s
	if s == "" || s == "/" {
		return s
	}
	idx := strings.LastIndexByte(s, '/')
	return s[idx+1:]
}

// Segments splits a non-empty path into its '/'-delimited segments,
// dropping the leading empty segment produced by a leading '/'.
func (p UPath) Segments() []string {
	s := p.s
	if s == "" {
		return nil
	}
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}
