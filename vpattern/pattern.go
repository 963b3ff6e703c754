// Package vpattern implements the wildcard search-pattern matcher used by
// enumeration: translate a glob containing literal characters, '?' (any
// one char) and '*' (zero or more chars) into a predicate over candidate
// names, after splitting off any literal directory prefix onto the
// enumeration anchor.
package vpattern

import (
	"strings"

	"github.com/vfscore/vfscore/upath"
)

// Matcher is a compiled search pattern: an anchor path (possibly extended
// by the pattern's literal prefix) and a predicate over leaf names.
type Matcher struct {
	Anchor      upath.UPath
	Match       func(name string) bool
	hasWildcard bool
}

// Compile splits pattern's literal directory prefix onto anchor and
// compiles the remaining wildcard tail into a name predicate. caseFold,
// when true, makes the match case-insensitive (non-case-sensitive
// backends).
func Compile(anchor upath.UPath, pattern string, caseFold bool) (Matcher, error) {
	prefix, tail := splitLiteralPrefix(pattern)
	newAnchor := anchor
	if prefix != "" {
		p, err := upath.New(prefix)
		if err != nil {
			return Matcher{}, err
		}
		newAnchor, err = upath.Combine(anchor, p)
		if err != nil {
			return Matcher{}, err
		}
	}
	fn, hasWildcard := compileTail(tail, caseFold)
	return Matcher{Anchor: newAnchor, Match: fn, hasWildcard: hasWildcard}, nil
}

// HasWildcard reports whether the compiled pattern contains '?' or '*'
// (a literal pattern with no wildcard matches only exact name equality).
func (m Matcher) HasWildcard() bool { return m.hasWildcard }

// splitLiteralPrefix returns the longest path-segment-aligned literal
// prefix of pattern (no '?'/'*') and the remaining tail that must be
// matched against each candidate name.
func splitLiteralPrefix(pattern string) (prefix, tail string) {
	idx := strings.IndexAny(pattern, "?*")
	if idx < 0 {
		// Entirely literal: treat the whole thing as the anchor-relative
		// path and match by equality on the final segment.
		lastSlash := strings.LastIndexByte(pattern, '/')
		if lastSlash < 0 {
			return "", pattern
		}
		return pattern[:lastSlash], pattern[lastSlash+1:]
	}
	lastSlash := strings.LastIndexByte(pattern[:idx], '/')
	if lastSlash < 0 {
		return "", pattern
	}
	return pattern[:lastSlash], pattern[lastSlash+1:]
}

// compileTail compiles a single-segment glob tail (containing only '?'
// and '*', no further '/') into a predicate.
func compileTail(tail string, caseFold bool) (fn func(string) bool, hasWildcard bool) {
	if !strings.ContainsAny(tail, "?*") {
		want := tail
		if caseFold {
			want = strings.ToLower(want)
		}
		return func(name string) bool {
			if caseFold {
				name = strings.ToLower(name)
			}
			return name == want
		}, false
	}

	runes := []rune(tail)
	return func(name string) bool {
		if caseFold {
			return matchGlob([]rune(strings.ToLower(string(runes))), []rune(strings.ToLower(name)))
		}
		return matchGlob(runes, []rune(name))
	}, true
}

// matchGlob is a standard greedy-with-backtrack '?'/'*' matcher.
func matchGlob(pattern, name []rune) bool {
	var p, n, star, match int
	star, match = -1, 0
	for n < len(name) {
		if p < len(pattern) && (pattern[p] == '?' || pattern[p] == name[n]) {
			p++
			n++
		} else if p < len(pattern) && pattern[p] == '*' {
			star = p
			match = n
			p++
		} else if star != -1 {
			p = star + 1
			match++
			n = match
		} else {
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
