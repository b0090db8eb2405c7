// Package textfilter provides in-place filtering of string slices by
// substring and regular-expression predicates.
//
// Filtering happens in place so a caller can hand over a slice it is
// using to drive further work (for example the directory-name slice of a
// filesystem walk) and keep only the surviving entries.
package textfilter

import (
	"regexp"
	"strings"
)

// Predicate reports whether a string should be kept.
type Predicate interface {
	Match(s string) bool
}

type literal string

func (l literal) Match(s string) bool {
	return strings.Contains(s, string(l))
}

// Literal returns a predicate that keeps strings containing substr.
// The match is case-sensitive.
func Literal(substr string) Predicate {
	return literal(substr)
}

type pattern struct {
	re *regexp.Regexp
}

func (p pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

// Pattern returns a predicate that keeps strings the expression matches
// anywhere, not only from the start.
func Pattern(re *regexp.Regexp) Predicate {
	return pattern{re: re}
}

type conjunction []Predicate

func (c conjunction) Match(s string) bool {
	for _, p := range c {
		if p == nil {
			continue
		}
		if !p.Match(s) {
			return false
		}
	}
	return true
}

// All returns a predicate that keeps only strings matching every given
// predicate. With no arguments it keeps everything.
func All(ps ...Predicate) Predicate {
	return conjunction(ps)
}

// FilterInPlace removes from *items every string the predicate rejects.
// The backing array is reused; surviving entries keep their relative
// order. A nil predicate keeps everything.
//
// Applying the same predicate twice leaves the slice unchanged the
// second time, and All(p1, p2) keeps exactly the strings that survive
// filtering by p1 and then by p2.
func FilterInPlace(items *[]string, p Predicate) {
	if items == nil || p == nil {
		return
	}
	kept := (*items)[:0]
	for _, s := range *items {
		if p.Match(s) {
			kept = append(kept, s)
		}
	}
	*items = kept
}
