package linebuf

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Grapheme boundaries never span a line feed, so every scan for the boundary
// around a position starts at the beginning of its line.

func lineStart(s string, i int) int {
	return strings.LastIndexByte(s[:i], '\n') + 1
}

// Returns the end of the cluster starting at i, or len(s) if i is at the end.
func nextBoundary(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
	return i + len(cluster)
}

// Returns the start of the cluster ending at i, or 0 if i is at the start.
func prevBoundary(s string, i int) int {
	if i <= 0 {
		return 0
	}
	b := lineStart(s, i-1)
	for {
		next := nextBoundary(s, b)
		if next >= i {
			return b
		}
		b = next
	}
}

// Clamps i into [0, len(s)] and moves it back to the nearest cluster
// boundary.
func snap(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	b := lineStart(s, i)
	for b < i {
		next := nextBoundary(s, b)
		if next > i {
			return b
		}
		b = next
	}
	return b
}

// Returns the start of the last cluster of s.
func lastClusterStart(s string) int {
	return prevBoundary(s, len(s))
}

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Calls f with the offset and text of each segment of s delimited by Unicode
// word boundaries, until f returns false.
func forEachWord(s string, f func(i int, w string) bool) {
	state := -1
	i := 0
	var w string
	for s != "" {
		w, s, state = uniseg.FirstWordInString(s, state)
		if !f(i, w) {
			return
		}
		i += len(w)
	}
}

func isWhitespace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}
