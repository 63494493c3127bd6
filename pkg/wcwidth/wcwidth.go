// Package wcwidth provides utilities for determining the column width of
// characters when displayed on the terminal.
//
// Widths are measured per grapheme cluster: a cluster made of a single rune
// uses the East Asian width tables of go-runewidth, subject to overrides;
// clusters made of several runes (combining sequences, emoji with modifiers
// or joiners, flags) use the width uniseg computes for the whole cluster.
package wcwidth

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var (
	overrideMutex sync.RWMutex
	override      = map[rune]int{}
)

// OfRune returns the column width of a rune.
func OfRune(r rune) int {
	overrideMutex.RLock()
	w, ok := override[r]
	overrideMutex.RUnlock()
	if ok {
		return w
	}
	return runewidth.RuneWidth(r)
}

// OfCluster returns the column width of a single grapheme cluster.
func OfCluster(c string) int {
	r, size := utf8.DecodeRuneInString(c)
	if size == len(c) {
		return OfRune(r)
	}
	overrideMutex.RLock()
	w, ok := override[r]
	overrideMutex.RUnlock()
	if ok {
		return w
	}
	return uniseg.StringWidth(c)
}

// Of returns the column width of a string, summing the widths of all its
// grapheme clusters.
func Of(s string) int {
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += OfCluster(cluster)
	}
	return w
}

// Override overrides the column width of a rune to be a specific non-negative
// value. If w < 0, it removes the override.
func Override(r rune, w int) {
	if w < 0 {
		Unoverride(r)
		return
	}
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	override[r] = w
}

// Unoverride removes the column width override of a rune.
func Unoverride(r rune) {
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	delete(override, r)
}

// Trim trims the string s so that it has a width of at most wmax. It never
// splits a grapheme cluster.
func Trim(s string, wmax int) string {
	w := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster, next string
		cluster, next, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cw := OfCluster(cluster)
		if w+cw > wmax {
			return s[:len(s)-len(rest)]
		}
		w += cw
		rest = next
	}
	return s
}

// Force forces the string s to the given width, by trimming and padding.
func Force(s string, width int) string {
	s = Trim(s, width)
	if w := Of(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// TrimEachLine trims each line of s so that it is no wider than the specified
// width.
func TrimEachLine(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = Trim(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
