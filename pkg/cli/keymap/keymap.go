// Package keymap maps keys and key sequences to editor events.
package keymap

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/elves/edline/pkg/ui"
)

var errEmptySequence = errors.New("empty key sequence")

// Keybindings maps keys, and sequences of keys (chords), to events. The zero
// value is an empty map ready to use.
type Keybindings struct {
	root node
}

type node struct {
	bound    bool
	event    Event
	children map[ui.Key]*node
}

// Binding is one entry of a Keybindings.
type Binding struct {
	Keys  []ui.Key
	Event Event
}

// New returns an empty Keybindings.
func New() *Keybindings { return &Keybindings{} }

// Normalize returns the canonical form of a key: letters with Ctrl are upper
// case, and Shift on a printable rune is folded into the rune.
func Normalize(k ui.Key) ui.Key {
	if k.Mod&Ctrl != 0 && 'a' <= k.Rune && k.Rune <= 'z' {
		k.Rune = unicode.ToUpper(k.Rune)
	}
	if k.Mod&Shift != 0 && isPrintable(k.Rune) {
		k.Rune = unicode.ToUpper(k.Rune)
		k.Mod &^= Shift
	}
	return k
}

// Aliases so that key literals in this package read naturally.
const (
	Shift = ui.Shift
	Alt   = ui.Alt
	Ctrl  = ui.Ctrl
)

func isPrintable(r rune) bool {
	return r > ' ' && r != ui.Backspace && unicode.IsPrint(r)
}

// Add binds a single key.
func (kb *Keybindings) Add(k ui.Key, ev Event) {
	kb.AddSequence([]ui.Key{k}, ev)
}

// AddSequence binds a sequence of keys. A sequence may be both bound and the
// prefix of longer sequences.
func (kb *Keybindings) AddSequence(keys []ui.Key, ev Event) error {
	if len(keys) == 0 {
		return errEmptySequence
	}
	n := &kb.root
	for _, k := range keys {
		k = Normalize(k)
		if n.children == nil {
			n.children = make(map[ui.Key]*node)
		}
		child, ok := n.children[k]
		if !ok {
			child = &node{}
			n.children[k] = child
		}
		n = child
	}
	n.bound, n.event = true, ev
	return nil
}

// Remove unbinds a sequence of keys. Longer sequences sharing the prefix are
// kept.
func (kb *Keybindings) Remove(keys ...ui.Key) {
	if n := kb.find(keys); n != nil {
		n.bound, n.event = false, Event{}
	}
}

func (kb *Keybindings) find(keys []ui.Key) *node {
	if len(keys) == 0 {
		return nil
	}
	n := &kb.root
	for _, k := range keys {
		n = n.children[Normalize(k)]
		if n == nil {
			return nil
		}
	}
	return n
}

// Lookup looks up a key sequence. It returns the bound event if any, and
// whether the sequence is a proper prefix of a longer bound sequence.
func (kb *Keybindings) Lookup(keys []ui.Key) (ev Event, bound, prefix bool) {
	n := kb.find(keys)
	if n == nil {
		return Event{}, false, false
	}
	return n.event, n.bound, n.hasBoundDescendant()
}

func (n *node) hasBoundDescendant() bool {
	for _, child := range n.children {
		if child.bound || child.hasBoundDescendant() {
			return true
		}
	}
	return false
}

// Find looks up a single key.
func (kb *Keybindings) Find(k ui.Key) (Event, bool) {
	ev, bound, _ := kb.Lookup([]ui.Key{k})
	return ev, bound
}

// Bindings returns all bindings, sorted by their keys.
func (kb *Keybindings) Bindings() []Binding {
	var bindings []Binding
	var walk func(n *node, prefix []ui.Key)
	walk = func(n *node, prefix []ui.Key) {
		if n.bound {
			bindings = append(bindings, Binding{append([]ui.Key(nil), prefix...), n.event})
		}
		for k, child := range n.children {
			walk(child, append(prefix, k))
		}
	}
	walk(&kb.root, nil)
	sort.Slice(bindings, func(i, j int) bool {
		return SequenceString(bindings[i].Keys) < SequenceString(bindings[j].Keys)
	})
	return bindings
}

// Len returns the number of bindings.
func (kb *Keybindings) Len() int { return len(kb.Bindings()) }

// Clone returns a deep copy.
func (kb *Keybindings) Clone() *Keybindings {
	c := New()
	for _, b := range kb.Bindings() {
		c.AddSequence(b.Keys, b.Event)
	}
	return c
}

// SequenceString formats a key sequence as space-separated key names.
func SequenceString(keys []ui.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// ParseSequence parses space-separated key names.
func ParseSequence(s string) ([]ui.Key, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errEmptySequence
	}
	keys := make([]ui.Key, len(fields))
	for i, f := range fields {
		k, err := ui.ParseKey(f)
		if err != nil {
			return nil, err
		}
		keys[i] = Normalize(k)
	}
	return keys, nil
}
