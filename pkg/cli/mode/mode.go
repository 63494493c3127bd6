// Package mode implements the modal state machine that turns keys into
// editor events: Emacs, Vi (normal and insert), Helix (normal, select and
// insert), and the transient history search.
package mode

import (
	"fmt"
	"unicode"

	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/ui"
)

// EditMode is a family of editing modes, chosen by the user.
type EditMode int

// Possible values for EditMode.
const (
	Emacs EditMode = iota
	Vi
	Helix
)

func (m EditMode) String() string {
	switch m {
	case Emacs:
		return "emacs"
	case Vi:
		return "vi"
	case Helix:
		return "helix"
	}
	return fmt.Sprintf("edit-mode(%d)", int(m))
}

// ParseEditMode parses the name of an EditMode.
func ParseEditMode(s string) (EditMode, error) {
	switch s {
	case "emacs":
		return Emacs, nil
	case "vi":
		return Vi, nil
	case "helix":
		return Helix, nil
	}
	return Emacs, fmt.Errorf("unknown edit mode %q", s)
}

// Kind is the active mode within a family.
type Kind int

// Possible values for Kind.
const (
	KindEmacs Kind = iota
	KindViNormal
	KindViInsert
	KindHelixNormal
	KindHelixInsert
	KindHelixSelect
)

var kindNames = [...]string{
	KindEmacs:       "emacs",
	KindViNormal:    "vi_normal",
	KindViInsert:    "vi_insert",
	KindHelixNormal: "helix_normal",
	KindHelixInsert: "helix_insert",
	KindHelixSelect: "helix_select",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsInsert returns whether unbound printable keys insert text in the mode.
func (k Kind) IsInsert() bool {
	return k == KindEmacs || k == KindViInsert || k == KindHelixInsert
}

// State is the mode state machine. Resolve is its only input; the driver
// reads the active mode back through Kind and Searching.
type State struct {
	keymaps keymap.Set
	family  EditMode
	kind    Kind
	seq     keymap.Sequencer

	searching bool

	vi    viState
	helix helixState
}

// NewState returns a State in the initial mode of the family.
func NewState(keymaps keymap.Set, m EditMode) *State {
	s := &State{keymaps: keymaps}
	s.SetEditMode(m)
	return s
}

// SetEditMode switches to another family, in its initial mode. Vi starts in
// insert mode and Helix in normal mode.
func (s *State) SetEditMode(m EditMode) {
	s.family = m
	switch m {
	case Vi:
		s.kind = KindViInsert
	case Helix:
		s.kind = KindHelixNormal
	default:
		s.family, s.kind = Emacs, KindEmacs
	}
	s.Reset()
}

// EditMode returns the active family.
func (s *State) EditMode() EditMode { return s.family }

// Kind returns the active mode.
func (s *State) Kind() Kind { return s.kind }

// Reset drops all partial input: pending chords, a partial Vi command and a
// pending Helix char search. It also leaves the history search.
func (s *State) Reset() {
	s.seq.Reset()
	s.vi.cache = nil
	s.helix.pendingSearch = editor.NoCommand
	s.searching = false
}

// Searching returns whether the transient history search is active.
func (s *State) Searching() bool { return s.searching }

// EnterSearch activates the history search.
func (s *State) EnterSearch() { s.searching = true }

// ExitSearch leaves the history search.
func (s *State) ExitSearch() { s.searching = false }

// Pending returns whether keys of a chord are waiting for more keys. The
// driver flushes them with Flush after a timeout.
func (s *State) Pending() bool { return s.seq.Pending() }

func (s *State) keybindings() *keymap.Keybindings {
	var kb *keymap.Keybindings
	switch s.kind {
	case KindEmacs:
		kb = s.keymaps.Emacs
	case KindViNormal:
		kb = s.keymaps.ViNormal
	case KindViInsert:
		kb = s.keymaps.ViInsert
	case KindHelixNormal:
		kb = s.keymaps.HelixNormal
	case KindHelixInsert:
		kb = s.keymaps.HelixInsert
	case KindHelixSelect:
		kb = s.keymaps.HelixSelect
	}
	if kb == nil {
		return keymap.New()
	}
	return kb
}

// Resolve turns a key into an event, switching modes as needed. It returns
// an event of kind None when the key is part of an incomplete chord or Vi
// command, or has no meaning in the active mode.
func (s *State) Resolve(k ui.Key) keymap.Event {
	if s.searching {
		if ev, ok := resolveSearch(k); ok {
			return ev
		}
		s.searching = false
	}
	if s.kind == KindHelixNormal || s.kind == KindHelixSelect {
		if ev, ok := s.helixCharSearch(k); ok {
			return ev
		}
	}
	return s.seq.Feed(s.keybindings(), k, s.fallback)
}

// Flush resolves keys of an incomplete chord, as if it had timed out.
func (s *State) Flush() keymap.Event {
	return s.seq.Flush(s.keybindings(), s.fallback)
}

// Resolves a key without a binding in the active keymap.
func (s *State) fallback(k ui.Key) keymap.Event {
	switch s.kind {
	case KindEmacs:
		return insertKey(k)
	case KindViInsert:
		if k == ui.Esc {
			s.kind = KindViNormal
			return keymap.MultipleEvent(keymap.E(keymap.Esc),
				keymap.EditKinds(editor.MoveLeftInLine))
		}
		return insertKey(k)
	case KindViNormal:
		return s.viNormal(k)
	case KindHelixInsert:
		if k == ui.Esc {
			return s.helixLeaveInsert()
		}
		return insertKey(k)
	case KindHelixNormal, KindHelixSelect:
		return s.helixNormal(k)
	}
	return keymap.Event{}
}

// Returns an event inserting the key if it is printable and carries no
// modifier, or the Ctrl-Alt pair that AltGr sends.
func insertKey(k ui.Key) keymap.Event {
	if !insertable(k) {
		return keymap.Event{}
	}
	return keymap.EditEvent(editor.CharCmd(editor.InsertChar, k.Rune))
}

func insertable(k ui.Key) bool {
	switch k.Mod {
	case 0, ui.Shift, ui.Ctrl | ui.Alt, ui.Ctrl | ui.Alt | ui.Shift:
	default:
		return false
	}
	return k.Rune >= ' ' && k.Rune != ui.Backspace && unicode.IsPrint(k.Rune)
}

// Keys of the history search. Keys not listed here leave the search and are
// resolved by the underlying mode.
func resolveSearch(k ui.Key) (keymap.Event, bool) {
	switch k {
	case ui.K(ui.Backspace), ui.K('H', ui.Ctrl):
		return keymap.EditKinds(editor.Backspace), true
	case ui.K('R', ui.Ctrl):
		return keymap.E(keymap.SearchHistory), true
	case ui.K(ui.Enter):
		return keymap.E(keymap.Enter), true
	case ui.Esc, ui.K('G', ui.Ctrl):
		return keymap.E(keymap.Esc), true
	case ui.K('C', ui.Ctrl):
		return keymap.E(keymap.CtrlC), true
	}
	if ev := insertKey(k); ev.Kind != keymap.None {
		return ev, true
	}
	return keymap.Event{}, false
}
