package mode

import (
	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/ui"
)

type helixState struct {
	// Kind of the char search waiting for its char.
	pendingSearch editor.Kind
	// Move run when leaving insert mode.
	exitAdjustment editor.Kind
}

var helixCharSearches = map[rune]editor.Kind{
	'f': editor.MoveRightUntil,
	't': editor.MoveRightBefore,
	'F': editor.MoveLeftUntil,
	'T': editor.MoveLeftBefore,
}

// Consumes the key following f, t, F or T.
func (s *State) helixCharSearch(k ui.Key) (keymap.Event, bool) {
	kind := s.helix.pendingSearch
	if kind == editor.NoCommand {
		return keymap.Event{}, false
	}
	s.helix.pendingSearch = editor.NoCommand
	if k.Mod != 0 || !insertable(k) {
		return keymap.Event{}, true
	}
	search := editor.Command{Kind: kind, Char: k.Rune, Select: true}
	if s.kind == KindHelixNormal {
		return keymap.EditEvent(editor.C(editor.ClearSelection), search), true
	}
	return keymap.EditEvent(search), true
}

// Handles the keys of the Helix normal and select modes that change the mode
// and so can't be bound in a keymap.
func (s *State) helixNormal(k ui.Key) keymap.Event {
	if k == ui.Esc {
		if s.kind == KindHelixSelect {
			s.kind = KindHelixNormal
			return keymap.E(keymap.Repaint)
		}
		return keymap.E(keymap.Esc)
	}
	if k.Mod != 0 {
		return keymap.Event{}
	}
	if kind, ok := helixCharSearches[k.Rune]; ok {
		s.helix.pendingSearch = kind
		return keymap.Event{}
	}
	switch k.Rune {
	case 'v':
		if s.kind == KindHelixNormal {
			s.kind = KindHelixSelect
		} else {
			s.kind = KindHelixNormal
		}
		return keymap.E(keymap.Repaint)
	case 'i':
		return s.helixEnterInsert(editor.C(editor.MoveToSelectionStart), editor.NoCommand)
	case 'a':
		return s.helixEnterInsert(editor.C(editor.MoveToSelectionEnd), editor.MoveLeft)
	case 'I':
		return s.helixEnterInsert(editor.C(editor.MoveToLineStart), editor.NoCommand)
	case 'A':
		return s.helixEnterInsert(editor.C(editor.MoveToLineEnd), editor.MoveLeft)
	case 'c':
		return s.helixEnterInsert(editor.C(editor.CutSelection), editor.NoCommand)
	}
	return keymap.Event{}
}

func (s *State) helixEnterInsert(cmd editor.Command, exit editor.Kind) keymap.Event {
	s.kind = KindHelixInsert
	s.helix.exitAdjustment = exit
	return keymap.EditEvent(cmd)
}

func (s *State) helixLeaveInsert() keymap.Event {
	s.kind = KindHelixNormal
	adjust := s.helix.exitAdjustment
	s.helix.exitAdjustment = editor.NoCommand
	if adjust == editor.NoCommand {
		return keymap.E(keymap.Esc)
	}
	return keymap.MultipleEvent(keymap.EditKinds(adjust), keymap.E(keymap.Esc))
}
