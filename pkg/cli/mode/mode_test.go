package mode

import (
	"strings"
	"testing"

	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/tt"
	"github.com/elves/edline/pkg/ui"
)

// Feeds keys to a fresh State and returns the string form of every event that
// isn't None, along with the final mode.
func feed(m EditMode, keys ...ui.Key) (string, Kind) {
	s := NewState(keymap.DefaultSet(), m)
	return feedState(s, keys...), s.Kind()
}

func feedState(s *State, keys ...ui.Key) string {
	var evs []string
	for _, k := range keys {
		if ev := s.Resolve(k); ev.Kind != keymap.None {
			evs = append(evs, ev.String())
		}
	}
	return strings.Join(evs, " ")
}

func runes(s string) []ui.Key {
	keys := make([]ui.Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, ui.K(r))
	}
	return keys
}

func TestParseEditMode(t *testing.T) {
	tt.Test(t, tt.Fn("ParseEditMode", ParseEditMode),
		tt.Args("emacs").Rets(Emacs, nil),
		tt.Args("vi").Rets(Vi, nil),
		tt.Args("helix").Rets(Helix, nil),
		tt.Args("ed").Rets(Emacs, tt.Any),
	)
}

func TestNewState_InitialKinds(t *testing.T) {
	tt.Test(t, tt.Fn("initial kind", func(m EditMode) Kind {
		return NewState(keymap.DefaultSet(), m).Kind()
	}),
		tt.Args(Emacs).Rets(KindEmacs),
		tt.Args(Vi).Rets(KindViInsert),
		tt.Args(Helix).Rets(KindHelixNormal),
	)
}

func TestEmacs(t *testing.T) {
	tt.Test(t, tt.Fn("feed", func(keys ...ui.Key) string {
		evs, _ := feed(Emacs, keys...)
		return evs
	}),
		tt.Args(ui.K('a')).Rets(`edit[insert_char('a')]`),
		tt.Args(ui.K('A', ui.Shift)).Rets(`edit[insert_char('A')]`),
		// AltGr
		tt.Args(ui.K('@', ui.Ctrl, ui.Alt)).Rets(`edit[insert_char('@')]`),
		tt.Args(ui.K('A', ui.Ctrl)).Rets(`edit[move_to_line_start]`),
		tt.Args(ui.K('q', ui.Alt)).Rets(``),
		tt.Args(ui.K(ui.F1)).Rets(``),
		tt.Args(ui.K('X', ui.Ctrl), ui.K('u')).Rets(`edit[undo]`),
	)
}

func TestEmacs_ChordFlush(t *testing.T) {
	s := NewState(keymap.DefaultSet(), Emacs)
	if ev := s.Resolve(ui.K('X', ui.Ctrl)); ev.Kind != keymap.None {
		t.Errorf("first key of chord resolved to %v", ev)
	}
	if !s.Pending() {
		t.Fatalf("Pending() = false after first key of chord")
	}
	s.Flush()
	if s.Pending() {
		t.Errorf("Pending() = true after Flush")
	}
	if got := feedState(s, ui.K('z')); got != `edit[insert_char('z')]` {
		t.Errorf("key after flush resolved to %s", got)
	}
}

func TestVi_EnterAndLeaveInsert(t *testing.T) {
	s := NewState(keymap.DefaultSet(), Vi)
	if got := feedState(s, ui.Esc); got != `multiple[esc edit[move_left_in_line]]` {
		t.Errorf("Esc in insert mode resolved to %s", got)
	}
	if s.Kind() != KindViNormal {
		t.Fatalf("Kind() = %v after Esc, want vi_normal", s.Kind())
	}
	if got := feedState(s, ui.K('i')); got != `repaint` {
		t.Errorf("i resolved to %s, want repaint", got)
	}
	if s.Kind() != KindViInsert {
		t.Errorf("Kind() = %v after i, want vi_insert", s.Kind())
	}
}

func TestViNormal(t *testing.T) {
	normal := func(s string) (string, Kind) {
		return feed(Vi, append([]ui.Key{ui.Esc}, runes(s)...)...)
	}
	const esc = `multiple[esc edit[move_left_in_line]]`
	tt.Test(t, tt.Fn("normal", normal),
		tt.Args("h").Rets(esc+` edit[move_left_in_line]`, KindViNormal),
		tt.Args("3l").Rets(esc+` edit[move_right move_right move_right]`, KindViNormal),
		tt.Args("0").Rets(esc+` edit[move_to_line_start]`, KindViNormal),
		tt.Args("dw").Rets(esc+` edit[cut_word_right_to_next]`, KindViNormal),
		tt.Args("d2w").Rets(esc+` edit[cut_word_right_to_next cut_word_right_to_next]`, KindViNormal),
		tt.Args("2dd").Rets(esc+` edit[cut_current_line cut_current_line]`, KindViNormal),
		tt.Args("ce").Rets(esc+` edit[cut_word_right]`, KindViInsert),
		tt.Args("cw").Rets(esc+` edit[cut_word_right]`, KindViInsert),
		tt.Args("cc").Rets(esc+` edit[move_to_line_start cut_to_line_end]`, KindViInsert),
		tt.Args("fx").Rets(esc+` edit[move_right_until('x')]`, KindViNormal),
		tt.Args("dtx").Rets(esc+` edit[cut_right_before('x')]`, KindViNormal),
		tt.Args("rz").Rets(esc+` edit[replace_char('z')]`, KindViNormal),
		tt.Args("3rz").Rets(esc+` edit[replace_chars(3, "zzz")]`, KindViNormal),
		tt.Args("A").Rets(esc+` edit[move_to_line_end]`, KindViInsert),
		tt.Args("u").Rets(esc+` edit[undo]`, KindViNormal),
		tt.Args("j").Rets(esc+` until_found[menu_down down]`, KindViNormal),
		// Invalid commands are dropped and parsing starts over.
		tt.Args("dzx").Rets(esc+` edit[cut_char]`, KindViNormal),
		tt.Args("d").Rets(esc, KindViNormal),
	)
}

func TestViNormal_CountIsClamped(t *testing.T) {
	huge := strings.Repeat("9", 30)
	got, _ := feed(Vi, append([]ui.Key{ui.Esc}, runes(huge+"ra")...)...)
	want := `replace_chars(9999, "` + strings.Repeat("a", 9999) + `")`
	if !strings.HasSuffix(got, "edit["+want+"]") {
		t.Errorf("huge count with r resolved to %.80s...", got)
	}

	got, _ = feed(Vi, append([]ui.Key{ui.Esc}, runes("4611686018427387904x")...)...)
	if n := strings.Count(got, "cut_char"); n != 9999 {
		t.Errorf("huge count with x repeated %d times, want 9999", n)
	}
	got, _ = feed(Vi, append([]ui.Key{ui.Esc}, runes("500d500w")...)...)
	if n := strings.Count(got, "cut_word_right_to_next"); n != 9999 {
		t.Errorf("count product repeated %d times, want 9999", n)
	}
}

func TestViNormal_Repeat(t *testing.T) {
	s := NewState(keymap.DefaultSet(), Vi)
	s.Resolve(ui.Esc)
	feedState(s, runes("dw")...)
	// Motions are not changes and don't replace the command to repeat.
	feedState(s, runes("l")...)
	if got := feedState(s, ui.K('.')); got != `edit[cut_word_right_to_next]` {
		t.Errorf(". resolved to %s", got)
	}
}

func TestViNormal_EscDropsPartialCommand(t *testing.T) {
	s := NewState(keymap.DefaultSet(), Vi)
	s.Resolve(ui.Esc)
	feedState(s, runes("2d")...)
	if got := feedState(s, ui.Esc, ui.K('x')); got != `esc edit[cut_char]` {
		t.Errorf("got %s", got)
	}
}

func TestHelix(t *testing.T) {
	helix := func(keys ...ui.Key) (string, Kind) { return feed(Helix, keys...) }
	tt.Test(t, tt.Fn("helix", helix),
		tt.Args(ui.K('w')).Rets(`edit[clear_selection move_word_right_start[select]]`, KindHelixNormal),
		tt.Args(ui.K('v'), ui.K('w')).Rets(`repaint edit[move_word_right_start[select]]`, KindHelixSelect),
		tt.Args(ui.K('v'), ui.Esc).Rets(`repaint repaint`, KindHelixNormal),
		tt.Args(ui.K('f'), ui.K('x')).Rets(`edit[clear_selection move_right_until('x')[select]]`, KindHelixNormal),
		tt.Args(ui.K('v'), ui.K('t'), ui.K('x')).Rets(`repaint edit[move_right_before('x')[select]]`, KindHelixSelect),
		tt.Args(ui.K('g'), ui.K('s')).Rets(`edit[move_to_line_non_blank_start]`, KindHelixNormal),
		tt.Args(ui.K('i')).Rets(`edit[move_to_selection_start]`, KindHelixInsert),
		tt.Args(ui.K('c')).Rets(`edit[cut_selection]`, KindHelixInsert),
		tt.Args(ui.K('i'), ui.K('q'), ui.Esc).Rets(`edit[move_to_selection_start] edit[insert_char('q')] esc`, KindHelixNormal),
		tt.Args(ui.K('a'), ui.Esc).Rets(`edit[move_to_selection_end] multiple[edit[move_left] esc]`, KindHelixNormal),
		tt.Args(ui.Esc).Rets(`esc`, KindHelixNormal),
	)
}

func TestSearch(t *testing.T) {
	s := NewState(keymap.DefaultSet(), Emacs)
	s.EnterSearch()
	tt.Test(t, tt.Fn("Resolve", func(k ui.Key) string { return s.Resolve(k).String() }),
		tt.Args(ui.K('a')).Rets(`edit[insert_char('a')]`),
		tt.Args(ui.K(ui.Backspace)).Rets(`edit[backspace]`),
		tt.Args(ui.K('R', ui.Ctrl)).Rets(`search_history`),
		tt.Args(ui.K(ui.Enter)).Rets(`enter`),
	)
	if !s.Searching() {
		t.Fatalf("search left by a search key")
	}
	// A key the search doesn't handle leaves it and goes to the mode.
	if got := s.Resolve(ui.K('A', ui.Ctrl)).String(); got != `edit[move_to_line_start]` {
		t.Errorf("Ctrl-A resolved to %s", got)
	}
	if s.Searching() {
		t.Errorf("still searching after Ctrl-A")
	}
}

func TestReset(t *testing.T) {
	s := NewState(keymap.DefaultSet(), Helix)
	s.Resolve(ui.K('f'))
	s.EnterSearch()
	s.Reset()
	if s.Searching() {
		t.Errorf("Searching() = true after Reset")
	}
	if got := s.Resolve(ui.K('x')).String(); got != `edit[move_to_line_start move_to_line_end[select]]` {
		t.Errorf("x after Reset resolved to %s", got)
	}
}
