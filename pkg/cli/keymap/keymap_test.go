package keymap

import (
	"errors"
	"strings"
	"testing"

	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/tt"
	"github.com/elves/edline/pkg/ui"
)

func TestNormalize(t *testing.T) {
	tt.Test(t, tt.Fn("Normalize", Normalize),
		tt.Args(k('a', Ctrl)).Rets(k('A', Ctrl)),
		tt.Args(k('w', Shift)).Rets(k('W')),
		tt.Args(k('w', Shift, Alt)).Rets(k('W', Alt)),
		tt.Args(k(ui.Tab, Shift)).Rets(k(ui.Tab, Shift)),
		tt.Args(k(ui.Left, Shift)).Rets(k(ui.Left, Shift)),
		tt.Args(k('x')).Rets(k('x')),
	)
}

func TestKeybindings_Lookup(t *testing.T) {
	kb := New()
	kb.Add(k('a'), E(Submit))
	kb.AddSequence([]ui.Key{k('X', Ctrl), k('u')}, edit(editor.Undo))
	kb.AddSequence([]ui.Key{k('g')}, E(Repaint))
	kb.AddSequence([]ui.Key{k('g'), k('g')}, edit(editor.MoveToStart))

	lookup := func(keys ...ui.Key) (string, bool, bool) {
		ev, bound, prefix := kb.Lookup(keys)
		return ev.String(), bound, prefix
	}
	tt.Test(t, tt.Fn("Lookup", lookup),
		tt.Args(k('a')).Rets("submit", true, false),
		tt.Args(k('b')).Rets("none", false, false),
		tt.Args(k('x', Ctrl)).Rets("none", false, true),
		tt.Args(k('X', Ctrl), k('u')).Rets("edit[undo]", true, false),
		tt.Args(k('X', Ctrl), k('v')).Rets("none", false, false),
		tt.Args(k('g')).Rets("repaint", true, true),
		tt.Args(k('g'), k('g')).Rets("edit[move_to_start]", true, false),
		tt.Args().Rets("none", false, false),
	)
}

func TestKeybindings_AddSequenceRejectsEmpty(t *testing.T) {
	if err := New().AddSequence(nil, E(Submit)); err == nil {
		t.Errorf("AddSequence(nil) returns nil error")
	}
}

func TestKeybindings_RemoveKeepsLongerSequences(t *testing.T) {
	kb := New()
	kb.Add(k('g'), E(Repaint))
	kb.AddSequence([]ui.Key{k('g'), k('g')}, E(Submit))
	kb.Remove(k('g'))
	if _, bound, prefix := kb.Lookup([]ui.Key{k('g')}); bound || !prefix {
		t.Errorf("after Remove: bound=%v prefix=%v, want false, true", bound, prefix)
	}
	kb.Remove(k('g'), k('g'))
	if _, _, prefix := kb.Lookup([]ui.Key{k('g')}); prefix {
		t.Errorf("g is still a prefix after its only chord is removed")
	}
}

func TestKeybindings_BindingsAndClone(t *testing.T) {
	kb := New()
	kb.Add(k('b'), E(Submit))
	kb.AddSequence([]ui.Key{k('a'), k('c')}, E(Repaint))
	var got []string
	for _, b := range kb.Bindings() {
		got = append(got, SequenceString(b.Keys)+"="+b.Event.String())
	}
	if want := "a c=repaint b=submit"; strings.Join(got, " ") != want {
		t.Errorf("Bindings() = %v, want %v", got, want)
	}

	c := kb.Clone()
	c.Add(k('z'), E(Esc))
	if kb.Len() != 2 || c.Len() != 3 {
		t.Errorf("Len() = %d and %d after changing the clone, want 2 and 3", kb.Len(), c.Len())
	}
}

func TestParseSequence(t *testing.T) {
	tt.Test(t, tt.Fn("ParseSequence", ParseSequence),
		tt.Args("Ctrl-x Ctrl-e").Rets([]ui.Key{k('X', Ctrl), k('E', Ctrl)}, nil),
		tt.Args("g g").Rets([]ui.Key{k('g'), k('g')}, nil),
		tt.Args("Shift-w").Rets([]ui.Key{k('W')}, nil),
		tt.Args("Alt-Enter").Rets([]ui.Key{k(ui.Enter, Alt)}, nil),
	)
	for _, bad := range []string{"", "  ", "Hyper-x", "NoSuchKey"} {
		if _, err := ParseSequence(bad); err == nil {
			t.Errorf("ParseSequence(%q) returns nil error", bad)
		}
	}
}

func TestEventString(t *testing.T) {
	tt.Test(t, tt.Fn("String", Event.String),
		tt.Args(E(MenuNext)).Rets("menu_next"),
		tt.Args(MenuEvent(CompletionMenu)).Rets(`menu("completion_menu")`),
		tt.Args(HostCommand("ls")).Rets(`execute_host_command("ls")`),
		tt.Args(tabEvent()).Rets(`until_found[menu("completion_menu") menu_next]`),
		tt.Args(EditEvent(editor.CharCmd(editor.InsertChar, 'x'), editor.C(editor.Undo))).
			Rets(`edit[insert_char('x') undo]`),
	)
}

func TestEventKindNames(t *testing.T) {
	for kind := None; kind < numEventKinds; kind++ {
		got, ok := ParseEventKind(kind.String())
		if !ok || got != kind {
			t.Errorf("ParseEventKind(%q) = %v, %v", kind.String(), got, ok)
		}
	}
	if _, ok := ParseEventKind("bogus"); ok {
		t.Errorf("ParseEventKind(bogus) succeeds")
	}
}

func TestCombine(t *testing.T) {
	tt.Test(t, tt.Fn("Combine", func(evs ...Event) string { return Combine(evs...).String() }),
		tt.Args().Rets("none"),
		tt.Args(E(None), E(Submit)).Rets("submit"),
		tt.Args(E(Submit), E(None), E(Repaint)).Rets("multiple[submit repaint]"),
	)
}

// Inserts unbound printable keys, like an insert mode.
func insertFallback(k ui.Key) Event {
	if k.Mod == 0 && k.Rune >= ' ' {
		return EditEvent(editor.CharCmd(editor.InsertChar, k.Rune))
	}
	return Event{}
}

func chordBindings() *Keybindings {
	kb := New()
	kb.Add(k('X', Ctrl), E(Repaint))
	kb.AddSequence([]ui.Key{k('X', Ctrl), k('E', Ctrl)}, E(Submit))
	kb.AddSequence([]ui.Key{k('j'), k('k')}, E(Esc))
	kb.AddSequence([]ui.Key{k('j'), k('j'), k('j')}, E(ClearScreen))
	return kb
}

func TestSequencer_Feed(t *testing.T) {
	feed := func(keys ...ui.Key) []string {
		kb := chordBindings()
		var s Sequencer
		var evs []string
		for _, key := range keys {
			evs = append(evs, s.Feed(kb, key, insertFallback).String())
		}
		if s.Pending() {
			evs = append(evs, "pending "+SequenceString(s.PendingKeys()))
		}
		return evs
	}
	tt.Test(t, tt.Fn("feed", feed),
		tt.Args(k('a')).Rets([]string{"edit[insert_char('a')]"}),
		tt.Args(k('X', Ctrl), k('E', Ctrl)).Rets([]string{"none", "submit"}),
		tt.Args(k('j'), k('k')).Rets([]string{"none", "esc"}),
		tt.Args(k('j'), k('j'), k('j')).Rets([]string{"none", "none", "clear_screen"}),
		// A key that breaks the chord flushes it first.
		tt.Args(k('j'), k('x')).Rets([]string{
			"none", "multiple[edit[insert_char('j')] edit[insert_char('x')]]"}),
		// The pending key is bound on its own.
		tt.Args(k('X', Ctrl), k('a')).Rets([]string{
			"none", "multiple[repaint edit[insert_char('a')]]"}),
		// The breaking key starts a new chord.
		tt.Args(k('X', Ctrl), k('j')).Rets([]string{
			"none", "repaint", "pending j"}),
	)
}

func TestSequencer_Flush(t *testing.T) {
	kb := chordBindings()
	var s Sequencer
	s.Feed(kb, k('X', Ctrl), insertFallback)
	if got := s.Flush(kb, insertFallback).String(); got != "repaint" {
		t.Errorf("Flush() = %s, want repaint", got)
	}
	if s.Pending() {
		t.Errorf("still pending after Flush")
	}

	// The first key acts alone, the rest are replayed.
	s.Feed(kb, k('j'), insertFallback)
	s.Feed(kb, k('j'), insertFallback)
	want := "multiple[edit[insert_char('j')] edit[insert_char('j')]]"
	if got := s.Flush(kb, insertFallback).String(); got != want {
		t.Errorf("Flush() = %s, want %s", got, want)
	}

	if got := s.Flush(kb, insertFallback).String(); got != "none" {
		t.Errorf("Flush() with nothing pending = %s", got)
	}
}

func TestDefaultEmacs(t *testing.T) {
	kb := DefaultEmacs()
	find := func(key ui.Key) string {
		ev, _ := kb.Find(key)
		return ev.String()
	}
	tt.Test(t, tt.Fn("find", find),
		tt.Args(k(ui.Enter)).Rets("enter"),
		tt.Args(k('c', Ctrl)).Rets("ctrl_c"),
		tt.Args(k('w', Ctrl)).Rets("edit[cut_word_left]"),
		tt.Args(k(ui.Tab)).Rets(`until_found[menu("completion_menu") menu_next]`),
		tt.Args(k(ui.Right)).Rets("until_found[history_hint_complete menu_right right]"),
		tt.Args(k('f', Alt)).Rets("until_found[history_hint_word_complete edit[move_word_right]]"),
		tt.Args(k('a')).Rets("none"),
	)
	if _, bound, prefix := kb.Lookup([]ui.Key{k('X', Ctrl)}); bound || !prefix {
		t.Errorf("Ctrl-X: bound=%v prefix=%v, want a pure prefix", bound, prefix)
	}
}

func TestDefaultHelix(t *testing.T) {
	normal, selectMode := DefaultHelixNormal(), DefaultHelixSelect()
	ev, _ := normal.Find(k('w'))
	if got, want := ev.String(), "edit[clear_selection move_word_right_start[select]]"; got != want {
		t.Errorf("normal w = %s, want %s", got, want)
	}
	ev, _ = selectMode.Find(k('w'))
	if got, want := ev.String(), "edit[move_word_right_start[select]]"; got != want {
		t.Errorf("select w = %s, want %s", got, want)
	}
	ev, bound, _ := normal.Lookup([]ui.Key{k('g'), k('s')})
	if !bound || ev.String() != "edit[move_to_line_non_blank_start]" {
		t.Errorf("g s = %s, %v", ev, bound)
	}
}

func TestBuildEvent(t *testing.T) {
	build := func(spec EventSpec) (string, bool) {
		ev, err := BuildEvent(spec)
		return ev.String(), err == nil
	}
	tt.Test(t, tt.Fn("BuildEvent", build),
		tt.Args(EventSpec{Send: "menu_next"}).Rets("menu_next", true),
		tt.Args(EventSpec{Menu: "history_menu"}).Rets(`menu("history_menu")`, true),
		tt.Args(EventSpec{HostCommand: "clear"}).Rets(`execute_host_command("clear")`, true),
		tt.Args(EventSpec{Edit: []CommandSpec{
			{Cmd: "move_right_until", Char: "x"},
			{Cmd: "move_left", Select: true},
			{Cmd: "insert_string", Text: "hi"},
		}}).Rets(`edit[move_right_until('x') move_left[select] insert_string("hi")]`, true),
		tt.Args(EventSpec{UntilFound: []EventSpec{{Menu: "completion_menu"}, {Send: "menu_next"}}}).
			Rets(`until_found[menu("completion_menu") menu_next]`, true),
		tt.Args(EventSpec{Multiple: []EventSpec{{Send: "esc"}, {Send: "repaint"}}}).
			Rets("multiple[esc repaint]", true),

		tt.Args(EventSpec{}).Rets(tt.Any, false),
		tt.Args(EventSpec{Send: "edit"}).Rets(tt.Any, false),
		tt.Args(EventSpec{Send: "bogus"}).Rets(tt.Any, false),
		tt.Args(EventSpec{Send: "esc", Menu: "x"}).Rets(tt.Any, false),
		tt.Args(EventSpec{Edit: []CommandSpec{{Cmd: "bogus"}}}).Rets(tt.Any, false),
		tt.Args(EventSpec{Edit: []CommandSpec{{Cmd: "move_right_until"}}}).Rets(tt.Any, false),
		tt.Args(EventSpec{Edit: []CommandSpec{{Cmd: "move_right_until", Char: "ab"}}}).Rets(tt.Any, false),
		tt.Args(EventSpec{Edit: []CommandSpec{{Cmd: "undo", Select: true}}}).Rets(tt.Any, false),
	)
}

func TestSet_Apply(t *testing.T) {
	s := DefaultSet()
	err := s.Apply([]BindingSpec{
		{Mode: "emacs", Keys: []string{"Ctrl-x", "Ctrl-e"}, Event: EventSpec{Edit: []CommandSpec{{Cmd: "clear"}}}},
		{Mode: "vi_normal", Keys: []string{"g", "g"}, Event: EventSpec{Edit: []CommandSpec{{Cmd: "move_to_start"}}}},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	ev, bound, _ := s.Emacs.Lookup([]ui.Key{k('X', Ctrl), k('E', Ctrl)})
	if !bound || ev.String() != "edit[clear]" {
		t.Errorf("emacs Ctrl-X Ctrl-E = %s, %v", ev, bound)
	}
	if _, bound, _ := s.ViNormal.Lookup([]ui.Key{k('g'), k('g')}); !bound {
		t.Errorf("vi_normal g g is not bound")
	}
}

func TestSet_ApplyReportsEveryProblem(t *testing.T) {
	s := DefaultSet()
	before := s.Emacs.Len()
	err := s.Apply([]BindingSpec{
		{Mode: "emacs", Keys: []string{"Ctrl-q"}, Event: EventSpec{Send: "submit"}},
		{Mode: "vim", Keys: []string{"a"}, Event: EventSpec{Send: "submit"}},
		{Mode: "emacs", Keys: []string{"Hyper-a"}, Event: EventSpec{Send: "submit"}},
		{Mode: "emacs", Keys: []string{"a"}, Event: EventSpec{Edit: []CommandSpec{{Cmd: "fly"}}}},
		{Mode: "emacs", Event: EventSpec{Send: "submit"}},
	})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Apply returns %v, want *ConfigError", err)
	}
	if n := len(cfgErr.Problems); n != 4 {
		t.Errorf("got %d problems, want 4: %v", n, cfgErr.Problems)
	}
	if s.Emacs.Len() != before {
		t.Errorf("a failed Apply changed the keymap")
	}
}
