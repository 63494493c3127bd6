package keymap

import (
	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/ui"
)

// Names of the menus shipped with the editor.
const (
	CompletionMenu = "completion_menu"
	HistoryMenu    = "history_menu"
)

func k(r rune, mods ...ui.Mod) ui.Key { return ui.K(r, mods...) }

func edit(kinds ...editor.Kind) Event { return EditKinds(kinds...) }

func sel(kind editor.Kind) Event { return EditEvent(editor.Sel(kind)) }

// The completion menu opens on the first Tab and cycles on later ones.
func tabEvent() Event {
	return UntilFoundEvent(MenuEvent(CompletionMenu), E(MenuNext))
}

func addControlBindings(kb *Keybindings) {
	kb.Add(k('C', Ctrl), E(CtrlC))
	kb.Add(k('D', Ctrl), E(CtrlD))
	kb.Add(k('L', Ctrl), E(ClearScreen))
	kb.Add(k('R', Ctrl), E(SearchHistory))
	kb.Add(k('O', Ctrl), MenuEvent(HistoryMenu))
}

func addNavigationBindings(kb *Keybindings) {
	kb.Add(k('P', Ctrl), UntilFoundEvent(E(MenuUp), E(Up)))
	kb.Add(k('N', Ctrl), UntilFoundEvent(E(MenuDown), E(Down)))
	kb.Add(k(ui.Up), UntilFoundEvent(E(MenuUp), E(Up)))
	kb.Add(k(ui.Down), UntilFoundEvent(E(MenuDown), E(Down)))
	kb.Add(k(ui.Left), UntilFoundEvent(E(MenuLeft), E(Left)))
	kb.Add(k(ui.Right), UntilFoundEvent(E(HistoryHintComplete), E(MenuRight), E(Right)))
	kb.Add(k(ui.Left, Ctrl), edit(editor.MoveWordLeft))
	kb.Add(k(ui.Right, Ctrl), UntilFoundEvent(E(HistoryHintWordComplete), edit(editor.MoveWordRight)))
	kb.Add(k(ui.Home), edit(editor.MoveToLineStart))
	kb.Add(k(ui.End), UntilFoundEvent(E(HistoryHintComplete), edit(editor.MoveToLineEnd)))
	kb.Add(k(ui.Home, Ctrl), edit(editor.MoveToStart))
	kb.Add(k(ui.End, Ctrl), edit(editor.MoveToEnd))
	kb.Add(k(ui.Tab, Shift), E(MenuPrevious))
	kb.Add(k(ui.PageUp), E(MenuPagePrevious))
	kb.Add(k(ui.PageDown), E(MenuPageNext))
}

func addEditBindings(kb *Keybindings) {
	kb.Add(k(ui.Backspace), edit(editor.Backspace))
	kb.Add(k('H', Ctrl), edit(editor.Backspace))
	kb.Add(k(ui.Delete), edit(editor.Delete))
	kb.Add(k(ui.Backspace, Alt), edit(editor.BackspaceWord))
	kb.Add(k(ui.Delete, Alt), edit(editor.DeleteWord))
	kb.Add(k(ui.Delete, Ctrl), edit(editor.DeleteWord))
	kb.Add(k(ui.Enter, Alt), edit(editor.InsertNewline))
	kb.Add(k(ui.Tab), tabEvent())
}

func addSelectionBindings(kb *Keybindings) {
	kb.Add(k(ui.Left, Shift), sel(editor.MoveLeft))
	kb.Add(k(ui.Right, Shift), sel(editor.MoveRight))
	kb.Add(k(ui.Left, Shift, Ctrl), sel(editor.MoveWordLeft))
	kb.Add(k(ui.Right, Shift, Ctrl), sel(editor.MoveWordRight))
	kb.Add(k(ui.Home, Shift), sel(editor.MoveToLineStart))
	kb.Add(k(ui.End, Shift), sel(editor.MoveToLineEnd))
	kb.Add(k(ui.Home, Shift, Ctrl), sel(editor.MoveToStart))
	kb.Add(k(ui.End, Shift, Ctrl), sel(editor.MoveToEnd))
}

// DefaultEmacs returns the default bindings of the Emacs mode.
func DefaultEmacs() *Keybindings {
	kb := New()
	addControlBindings(kb)
	addNavigationBindings(kb)
	addEditBindings(kb)
	addSelectionBindings(kb)
	kb.Add(k(ui.Enter), E(Enter))
	kb.Add(ui.Esc, E(Esc))

	kb.Add(k('A', Ctrl), edit(editor.MoveToLineStart))
	kb.Add(k('E', Ctrl), UntilFoundEvent(E(HistoryHintComplete), edit(editor.MoveToLineEnd)))
	kb.Add(k('B', Ctrl), UntilFoundEvent(E(MenuLeft), E(Left)))
	kb.Add(k('F', Ctrl), UntilFoundEvent(E(HistoryHintComplete), E(MenuRight), E(Right)))
	kb.Add(k('G', Ctrl), edit(editor.Redo))
	kb.Add(k('Z', Ctrl), edit(editor.Undo))
	kb.Add(k('Y', Ctrl), edit(editor.PasteCutBufferBefore))
	kb.Add(k('W', Ctrl), edit(editor.CutWordLeft))
	kb.Add(k('K', Ctrl), edit(editor.CutToLineEnd))
	kb.Add(k('U', Ctrl), edit(editor.CutFromStart))
	kb.Add(k('T', Ctrl), edit(editor.SwapGraphemes))

	kb.Add(k('b', Alt), edit(editor.MoveWordLeft))
	kb.Add(k('f', Alt), UntilFoundEvent(E(HistoryHintWordComplete), edit(editor.MoveWordRight)))
	kb.Add(k(ui.Left, Alt), edit(editor.MoveWordLeft))
	kb.Add(k(ui.Right, Alt), UntilFoundEvent(E(HistoryHintWordComplete), edit(editor.MoveWordRight)))
	kb.Add(k('d', Alt), edit(editor.CutWordRight))
	kb.Add(k('m', Alt), edit(editor.BackspaceWord))
	kb.Add(k('u', Alt), edit(editor.UppercaseWord))
	kb.Add(k('l', Alt), edit(editor.LowercaseWord))
	kb.Add(k('c', Alt), edit(editor.CapitalizeChar))
	kb.Add(k('t', Alt), edit(editor.SwapWords))

	// Chords.
	kb.AddSequence([]ui.Key{k('X', Ctrl), k('U', Ctrl)}, edit(editor.Undo))
	kb.AddSequence([]ui.Key{k('X', Ctrl), k('u')}, edit(editor.Undo))
	kb.AddSequence([]ui.Key{k('X', Ctrl), k('X', Ctrl)}, edit(editor.SwapCursorAndAnchor))
	kb.AddSequence([]ui.Key{k('X', Ctrl), k('h')}, edit(editor.SelectAll))
	return kb
}

// DefaultViInsert returns the default bindings of the Vi insert mode. Esc is
// handled by the mode itself.
func DefaultViInsert() *Keybindings {
	kb := New()
	addControlBindings(kb)
	addNavigationBindings(kb)
	addEditBindings(kb)
	addSelectionBindings(kb)
	kb.Add(k(ui.Enter), E(Enter))
	kb.Add(k('W', Ctrl), edit(editor.CutWordLeft))
	kb.Add(k('U', Ctrl), edit(editor.CutFromStart))
	return kb
}

// DefaultViNormal returns the default bindings of the Vi normal mode. Keys
// without a binding go to the Vi command parser, so printable keys are
// usually left unbound.
func DefaultViNormal() *Keybindings {
	kb := New()
	addControlBindings(kb)
	addNavigationBindings(kb)
	kb.Add(k(ui.Enter), E(Enter))
	kb.Add(k(ui.Backspace), UntilFoundEvent(E(MenuLeft), E(Left)))
	kb.Add(k(ui.Delete), edit(editor.Delete))
	kb.Add(k('R', Ctrl), edit(editor.Redo))
	return kb
}

func addHelixCommonBindings(kb *Keybindings) {
	kb.Add(k(ui.Enter), E(Enter))
	kb.Add(k('C', Ctrl), E(CtrlC))
	kb.Add(k('D', Ctrl), E(CtrlD))
	kb.Add(k('L', Ctrl), E(ClearScreen))
	kb.Add(k('R', Ctrl), E(SearchHistory))
	kb.Add(k(ui.Up), UntilFoundEvent(E(MenuUp), E(Up)))
	kb.Add(k(ui.Down), UntilFoundEvent(E(MenuDown), E(Down)))

	kb.Add(k('x'), EditEvent(editor.C(editor.MoveToLineStart), editor.Sel(editor.MoveToLineEnd)))
	kb.Add(k('d'), edit(editor.CutSelection))
	kb.Add(k('y'), edit(editor.CopySelection))
	kb.Add(k('p'), edit(editor.PasteCutBufferAfter))
	kb.Add(k('P'), edit(editor.PasteCutBufferBefore))
	kb.Add(k(';'), edit(editor.ClearSelection))
	kb.Add(k(';', Alt), edit(editor.SwapCursorAndAnchor))
	kb.Add(k('u'), edit(editor.Undo))
	kb.Add(k('U'), edit(editor.Redo))
	kb.Add(k('%'), edit(editor.SelectAll))

	kb.AddSequence([]ui.Key{k('g'), k('h')}, edit(editor.MoveToLineStart))
	kb.AddSequence([]ui.Key{k('g'), k('l')}, edit(editor.MoveToLineEnd))
	kb.AddSequence([]ui.Key{k('g'), k('s')}, edit(editor.MoveToLineNonBlankStart))
	kb.AddSequence([]ui.Key{k('g'), k('g')}, edit(editor.MoveToStart))
	kb.AddSequence([]ui.Key{k('g'), k('e')}, edit(editor.MoveToEnd))
}

var helixMotions = map[rune]editor.Kind{
	'w': editor.MoveWordRightStart,
	'b': editor.MoveWordLeft,
	'e': editor.MoveWordRightEnd,
	'W': editor.MoveBigWordRightStart,
	'B': editor.MoveBigWordLeft,
	'E': editor.MoveBigWordRightEnd,
	'0': editor.MoveToLineStart,
	'$': editor.MoveToLineEnd,
}

// DefaultHelixNormal returns the default bindings of the Helix normal mode.
// Word motions select the text they move over, starting from the cursor.
func DefaultHelixNormal() *Keybindings {
	kb := New()
	addHelixCommonBindings(kb)
	kb.Add(k('h'), edit(editor.MoveLeft))
	kb.Add(k('l'), edit(editor.MoveRight))
	kb.Add(k(ui.Left), edit(editor.MoveLeft))
	kb.Add(k(ui.Right), edit(editor.MoveRight))
	for r, kind := range helixMotions {
		kb.Add(k(r), EditEvent(editor.C(editor.ClearSelection), editor.Sel(kind)))
	}
	return kb
}

// DefaultHelixSelect returns the default bindings of the Helix select mode,
// where every motion extends the selection from the existing anchor.
func DefaultHelixSelect() *Keybindings {
	kb := New()
	addHelixCommonBindings(kb)
	kb.Add(k('h'), sel(editor.MoveLeft))
	kb.Add(k('l'), sel(editor.MoveRight))
	kb.Add(k(ui.Left), sel(editor.MoveLeft))
	kb.Add(k(ui.Right), sel(editor.MoveRight))
	for r, kind := range helixMotions {
		kb.Add(k(r), sel(kind))
	}
	return kb
}

// DefaultHelixInsert returns the default bindings of the Helix insert mode.
// Esc is handled by the mode itself.
func DefaultHelixInsert() *Keybindings {
	kb := New()
	addControlBindings(kb)
	addNavigationBindings(kb)
	addEditBindings(kb)
	kb.Add(k(ui.Enter), E(Enter))
	return kb
}
