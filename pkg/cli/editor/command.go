// Package editor executes edit commands against a line buffer, keeping the
// undo history and the cut buffer up to date.
package editor

import "fmt"

// Kind identifies an edit command.
type Kind int

// Possible values for Kind. Moves honor Command.Select; the char search
// commands take Command.Char.
const (
	NoCommand Kind = iota

	MoveToStart
	MoveToEnd
	MoveToLineStart
	MoveToLineEnd
	MoveToLineNonBlankStart
	MoveLeft
	MoveRight
	MoveWordLeft
	MoveBigWordLeft
	MoveWordRight
	MoveBigWordRight
	MoveWordRightStart
	MoveBigWordRightStart
	MoveWordRightEnd
	MoveBigWordRightEnd
	// MoveToPosition moves to the grapheme index Command.N.
	MoveToPosition
	MoveRightUntil
	MoveRightBefore
	MoveLeftUntil
	MoveLeftBefore
	// MoveLeftInLine moves one cluster left without leaving the line.
	MoveLeftInLine
	MoveLineUp
	MoveLineDown

	InsertChar
	InsertString
	InsertNewline
	ReplaceChar
	// ReplaceChars replaces Command.N clusters with Command.Text.
	ReplaceChars
	Backspace
	Delete
	CutChar
	BackspaceWord
	DeleteWord
	Clear
	ClearToLineEnd
	CutCurrentLine
	CutFromStart
	CutFromLineStart
	CutToEnd
	CutToLineEnd
	CutWordLeft
	CutBigWordLeft
	CutWordRight
	CutBigWordRight
	CutWordRightToNext
	CutBigWordRightToNext
	CutRightUntil
	CutRightBefore
	CutLeftUntil
	CutLeftBefore
	PasteCutBufferBefore
	PasteCutBufferAfter
	UppercaseWord
	LowercaseWord
	CapitalizeChar
	SwitchcaseChar
	SwapWords
	SwapGraphemes
	Undo
	Redo
	SelectAll
	CutSelection
	CopySelection
	Paste
	CopySelectionSystem
	CutSelectionSystem
	PasteSystem
	ClearSelection
	SwapCursorAndAnchor
	// Collapse the selection onto one of its ends.
	MoveToSelectionStart
	MoveToSelectionEnd
	Complete

	// Copies of a span into the cut buffer, used by the vi yank operator.
	CopyFromStart
	CopyFromLineStart
	CopyToEnd
	CopyToLineEnd
	CopyCurrentLine
	CopyWordLeft
	CopyBigWordLeft
	CopyWordRight
	CopyBigWordRight
	CopyWordRightToNext
	CopyBigWordRightToNext
	CopyRightUntil
	CopyRightBefore
	CopyLeftUntil
	CopyLeftBefore

	numKinds
)

var kindNames = [...]string{
	NoCommand: "none",

	MoveToStart:             "move_to_start",
	MoveToEnd:               "move_to_end",
	MoveToLineStart:         "move_to_line_start",
	MoveToLineEnd:           "move_to_line_end",
	MoveToLineNonBlankStart: "move_to_line_non_blank_start",
	MoveLeft:                "move_left",
	MoveRight:               "move_right",
	MoveWordLeft:            "move_word_left",
	MoveBigWordLeft:         "move_big_word_left",
	MoveWordRight:           "move_word_right",
	MoveBigWordRight:        "move_big_word_right",
	MoveWordRightStart:      "move_word_right_start",
	MoveBigWordRightStart:   "move_big_word_right_start",
	MoveWordRightEnd:        "move_word_right_end",
	MoveBigWordRightEnd:     "move_big_word_right_end",
	MoveToPosition:          "move_to_position",
	MoveRightUntil:          "move_right_until",
	MoveRightBefore:         "move_right_before",
	MoveLeftUntil:           "move_left_until",
	MoveLeftBefore:          "move_left_before",
	MoveLeftInLine:          "move_left_in_line",
	MoveLineUp:              "move_line_up",
	MoveLineDown:            "move_line_down",

	InsertChar:            "insert_char",
	InsertString:          "insert_string",
	InsertNewline:         "insert_newline",
	ReplaceChar:           "replace_char",
	ReplaceChars:          "replace_chars",
	Backspace:             "backspace",
	Delete:                "delete",
	CutChar:               "cut_char",
	BackspaceWord:         "backspace_word",
	DeleteWord:            "delete_word",
	Clear:                 "clear",
	ClearToLineEnd:        "clear_to_line_end",
	CutCurrentLine:        "cut_current_line",
	CutFromStart:          "cut_from_start",
	CutFromLineStart:      "cut_from_line_start",
	CutToEnd:              "cut_to_end",
	CutToLineEnd:          "cut_to_line_end",
	CutWordLeft:           "cut_word_left",
	CutBigWordLeft:        "cut_big_word_left",
	CutWordRight:          "cut_word_right",
	CutBigWordRight:       "cut_big_word_right",
	CutWordRightToNext:    "cut_word_right_to_next",
	CutBigWordRightToNext: "cut_big_word_right_to_next",
	CutRightUntil:         "cut_right_until",
	CutRightBefore:        "cut_right_before",
	CutLeftUntil:          "cut_left_until",
	CutLeftBefore:         "cut_left_before",
	PasteCutBufferBefore:  "paste_cut_buffer_before",
	PasteCutBufferAfter:   "paste_cut_buffer_after",
	UppercaseWord:         "uppercase_word",
	LowercaseWord:         "lowercase_word",
	CapitalizeChar:        "capitalize_char",
	SwitchcaseChar:        "switchcase_char",
	SwapWords:             "swap_words",
	SwapGraphemes:         "swap_graphemes",
	Undo:                  "undo",
	Redo:                  "redo",
	SelectAll:             "select_all",
	CutSelection:          "cut_selection",
	CopySelection:         "copy_selection",
	Paste:                 "paste",
	CopySelectionSystem:   "copy_selection_system",
	CutSelectionSystem:    "cut_selection_system",
	PasteSystem:           "paste_system",
	ClearSelection:        "clear_selection",
	SwapCursorAndAnchor:   "swap_cursor_and_anchor",
	MoveToSelectionStart:  "move_to_selection_start",
	MoveToSelectionEnd:    "move_to_selection_end",
	Complete:              "complete",

	CopyFromStart:          "copy_from_start",
	CopyFromLineStart:      "copy_from_line_start",
	CopyToEnd:              "copy_to_end",
	CopyToLineEnd:          "copy_to_line_end",
	CopyCurrentLine:        "copy_current_line",
	CopyWordLeft:           "copy_word_left",
	CopyBigWordLeft:        "copy_big_word_left",
	CopyWordRight:          "copy_word_right",
	CopyBigWordRight:       "copy_big_word_right",
	CopyWordRightToNext:    "copy_word_right_to_next",
	CopyBigWordRightToNext: "copy_big_word_right_to_next",
	CopyRightUntil:         "copy_right_until",
	CopyRightBefore:        "copy_right_before",
	CopyLeftUntil:          "copy_left_until",
	CopyLeftBefore:         "copy_left_before",
}

var kindByName = make(map[string]Kind, numKinds)

func init() {
	for k, name := range kindNames {
		kindByName[name] = Kind(k)
	}
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind with the given name, as used in configuration
// files.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// NeedsChar returns whether commands of the kind need a character argument.
func (k Kind) NeedsChar() bool {
	switch k {
	case InsertChar, ReplaceChar,
		MoveRightUntil, MoveRightBefore, MoveLeftUntil, MoveLeftBefore,
		CutRightUntil, CutRightBefore, CutLeftUntil, CutLeftBefore,
		CopyRightUntil, CopyRightBefore, CopyLeftUntil, CopyLeftBefore:
		return true
	}
	return false
}

// NeedsText returns whether commands of the kind need a text argument.
func (k Kind) NeedsText() bool { return k == InsertString || k == ReplaceChars }

// IsMove returns whether the kind only moves the cursor.
func (k Kind) IsMove() bool { return MoveToStart <= k && k <= MoveLineDown }

// Command is an edit command with its arguments.
type Command struct {
	Kind Kind
	// Character argument of char searches, InsertChar and ReplaceChar.
	Char rune
	// Text argument of InsertString and ReplaceChars.
	Text string
	// For moves, whether to extend the selection instead of clearing it.
	Select bool
	// Numeric argument of MoveToPosition and ReplaceChars.
	N int
}

// C returns a Command without arguments.
func C(k Kind) Command { return Command{Kind: k} }

// Sel returns a move Command that extends the selection.
func Sel(k Kind) Command { return Command{Kind: k, Select: true} }

// CharCmd returns a Command with a character argument.
func CharCmd(k Kind, r rune) Command { return Command{Kind: k, Char: r} }

// TextCmd returns a Command with a text argument.
func TextCmd(k Kind, s string) Command { return Command{Kind: k, Text: s} }

func (c Command) String() string {
	s := c.Kind.String()
	switch {
	case c.Kind.NeedsChar():
		s += fmt.Sprintf("(%q)", c.Char)
	case c.Kind == InsertString:
		s += fmt.Sprintf("(%q)", c.Text)
	case c.Kind == ReplaceChars:
		s += fmt.Sprintf("(%d, %q)", c.N, c.Text)
	case c.Kind == MoveToPosition:
		s += fmt.Sprintf("(%d)", c.N)
	}
	if c.Select {
		s += "[select]"
	}
	return s
}

// EditType classifies a command for the undo history.
type EditType int

// Possible values for EditType.
const (
	// TypeMoveCursor commands only move the cursor or change the selection.
	TypeMoveCursor EditType = iota
	// TypeUndoRedo commands walk the undo history.
	TypeUndoRedo
	// TypeEditText commands change the text.
	TypeEditText
	// TypeNoOp commands change neither the text nor the cursor.
	TypeNoOp
)

// EditType returns the EditType of the command.
func (c Command) EditType() EditType {
	switch {
	case c.Kind.IsMove(), c.Kind == SelectAll, c.Kind == ClearSelection,
		c.Kind == SwapCursorAndAnchor, c.Kind == MoveToSelectionStart,
		c.Kind == MoveToSelectionEnd:
		return TypeMoveCursor
	case c.Kind == Undo, c.Kind == Redo:
		return TypeUndoRedo
	case c.Kind == NoCommand, c.Kind == CopySelection,
		c.Kind == CopySelectionSystem,
		CopyFromStart <= c.Kind && c.Kind <= CopyLeftBefore:
		return TypeNoOp
	default:
		return TypeEditText
	}
}
