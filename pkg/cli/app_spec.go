package cli

import (
	"time"

	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/cli/histutil"
	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/cli/menu"
	"github.com/elves/edline/pkg/cli/mode"
	"github.com/elves/edline/pkg/ui"
)

// AppSpec specifies the configuration and initial state for an App.
type AppSpec struct {
	TTY TTY
	// Maximum height of the frame. Zero or negative means the height of the
	// terminal.
	MaxHeight func() int

	EditMode mode.EditMode
	// Keymaps of all modes. The zero value means keymap.DefaultSet().
	Keymaps keymap.Set
	// How long to wait for the rest of a chord. Defaults to
	// DefaultChordTimeout.
	ChordTimeout time.Duration

	Prompt      Prompt
	Highlighter Highlighter
	// Returns the highlighter used while searching the history for a query.
	// Defaults to plain text.
	SearchHighlighter func(query string) Highlighter
	Hinter            Hinter
	Validator         Validator
	History           histutil.Store

	// Source of the completion menu. The menu is only registered when it is
	// non-nil.
	Completer Completer
	// Accept the only completion candidate right away.
	QuickCompletion bool
	// Insert the prefix shared by all completion candidates first.
	PartialCompletion bool

	// Clipboards for cut and paste, and for the commands working on the system
	// clipboard. Nil values mean separate local clipboards.
	CutBuffer, SystemClipboard editor.Clipboard

	// Makes the ClearScreen event end the session with CtrlL instead of
	// clearing the screen.
	ClearScreenExits bool
	// Keeps the right prompt after the line has been submitted.
	RPromptPersistent bool

	// Lines written by the printer show up above the frame.
	Printer *Printer
}

// DefaultChordTimeout is how long keys of an incomplete chord wait for more
// keys by default.
const DefaultChordTimeout = time.Second

// Completer is the source of completion candidates.
type Completer = menu.Completer

// Highlighter turns the content of the buffer into styled text. The text must
// have the same content as the buffer; otherwise it is ignored.
type Highlighter interface {
	Highlight(content string) ui.Text
}

// HighlighterFunc adapts a function to a Highlighter.
type HighlighterFunc func(content string) ui.Text

// Highlight calls f.
func (f HighlighterFunc) Highlight(content string) ui.Text { return f(content) }

// Hinter suggests text to follow the buffer, shown after the cursor when the
// cursor is at the end.
type Hinter interface {
	// Hint returns the styled hint, or nil.
	Hint(content string, dot int) ui.Text
	// Complete returns the whole of the last hint.
	Complete() string
	// NextToken returns the next token of the last hint.
	NextToken() string
}

// Validator decides whether the buffer is ready to be submitted.
type Validator interface {
	// Validate returns false when the buffer is incomplete, in which case
	// Enter inserts a newline.
	Validate(content string) bool
}

// ValidatorFunc adapts a function to a Validator.
type ValidatorFunc func(content string) bool

// Validate calls f.
func (f ValidatorFunc) Validate(content string) bool { return f(content) }

// Prompt supplies the text around the buffer.
type Prompt interface {
	// Left returns the text before the first line of the buffer. Everything
	// after its last newline shares the first line with the buffer.
	Left() ui.Text
	// Right returns the text shown at the right end of the first line when
	// there is room for it.
	Right() ui.Text
	// Indicator returns the text between Left and the buffer in a mode.
	Indicator(k mode.Kind) ui.Text
	// MultilineIndicator returns the prefix of continuation lines.
	MultilineIndicator() ui.Text
	// SearchIndicator replaces Indicator while searching the history.
	SearchIndicator(query string, failing bool) ui.Text
}

// ConstPrompt is a Prompt with a fixed left text, no right text and no mode
// indicator.
type ConstPrompt struct{ Content ui.Text }

// NewConstPrompt returns a ConstPrompt.
func NewConstPrompt(t ui.Text) ConstPrompt { return ConstPrompt{t} }

func (p ConstPrompt) Left() ui.Text             { return p.Content }
func (ConstPrompt) Right() ui.Text              { return nil }
func (ConstPrompt) Indicator(mode.Kind) ui.Text { return nil }
func (ConstPrompt) MultilineIndicator() ui.Text { return nil }
func (ConstPrompt) SearchIndicator(query string, failing bool) ui.Text {
	if failing {
		return ui.T("(failing search: " + query + ") ")
	}
	return ui.T("(search: " + query + ") ")
}

type lateUpdater interface {
	LateUpdates() <-chan struct{}
}

type triggerer interface {
	Trigger(force bool)
}
