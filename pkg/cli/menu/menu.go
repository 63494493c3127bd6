// Package menu implements the overlay menus of the line editor: a columnar
// completion grid and a paged history list, managed by a Controller that
// keeps at most one of them active.
package menu

import (
	"fmt"

	"github.com/elves/edline/pkg/cli/histutil"
	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/logutil"
	"github.com/elves/edline/pkg/ui"
)

var logger = logutil.GetLogger("[cli/menu] ")

// Suggestion is a candidate offered by a menu.
type Suggestion struct {
	// Text inserted when the suggestion is accepted.
	Value string
	// Text shown in the menu. Defaults to Value.
	Display ui.Text
	// Byte range of the buffer replaced on accept.
	From, To int
	// Whether a space is inserted after Value on accept.
	AppendSpace bool
}

func (s Suggestion) display() ui.Text {
	if s.Display != nil {
		return s.Display
	}
	return ui.T(s.Value)
}

// Completer produces suggestions for a buffer and a cursor byte offset.
type Completer interface {
	Complete(content string, dot int) ([]Suggestion, error)
}

// CompleterFunc adapts a function to a Completer.
type CompleterFunc func(content string, dot int) ([]Suggestion, error)

// Complete calls f.
func (f CompleterFunc) Complete(content string, dot int) ([]Suggestion, error) {
	return f(content, dot)
}

// Menu describes a menu that can be registered with a Controller.
type Menu struct {
	// Name used by Menu events.
	Name string
	// Source of the suggestions.
	Source Completer
	// Whether suggestions are laid out in columns instead of a list.
	Columnar bool
	// Title shown above the suggestions, if any.
	Title ui.Text
	// Maximum number of lines used by the suggestions.
	MaxLines int
	// Accept the only suggestion right away.
	Quick bool
	// Insert the prefix shared by all suggestions when it extends what was
	// typed.
	Partial bool
}

const (
	defaultCompletionLines = 8
	defaultHistoryLines    = 10
)

// NewCompletionMenu returns the columnar completion menu.
func NewCompletionMenu(c Completer, quick, partial bool) Menu {
	return Menu{
		Name: keymap.CompletionMenu, Source: c, Columnar: true,
		MaxLines: defaultCompletionLines, Quick: quick, Partial: partial}
}

// NewHistoryMenu returns the history menu, listing history entries containing
// the buffer, newest first. Accepting an entry replaces the whole buffer.
func NewHistoryMenu(store histutil.Store) Menu {
	return Menu{
		Name:     keymap.HistoryMenu,
		Source:   historySource{store},
		Title:    ui.T(" HISTORY ", ui.Bold, ui.BgMagenta),
		MaxLines: defaultHistoryLines,
	}
}

type historySource struct{ store histutil.Store }

func (s historySource) Complete(content string, dot int) ([]Suggestion, error) {
	cmds, err := s.store.Search(content)
	if err != nil {
		return nil, err
	}
	suggestions := make([]Suggestion, len(cmds))
	for i, cmd := range cmds {
		suggestions[i] = Suggestion{
			Value: cmd.Text, To: len(content),
			Display: ui.T(fmt.Sprintf("%4d %s", cmd.Seq, cmd.Text))}
	}
	return suggestions, nil
}
