// Package hint provides inline hints drawn from the command history.
package hint

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/elves/edline/pkg/cli/histutil"
	"github.com/elves/edline/pkg/logutil"
	"github.com/elves/edline/pkg/ui"
)

var logger = logutil.GetLogger("[cli/hint] ")

// Style of hints.
var Style = ui.Stylings(ui.FgBrightBlack)

// HistoryHinter suggests the rest of the newest history entry that extends the
// buffer. It remembers the last hint for Complete and NextToken.
type HistoryHinter struct {
	store    histutil.Store
	minChars int
	current  string
}

// NewHistoryHinter creates a HistoryHinter that hints once the buffer has at
// least one character.
func NewHistoryHinter(store histutil.Store) *HistoryHinter {
	return &HistoryHinter{store: store, minChars: 1}
}

// WithMinChars sets the number of characters the buffer must have before a
// hint is shown. It returns h itself.
func (h *HistoryHinter) WithMinChars(n int) *HistoryHinter {
	h.minChars = n
	return h
}

// Hint computes the hint for the buffer and returns it styled. Errors from the
// store are logged and result in no hint.
func (h *HistoryHinter) Hint(content string, dot int) ui.Text {
	h.current = ""
	if h.store == nil || len([]rune(content)) < h.minChars {
		return nil
	}
	c := h.store.Cursor(content)
	c.Prev()
	cmd, err := c.Get()
	if err != nil {
		if err != histutil.ErrEndOfHistory {
			logger.Println("hint:", err)
		}
		return nil
	}
	h.current = strings.TrimPrefix(cmd.Text, content)
	if h.current == "" {
		return nil
	}
	return ui.T(h.current, Style)
}

// Complete returns the whole of the last hint.
func (h *HistoryHinter) Complete() string { return h.current }

// NextToken returns the leading whitespace of the last hint followed by its
// first word.
func (h *HistoryHinter) NextToken() string {
	s := h.current
	state := -1
	n := 0
	for s != "" {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		n += len(word)
		if !isSpace(word) {
			break
		}
	}
	return h.current[:n]
}

func isSpace(s string) bool {
	return strings.TrimLeftFunc(s, unicode.IsSpace) == ""
}
