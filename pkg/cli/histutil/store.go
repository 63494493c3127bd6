// Package histutil provides the command history used by the line editor:
// stores backed by memory, a flat file or a database, and cursors walking
// them.
package histutil

import (
	"errors"
	"strings"

	"github.com/elves/edline/pkg/logutil"
	"github.com/elves/edline/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[cli/histutil] ")

// ErrEndOfHistory is returned by Cursor.Get when the cursor is beyond either
// end of the history.
var ErrEndOfHistory = errors.New("end of history")

// Store is an abstract interface for history store.
type Store interface {
	// AddCmd adds a new command history entry and returns its sequence number.
	// Depending on the implementation, the Store might respect the sequence
	// number of the entry or ignore it.
	AddCmd(text string) (int, error)
	// Cmd returns the text of the entry with the sequence number.
	Cmd(seq int) (string, error)
	// AllCmds returns all commands kept in the store, oldest first.
	AllCmds() ([]storedefs.Cmd, error)
	// Search returns the entries containing query, newest first. Of entries
	// with the same text only the newest is kept.
	Search(query string) ([]storedefs.Cmd, error)
	// Cursor returns a cursor that iterates through commands with the given
	// prefix, skipping duplicates. The cursor should start in the
	// "end of history" state.
	Cursor(prefix string) Cursor
}

// Cursor is used to navigate a Store.
type Cursor interface {
	// Prev moves the cursor to the previous command.
	Prev()
	// Next moves the cursor to the next command.
	Next()
	// Get returns the command the cursor is currently at, or any error if the
	// cursor is in an invalid state. If the cursor is "over the edge", the
	// error is ErrEndOfHistory.
	Get() (storedefs.Cmd, error)
}

func searchCmds(cmds []storedefs.Cmd, query string) []storedefs.Cmd {
	var found []storedefs.Cmd
	seen := map[string]bool{}
	for i := len(cmds) - 1; i >= 0; i-- {
		text := cmds[i].Text
		if !seen[text] && strings.Contains(text, query) {
			seen[text] = true
			found = append(found, cmds[i])
		}
	}
	return found
}
