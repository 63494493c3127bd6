package undo

import "unicode"

// Kind classifies an edit for the purpose of grouping edits into undo units.
type Kind int

// Possible values for Kind.
const (
	// CreateUndoPoint always ends the current unit. It is also the kind of
	// the state before anything is recorded.
	CreateUndoPoint Kind = iota
	// InsertChar is the insertion of a single character.
	InsertChar
	// Backspace is the deletion of the character left of the cursor.
	Backspace
	// Delete is the deletion of the character right of the cursor.
	Delete
	// MoveCursor covers cursor moves and selection changes.
	MoveCursor
	// HistoryNavigation is the replacement of the buffer by a history entry.
	HistoryNavigation
	// UndoRedo is an undo or a redo.
	UndoRedo
)

var kindNames = [...]string{
	"create-undo-point", "insert-char", "backspace", "delete", "move-cursor",
	"history-navigation", "undo-redo",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Behavior describes one edit. Char is the character that was inserted or
// deleted, meaningful only when HasChar is true.
type Behavior struct {
	Kind    Kind
	Char    rune
	HasChar bool
}

// B returns a Behavior without a character.
func B(k Kind) Behavior { return Behavior{Kind: k} }

// BC returns a Behavior with a character.
func BC(k Kind, r rune) Behavior { return Behavior{k, r, true} }

// Checkpoint is an explicit boundary between units.
var Checkpoint = B(CreateUndoPoint)

// CreatesCheckpointAfter reports whether b, recorded right after prev, starts
// a new undo unit.
//
// Typing coalesces into words: the unit ends after a newline, or when
// whitespace follows a non-whitespace character. Runs of backspaces or deletes
// break the same way, seen from the deleting side.
func (b Behavior) CreatesCheckpointAfter(prev Behavior) bool {
	switch {
	case b.Kind == MoveCursor:
		return false
	case b.Kind == HistoryNavigation && prev.Kind == HistoryNavigation:
		return false
	case b.Kind == InsertChar && prev.Kind == InsertChar:
		if !b.HasChar || !prev.HasChar {
			return true
		}
		return isNewline(prev.Char) || (!unicode.IsSpace(prev.Char) && unicode.IsSpace(b.Char))
	case (b.Kind == Backspace && prev.Kind == Backspace) ||
		(b.Kind == Delete && prev.Kind == Delete):
		if !b.HasChar || !prev.HasChar {
			return false
		}
		return isNewline(b.Char) || (unicode.IsSpace(prev.Char) && !unicode.IsSpace(b.Char))
	default:
		return true
	}
}

func isNewline(r rune) bool { return r == '\n' || r == '\r' }
