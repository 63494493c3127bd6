// Package linebuf implements the text buffer of the line editor.
//
// The content is a UTF-8 string and positions are byte offsets ("dots") that
// are always kept on grapheme cluster boundaries. Methods that take or return
// a cursor measured in clusters say so explicitly.
package linebuf

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Buffer is an editable string with a cursor and an optional selection anchor.
// The zero value is an empty buffer.
type Buffer struct {
	content   string
	dot       int
	anchor    int
	hasAnchor bool
}

// New creates a Buffer with the given content and dot. The dot is snapped to a
// cluster boundary.
func New(content string, dot int) *Buffer {
	return &Buffer{content: content, dot: snap(content, dot)}
}

// Content returns the content of the buffer.
func (b *Buffer) Content() string { return b.content }

// Dot returns the cursor position as a byte offset.
func (b *Buffer) Dot() int { return b.dot }

// SetDot moves the cursor to the byte offset i, snapped to the preceding
// cluster boundary.
func (b *Buffer) SetDot(i int) { b.dot = snap(b.content, i) }

// Cursor returns the cursor position as a number of grapheme clusters.
func (b *Buffer) Cursor() int { return GraphemeCount(b.content[:b.dot]) }

// SetCursor moves the cursor after the first n grapheme clusters, clamped to
// the length of the buffer.
func (b *Buffer) SetCursor(n int) { b.dot = b.OffsetOf(n) }

// OffsetOf returns the byte offset of the grapheme index n, clamped to the
// buffer.
func (b *Buffer) OffsetOf(n int) int {
	i := 0
	state := -1
	rest := b.content
	var cluster string
	for ; n > 0 && rest != ""; n-- {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		i += len(cluster)
	}
	return i
}

// Len returns the number of grapheme clusters in the buffer.
func (b *Buffer) Len() int { return GraphemeCount(b.content) }

// IsEmpty returns whether the buffer has no content.
func (b *Buffer) IsEmpty() bool { return b.content == "" }

// AtEnd returns whether the cursor is after the last cluster.
func (b *Buffer) AtEnd() bool { return b.dot == len(b.content) }

// OnFirstLine returns whether the cursor is on the first line.
func (b *Buffer) OnFirstLine() bool {
	return !strings.Contains(b.content[:b.dot], "\n")
}

// OnLastLine returns whether the cursor is on the last line.
func (b *Buffer) OnLastLine() bool {
	return !strings.Contains(b.content[b.dot:], "\n")
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int { return strings.Count(b.content, "\n") + 1 }

// SetContent replaces the whole content and moves the cursor to the end. The
// selection is cleared.
func (b *Buffer) SetContent(s string) {
	b.content = s
	b.dot = len(s)
	b.hasAnchor = false
}

// Clear empties the buffer.
func (b *Buffer) Clear() { b.SetContent("") }

// Replaces content[from:to] with text. Positions inside the replaced span move
// to its start and positions after it shift with the text. Both the dot and
// the anchor are snapped again afterwards, since the text may join clusters
// with its neighbors.
func (b *Buffer) replace(from, to int, text string) {
	b.content = b.content[:from] + text + b.content[to:]
	adjust := func(p int) int {
		switch {
		case p <= from:
			return p
		case p < to:
			return from
		default:
			return p - (to - from) + len(text)
		}
	}
	b.dot = snap(b.content, adjust(b.dot))
	if b.hasAnchor {
		b.anchor = snap(b.content, adjust(b.anchor))
	}
}

// Insert inserts text at the cursor and moves the cursor after it.
func (b *Buffer) Insert(text string) {
	at := b.dot
	b.replace(at, at, text)
	b.dot = snap(b.content, at+len(text))
}

// InsertChar inserts a single rune at the cursor.
func (b *Buffer) InsertChar(r rune) { b.Insert(string(r)) }

// InsertNewline inserts a line feed at the cursor.
func (b *Buffer) InsertNewline() { b.Insert("\n") }

// Replace replaces the byte range [from, to) with text and puts the cursor
// after the inserted text. The range is clamped, ordered and snapped.
func (b *Buffer) Replace(from, to int, text string) {
	from, to = b.normRange(from, to)
	b.replace(from, to, text)
	b.dot = snap(b.content, from+len(text))
}

// DeleteRange removes the byte range [from, to) and returns the removed text.
// The range is clamped, ordered and snapped. A cursor inside the range moves
// to its start.
func (b *Buffer) DeleteRange(from, to int) string {
	from, to = b.normRange(from, to)
	removed := b.content[from:to]
	b.replace(from, to, "")
	return removed
}

func (b *Buffer) normRange(from, to int) (int, int) {
	if from > to {
		from, to = to, from
	}
	return snap(b.content, from), snap(b.content, to)
}

// Slice returns content[from:to] with the range clamped, ordered and snapped.
func (b *Buffer) Slice(from, to int) string {
	from, to = b.normRange(from, to)
	return b.content[from:to]
}

// Selection

// SetAnchor starts a selection at the cursor.
func (b *Buffer) SetAnchor() {
	b.anchor = b.dot
	b.hasAnchor = true
}

// HasAnchor returns whether a selection is active.
func (b *Buffer) HasAnchor() bool { return b.hasAnchor }

// Anchor returns the selection anchor as a byte offset.
func (b *Buffer) Anchor() int { return b.anchor }

// ClearSelection drops the selection anchor.
func (b *Buffer) ClearSelection() { b.hasAnchor = false }

// Selection returns the selected byte range. The cluster at the later of the
// anchor and the cursor is included, so a selection always covers at least one
// cluster unless the buffer is empty.
func (b *Buffer) Selection() (from, to int, ok bool) {
	if !b.hasAnchor {
		return 0, 0, false
	}
	lo, hi := b.anchor, b.dot
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, nextBoundary(b.content, hi), true
}

// SelectAll selects the whole buffer, leaving the cursor at the end.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.hasAnchor = true
	b.dot = len(b.content)
}

// SwapCursorAndAnchor exchanges the cursor and the anchor of the selection.
func (b *Buffer) SwapCursorAndAnchor() {
	if b.hasAnchor {
		b.anchor, b.dot = b.dot, b.anchor
	}
}

// Ranges

// CurrentLineRange returns the range of the line the cursor is on, including
// its terminating line feed if any.
func (b *Buffer) CurrentLineRange() (from, to int) {
	from = lineStart(b.content, b.dot)
	if i := strings.IndexByte(b.content[b.dot:], '\n'); i >= 0 {
		return from, b.dot + i + 1
	}
	return from, len(b.content)
}

// CurrentLineEnd returns the position of the line terminator of the current
// line, or the end of the buffer on the last line.
func (b *Buffer) CurrentLineEnd() int {
	i := strings.IndexByte(b.content[b.dot:], '\n')
	if i < 0 {
		return len(b.content)
	}
	end := b.dot + i
	if end > 0 && b.content[end-1] == '\r' {
		end--
	}
	return end
}

// CurrentWordRange returns the range of the word under or right after the
// cursor.
func (b *Buffer) CurrentWordRange() (from, to int) {
	to = b.WordRightIndex()
	return lastWordStart(b.content[:to]), to
}

func lastWordStart(s string) int {
	start := 0
	forEachWord(s, func(i int, w string) bool {
		if !isWhitespace(w) {
			start = i
		}
		return true
	})
	return start
}

// OnWhitespace returns whether the character under the cursor is whitespace.
func (b *Buffer) OnWhitespace() bool {
	r, ok := firstRune(b.content[b.dot:])
	return ok && unicode.IsSpace(r)
}

// GraphemeRight returns the cluster right of the cursor.
func (b *Buffer) GraphemeRight() string {
	return b.content[b.dot:nextBoundary(b.content, b.dot)]
}

// GraphemeLeft returns the cluster left of the cursor.
func (b *Buffer) GraphemeLeft() string {
	return b.content[prevBoundary(b.content, b.dot):b.dot]
}
