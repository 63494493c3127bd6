package linebuf

import (
	"strings"
	"unicode"
)

// Deletions return the text they removed, so that callers can put it into a
// cut buffer.

// DeleteLeft deletes the cluster left of the cursor.
func (b *Buffer) DeleteLeft() string {
	return b.DeleteRange(b.GraphemeLeftIndex(), b.dot)
}

// DeleteRight deletes the cluster right of the cursor.
func (b *Buffer) DeleteRight() string {
	return b.DeleteRange(b.dot, b.GraphemeRightIndex())
}

// DeleteWordLeft deletes from the start of the word on the left to the cursor.
func (b *Buffer) DeleteWordLeft() string {
	return b.DeleteRange(b.WordLeftIndex(), b.dot)
}

// DeleteBigWordLeft deletes from the start of the WORD on the left to the
// cursor.
func (b *Buffer) DeleteBigWordLeft() string {
	return b.DeleteRange(b.BigWordLeftIndex(), b.dot)
}

// DeleteWordRight deletes from the cursor to the end of the word on the right.
func (b *Buffer) DeleteWordRight() string {
	return b.DeleteRange(b.dot, b.WordRightIndex())
}

// DeleteBigWordRight deletes from the cursor to the end of the WORD on the
// right.
func (b *Buffer) DeleteBigWordRight() string {
	return b.DeleteRange(b.dot, b.BigWordRightIndex())
}

// ClearToLineEnd deletes from the cursor to the end of the line, keeping the
// line terminator.
func (b *Buffer) ClearToLineEnd() string {
	return b.DeleteRange(b.dot, b.CurrentLineEnd())
}

// ClearToLineStart deletes from the start of the line to the cursor.
func (b *Buffer) ClearToLineStart() string {
	return b.DeleteRange(lineStart(b.content, b.dot), b.dot)
}

// ClearToEnd deletes from the cursor to the end of the buffer.
func (b *Buffer) ClearToEnd() string {
	return b.DeleteRange(b.dot, len(b.content))
}

// ClearToStart deletes from the start of the buffer to the cursor.
func (b *Buffer) ClearToStart() string {
	return b.DeleteRange(0, b.dot)
}

// DeleteCurrentLine deletes the current line with its terminator.
func (b *Buffer) DeleteCurrentLine() string {
	return b.DeleteRange(b.CurrentLineRange())
}

// DeleteRightUntil deletes from the cursor up to and including the next
// occurrence of r.
func (b *Buffer) DeleteRightUntil(r rune, currentLine bool) string {
	if _, to, ok := b.FindCharRight(r, currentLine); ok {
		return b.DeleteRange(b.dot, to)
	}
	return ""
}

// DeleteRightBefore deletes from the cursor up to the next occurrence of r.
func (b *Buffer) DeleteRightBefore(r rune, currentLine bool) string {
	if from, _, ok := b.FindCharRight(r, currentLine); ok {
		return b.DeleteRange(b.dot, from)
	}
	return ""
}

// DeleteLeftUntil deletes from the previous occurrence of r to the cursor.
func (b *Buffer) DeleteLeftUntil(r rune, currentLine bool) string {
	if from, _, ok := b.FindCharLeft(r, currentLine); ok {
		return b.DeleteRange(from, b.dot)
	}
	return ""
}

// DeleteLeftBefore deletes from after the previous occurrence of r to the
// cursor.
func (b *Buffer) DeleteLeftBefore(r rune, currentLine bool) string {
	if _, to, ok := b.FindCharLeft(r, currentLine); ok {
		return b.DeleteRange(to, b.dot)
	}
	return ""
}

// Transformations

// UppercaseWord uppercases the current word and moves after it.
func (b *Buffer) UppercaseWord() { b.mapWord(strings.ToUpper) }

// LowercaseWord lowercases the current word and moves after it.
func (b *Buffer) LowercaseWord() { b.mapWord(strings.ToLower) }

func (b *Buffer) mapWord(f func(string) string) {
	from, to := b.CurrentWordRange()
	b.replace(from, to, f(b.content[from:to]))
	b.dot = from
	b.MoveWordRight()
}

// SwitchcaseChar switches the case of the cluster under the cursor and moves
// right.
func (b *Buffer) SwitchcaseChar() {
	b.mapCluster(func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsUpper(r) {
				return unicode.ToLower(r)
			}
			return unicode.ToUpper(r)
		}, s)
	})
}

// CapitalizeChar uppercases the cluster under the cursor, or the first one of
// the next word when the cursor is on whitespace, and moves right.
func (b *Buffer) CapitalizeChar() {
	if b.OnWhitespace() {
		b.MoveWordRight()
		b.MoveWordLeft()
	}
	b.mapCluster(strings.ToUpper)
}

func (b *Buffer) mapCluster(f func(string) string) {
	from, to := b.dot, b.GraphemeRightIndex()
	if from == to {
		return
	}
	mapped := f(b.content[from:to])
	b.replace(from, to, mapped)
	b.dot = snap(b.content, from+len(mapped))
}

// ReplaceChar replaces the cluster under the cursor with r. The cursor stays
// in front of the new character.
func (b *Buffer) ReplaceChar(r rune) {
	from, to := b.dot, b.GraphemeRightIndex()
	if from == to {
		return
	}
	b.replace(from, to, string(r))
	b.dot = snap(b.content, from)
}

// ReplaceChars replaces n clusters starting at the cursor with text, and moves
// the cursor after the text. Nothing happens if fewer than n clusters follow
// the cursor.
func (b *Buffer) ReplaceChars(n int, text string) {
	to := b.dot
	for i := 0; i < n; i++ {
		if to == len(b.content) {
			return
		}
		to = nextBoundary(b.content, to)
	}
	b.Replace(b.dot, to, text)
}

// SwapWords exchanges the current word with the next one and moves after the
// latter. Nothing changes, the cursor included, when there is no next word.
func (b *Buffer) SwapWords() {
	from1, to1 := b.CurrentWordRange()
	if from1 == to1 || isWhitespace(b.content[from1:to1]) {
		return
	}
	from2, to2 := -1, -1
	forEachWord(b.content[to1:], func(i int, w string) bool {
		if isWhitespace(w) {
			return true
		}
		from2, to2 = to1+i, to1+i+len(w)
		return false
	})
	if from2 < 0 {
		return
	}
	w1, w2 := b.content[from1:to1], b.content[from2:to2]
	b.content = b.content[:from1] + w2 + b.content[to1:from2] + w1 + b.content[to2:]
	b.dot = snap(b.content, to2)
	b.hasAnchor = false
}

// SwapGraphemes exchanges the cluster before the cursor with the one after it.
// At the start of the buffer the first two clusters are swapped; at the end,
// the last two.
func (b *Buffer) SwapGraphemes() {
	switch b.dot {
	case 0:
		b.MoveRight()
	case len(b.content):
		b.MoveLeft()
	}
	mid := b.dot
	from, to := b.GraphemeLeftIndex(), b.GraphemeRightIndex()
	if from == mid || to == mid {
		return
	}
	b.replace(from, to, b.content[mid:to]+b.content[from:mid])
	b.dot = snap(b.content, to)
}
