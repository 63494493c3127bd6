package linebuf

// The *Index methods compute target positions relative to the cursor without
// changing the buffer. The Move* methods move the cursor to them.

// GraphemeRightIndex returns the position after the cluster right of the
// cursor.
func (b *Buffer) GraphemeRightIndex() int { return nextBoundary(b.content, b.dot) }

// GraphemeLeftIndex returns the position before the cluster left of the
// cursor.
func (b *Buffer) GraphemeLeftIndex() int { return prevBoundary(b.content, b.dot) }

// WordRightIndex returns the position after the next word right of the
// cursor.
func (b *Buffer) WordRightIndex() int {
	pos := len(b.content)
	forEachWord(b.content[b.dot:], func(i int, w string) bool {
		if isWhitespace(w) {
			return true
		}
		pos = b.dot + i + len(w)
		return false
	})
	return pos
}

// BigWordRightIndex returns the position after the next whitespace-delimited
// WORD right of the cursor.
func (b *Buffer) BigWordRightIndex() int {
	pos := len(b.content)
	foundSpace := false
	forEachWord(b.content[b.dot:], func(i int, w string) bool {
		ws := isWhitespace(w)
		foundSpace = foundSpace || ws
		if foundSpace && !ws {
			pos = b.dot + i + len(w)
			return false
		}
		return true
	})
	return pos
}

// WordRightStartIndex returns the start of the next word right of the
// cursor, skipping the word under the cursor.
func (b *Buffer) WordRightStartIndex() int {
	pos := len(b.content)
	forEachWord(b.content[b.dot:], func(i int, w string) bool {
		if i != 0 && !isWhitespace(w) {
			pos = b.dot + i
			return false
		}
		return true
	})
	return pos
}

// BigWordRightStartIndex returns the start of the next WORD right of the
// cursor.
func (b *Buffer) BigWordRightStartIndex() int {
	pos := len(b.content)
	foundSpace := false
	forEachWord(b.content[b.dot:], func(i int, w string) bool {
		ws := isWhitespace(w)
		foundSpace = foundSpace || (i != 0 && ws)
		if foundSpace && i != 0 && !ws {
			pos = b.dot + i
			return false
		}
		return true
	})
	return pos
}

// Fallback of the *EndIndex methods: the start of the last cluster.
func (b *Buffer) lastClusterIndex() int { return lastClusterStart(b.content) }

// WordRightEndIndex returns the position of the last cluster of the next word
// that does not end at the cursor.
func (b *Buffer) WordRightEndIndex() int {
	pos := -1
	forEachWord(b.content[b.dot:], func(i int, w string) bool {
		x := b.dot + i + lastClusterStart(w)
		if !isWhitespace(w) && x != b.dot {
			pos = x
			return false
		}
		return true
	})
	if pos < 0 {
		return b.lastClusterIndex()
	}
	return pos
}

// BigWordRightEndIndex returns the position of the last cluster of the next
// WORD that does not end at the cursor.
func (b *Buffer) BigWordRightEndIndex() int {
	pos := -1
	prevI, prevW := -1, ""
	forEachWord(b.content[b.dot:], func(i int, w string) bool {
		if prevI >= 0 && isWhitespace(w) {
			if x := b.dot + prevI + lastClusterStart(prevW); x != b.dot {
				pos = x
				return false
			}
		}
		prevI, prevW = i, w
		return true
	})
	if pos < 0 {
		return b.lastClusterIndex()
	}
	return pos
}

// WordLeftIndex returns the start of the word left of the cursor.
func (b *Buffer) WordLeftIndex() int {
	// Words never span a line feed, so the scan can start at the current line
	// and only fall back to earlier lines when it is all whitespace.
	end := b.dot
	for {
		start := lineStart(b.content, end)
		found := -1
		forEachWord(b.content[start:end], func(i int, w string) bool {
			if !isWhitespace(w) {
				found = start + i
			}
			return true
		})
		if found >= 0 {
			return found
		}
		if start == 0 {
			return 0
		}
		end = start - 1
	}
}

// BigWordLeftIndex returns the start of the WORD left of the cursor.
func (b *Buffer) BigWordLeftIndex() int {
	prefix := b.content[:b.dot]
	start := -1
	forEachWord(prefix, func(i int, w string) bool {
		switch ws := isWhitespace(w); {
		case start < 0 && !ws:
			start = i
		case start >= 0 && ws && !isWhitespace(prefix[i:]):
			start = -1
		}
		return true
	})
	if start < 0 {
		return 0
	}
	return start
}

// NextWhitespaceIndex returns the start of the next run of whitespace after
// the cluster under the cursor.
func (b *Buffer) NextWhitespaceIndex() int {
	pos := len(b.content)
	forEachWord(b.content[b.dot:], func(i int, w string) bool {
		if i != 0 && isWhitespace(w) {
			pos = b.dot + i
			return false
		}
		return true
	})
	return pos
}

// FindCharRight returns the range of the first cluster starting with r after
// the cluster under the cursor, searching only the current line if
// currentLine is true.
func (b *Buffer) FindCharRight(r rune, currentLine bool) (from, to int, ok bool) {
	end := len(b.content)
	if currentLine {
		_, end = b.CurrentLineRange()
	}
	for i := b.GraphemeRightIndex(); i < end; {
		next := nextBoundary(b.content, i)
		if c, _ := firstRune(b.content[i:next]); c == r {
			return i, next, true
		}
		i = next
	}
	return 0, 0, false
}

// FindCharLeft returns the range of the last cluster starting with r before
// the cursor, searching only the current line if currentLine is true.
func (b *Buffer) FindCharLeft(r rune, currentLine bool) (from, to int, ok bool) {
	start := 0
	if currentLine {
		start, _ = b.CurrentLineRange()
	}
	for i := b.dot; i > start; {
		prev := prevBoundary(b.content, i)
		if c, _ := firstRune(b.content[prev:i]); c == r {
			return prev, i, true
		}
		i = prev
	}
	return 0, 0, false
}

// Moves

// MoveLeft moves the cursor one cluster left.
func (b *Buffer) MoveLeft() { b.dot = b.GraphemeLeftIndex() }

// MoveRight moves the cursor one cluster right.
func (b *Buffer) MoveRight() { b.dot = b.GraphemeRightIndex() }

// MoveWordLeft moves the cursor to the start of the word on the left.
func (b *Buffer) MoveWordLeft() { b.dot = b.WordLeftIndex() }

// MoveBigWordLeft moves the cursor to the start of the WORD on the left.
func (b *Buffer) MoveBigWordLeft() { b.dot = b.BigWordLeftIndex() }

// MoveWordRight moves the cursor after the word on the right.
func (b *Buffer) MoveWordRight() { b.dot = b.WordRightIndex() }

// MoveBigWordRight moves the cursor after the WORD on the right.
func (b *Buffer) MoveBigWordRight() { b.dot = b.BigWordRightIndex() }

// MoveWordRightStart moves the cursor to the start of the next word.
func (b *Buffer) MoveWordRightStart() { b.dot = b.WordRightStartIndex() }

// MoveBigWordRightStart moves the cursor to the start of the next WORD.
func (b *Buffer) MoveBigWordRightStart() { b.dot = b.BigWordRightStartIndex() }

// MoveWordRightEnd moves the cursor onto the last cluster of the next word.
func (b *Buffer) MoveWordRightEnd() { b.dot = b.WordRightEndIndex() }

// MoveBigWordRightEnd moves the cursor onto the last cluster of the next WORD.
func (b *Buffer) MoveBigWordRightEnd() { b.dot = b.BigWordRightEndIndex() }

// MoveToStart moves the cursor to the start of the buffer.
func (b *Buffer) MoveToStart() { b.dot = 0 }

// MoveToEnd moves the cursor to the end of the buffer.
func (b *Buffer) MoveToEnd() { b.dot = len(b.content) }

// MoveToLineStart moves the cursor to the start of the current line.
func (b *Buffer) MoveToLineStart() { b.dot = lineStart(b.content, b.dot) }

// MoveToLineEnd moves the cursor onto the terminator of the current line.
func (b *Buffer) MoveToLineEnd() { b.dot = b.CurrentLineEnd() }

// MoveLineUp moves the cursor to the previous line, keeping the column in
// clusters where the line is long enough.
func (b *Buffer) MoveLineUp() {
	if b.OnFirstLine() {
		return
	}
	start, _ := b.CurrentLineRange()
	col := GraphemeCount(b.content[start:b.dot])

	b.dot = prevBoundary(b.content, start)
	newStart, newEnd := b.CurrentLineRange()
	line := b.content[newStart:newEnd]
	// Lands on the col-th cluster, or on the line terminator when the line is
	// shorter.
	pos := newStart
	for i := 0; i < col; i++ {
		next := nextBoundary(line, pos-newStart) + newStart
		if next >= newEnd {
			break
		}
		pos = next
	}
	b.dot = pos
}

// MoveLineDown moves the cursor to the next line, keeping the column in
// clusters where the line is long enough.
func (b *Buffer) MoveLineDown() {
	if b.OnLastLine() {
		return
	}
	start, end := b.CurrentLineRange()
	col := GraphemeCount(b.content[start:b.dot])

	b.dot = end
	newStart, newEnd := b.CurrentLineRange()
	pos := newStart
	for i := 0; i < col; i++ {
		if pos >= newEnd {
			break
		}
		pos = nextBoundary(b.content, pos)
	}
	if pos >= newEnd {
		pos = b.CurrentLineEnd()
	}
	b.dot = pos
}

// MoveRightUntil moves the cursor onto the next occurrence of r.
func (b *Buffer) MoveRightUntil(r rune, currentLine bool) {
	if from, _, ok := b.FindCharRight(r, currentLine); ok {
		b.dot = from
	}
}

// MoveRightBefore moves the cursor onto the cluster before the next
// occurrence of r.
func (b *Buffer) MoveRightBefore(r rune, currentLine bool) {
	if from, _, ok := b.FindCharRight(r, currentLine); ok {
		b.dot = prevBoundary(b.content, from)
	}
}

// MoveLeftUntil moves the cursor onto the previous occurrence of r.
func (b *Buffer) MoveLeftUntil(r rune, currentLine bool) {
	if from, _, ok := b.FindCharLeft(r, currentLine); ok {
		b.dot = from
	}
}

// MoveLeftBefore moves the cursor after the previous occurrence of r.
func (b *Buffer) MoveLeftBefore(r rune, currentLine bool) {
	if _, to, ok := b.FindCharLeft(r, currentLine); ok {
		b.dot = to
	}
}
