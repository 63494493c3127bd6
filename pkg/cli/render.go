package cli

import (
	"github.com/elves/edline/pkg/cli/term"
	"github.com/elves/edline/pkg/ui"
	"github.com/elves/edline/pkg/wcwidth"
)

func (a *app) redraw(flag redrawFlag) {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()

	// Get the dimensions available.
	height, width := a.tty.Size()
	if maxHeight := a.maxHeight(); maxHeight > 0 && maxHeight < height {
		height = maxHeight
	}

	bufNotes := renderNotes(a.takeNotes(), width)
	if flag&finalRedraw != 0 {
		bufMain := a.renderFrame(width, height, true)
		// Insert a newline after the buffer and position the cursor there.
		bufMain.ExtendDown(term.NewBuffer(width), true)
		if err := a.tty.UpdateBuffer(bufNotes, bufMain, flag&fullRedraw != 0); err != nil {
			logger.Println("final redraw:", err)
		}
		a.tty.ResetBuffer()
		return
	}
	bufMain := a.renderFrame(width, height, false)
	if err := a.tty.UpdateBuffer(bufNotes, bufMain, flag&fullRedraw != 0); err != nil {
		a.loop.Return(Signal{}, err)
	}
}

// Renders notes. This does not respect height so that overflow notes end up in
// the scrollback buffer.
func renderNotes(notes []ui.Text, width int) *term.Buffer {
	if len(notes) == 0 {
		return nil
	}
	bb := term.NewBufferBuilder(width)
	for i, note := range notes {
		if i > 0 {
			bb.Newline()
		}
		bb.WriteStyled(note)
	}
	return bb.Buffer()
}

// Renders the prompt and the buffer, and the active menu below them. The
// final frame leaves out the hint, the menu and, unless it is persistent, the
// right prompt.
func (a *app) renderFrame(width, height int, final bool) *term.Buffer {
	bb := term.NewBufferBuilder(width).SetEagerWrap(true)
	bb.WriteStyled(a.prompt.Left())
	if a.search != nil {
		bb.WriteStyled(a.prompt.SearchIndicator(a.search.query, a.search.failing))
	} else {
		bb.WriteStyled(a.prompt.Indicator(a.modes.Kind()))
	}
	firstLine := len(bb.Lines) - 1

	buf := a.ed.Buffer()
	content, dot := buf.Content(), buf.Dot()
	text := a.highlight(content)
	if from, to, ok := buf.Selection(); ok && from < to {
		parts := text.Partition(from, to)
		text = ui.Concat(parts[0], ui.StyleText(parts[1], ui.Inverse), parts[2])
	}
	parts := text.Partition(dot)
	cont := a.prompt.MultilineIndicator()

	writeLines(bb, parts[0], cont)
	bb.SetDotHere()
	if !final && a.hinter != nil && a.search == nil && buf.AtEnd() {
		writeLines(bb, a.hinter.Hint(content, dot), cont)
	}
	writeLines(bb, parts[1], cont)
	main := bb.Buffer()

	if !final || a.rpromptPersistent {
		placeRight(main, firstLine, a.prompt.Right())
	}

	var menuBuf *term.Buffer
	if !final {
		menuBuf = a.menus.Render(width, height-1)
	}
	mainHeight := height
	if menuBuf != nil {
		mainHeight = max(1, height-len(menuBuf.Lines))
	}
	if len(main.Lines) > mainHeight {
		// Keep the dot in view.
		low := max(0, main.Dot.Line-mainHeight+1)
		main.TrimToLines(low, low+mainHeight)
	}
	return main.ExtendDown(menuBuf, false)
}

// Returns the styled content, falling back to plain text when the highlighter
// changes the text.
func (a *app) highlight(content string) ui.Text {
	h := a.highlighter
	if a.search != nil {
		h = nil
		if a.searchHighlighter != nil && a.search.query != "" {
			h = a.searchHighlighter(a.search.query)
		}
	}
	if h == nil {
		return ui.T(content)
	}
	t := h.Highlight(content)
	if t.Content() != content {
		logger.Printf("highlighter changed %q into %q", content, t.Content())
		return ui.T(content)
	}
	return t
}

// Writes t, starting each line after the first with the continuation prefix.
func writeLines(bb *term.BufferBuilder, t ui.Text, cont ui.Text) {
	for i, line := range t.SplitByRune('\n') {
		if i > 0 {
			bb.Newline()
			bb.WriteStyled(cont)
		}
		bb.WriteStyled(line)
	}
}

// Places a single-line text at the right end of a line, if it fits with at
// least one column of space before it.
func placeRight(b *term.Buffer, line int, t ui.Text) {
	if len(t) == 0 || line >= len(b.Lines) {
		return
	}
	rb := term.NewBufferBuilder(b.Width).WriteStyled(t).Buffer()
	if len(rb.Lines) != 1 {
		return
	}
	used, rw := widthOf(b.Lines[line]), widthOf(rb.Lines[0])
	if used+1+rw > b.Width || (b.Dot.Line == line && b.Dot.Col >= b.Width-rw) {
		return
	}
	for i := used; i < b.Width-rw; i++ {
		b.Lines[line] = append(b.Lines[line], term.Cell{Text: " "})
	}
	b.Lines[line] = append(b.Lines[line], rb.Lines[0]...)
}

func widthOf(cells []term.Cell) int {
	w := 0
	for _, c := range cells {
		w += wcwidth.Of(c.Text)
	}
	return w
}
