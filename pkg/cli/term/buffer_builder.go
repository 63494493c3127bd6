package term

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/elves/edline/pkg/ui"
	"github.com/elves/edline/pkg/wcwidth"
)

// BufferBuilder supports building of Buffer.
type BufferBuilder struct {
	Width, Col, Indent int
	// EagerWrap controls whether to wrap line as soon as the cursor reaches the
	// right edge of the terminal. This is not often desirable as it creates
	// unneessary line breaks, but is useful when presenting an editable area,
	// where the cursor can sit after the last column.
	EagerWrap bool
	// Lines the content of the buffer.
	Lines [][]Cell
	// Dot is what the user perceives as the cursor.
	Dot Pos
}

// NewBufferBuilder makes a new BufferBuilder, initially with one empty line.
func NewBufferBuilder(width int) *BufferBuilder {
	return &BufferBuilder{Width: width, Lines: [][]Cell{make([]Cell, 0, width)}}
}

// Cursor returns the current position of the builder.
func (bb *BufferBuilder) Cursor() Pos {
	return Pos{len(bb.Lines) - 1, bb.Col}
}

// SetIndent sets the indent of subsequent lines. It returns the BufferBuilder
// itself.
func (bb *BufferBuilder) SetIndent(indent int) *BufferBuilder {
	bb.Indent = indent
	return bb
}

// SetEagerWrap sets the EagerWrap property. It returns the BufferBuilder
// itself.
func (bb *BufferBuilder) SetEagerWrap(v bool) *BufferBuilder {
	bb.EagerWrap = v
	return bb
}

// SetDot sets the dot. It returns the BufferBuilder itself.
func (bb *BufferBuilder) SetDot(dot Pos) *BufferBuilder {
	bb.Dot = dot
	return bb
}

// SetDotHere is a shorthand for bb.SetDot(bb.Cursor()).
func (bb *BufferBuilder) SetDotHere() *BufferBuilder {
	return bb.SetDot(bb.Cursor())
}

func (bb *BufferBuilder) appendLine() {
	bb.Lines = append(bb.Lines, make([]Cell, 0, bb.Width))
	bb.Col = 0
}

func (bb *BufferBuilder) appendCell(c Cell) {
	n := len(bb.Lines)
	bb.Lines[n-1] = append(bb.Lines[n-1], c)
	bb.Col += wcwidth.Of(c.Text)
}

// Newline starts a newline. It returns the BufferBuilder itself.
func (bb *BufferBuilder) Newline() *BufferBuilder {
	bb.appendLine()

	if bb.Indent > 0 {
		for i := 0; i < bb.Indent; i++ {
			bb.appendCell(Cell{Text: " "})
		}
	}

	return bb
}

// WriteCell writes one cell, wrapping to a new line first if it would not fit
// on the current one. It returns the BufferBuilder itself.
func (bb *BufferBuilder) WriteCell(c Cell) *BufferBuilder {
	if w := wcwidth.Of(c.Text); bb.Col+w > bb.Width && bb.Col > bb.Indent {
		bb.Newline()
	}
	bb.appendCell(c)
	if bb.EagerWrap && bb.Col >= bb.Width {
		bb.Newline()
	}
	return bb
}

// WriteClusterSGR writes a single grapheme cluster with a style as an SGR
// sequence. Newlines start a new line; other control characters are written in
// caret notation with the inverse attribute.
func (bb *BufferBuilder) WriteClusterSGR(cluster, style string) *BufferBuilder {
	if cluster == "\n" {
		return bb.Newline()
	}
	if r := []rune(cluster); len(r) == 1 && (r[0] < 0x20 || r[0] == 0x7f) {
		if style != "" {
			style += ";7"
		} else {
			style = "7"
		}
		return bb.WriteCell(Cell{caret(r[0]), style})
	}
	return bb.WriteCell(Cell{cluster, style})
}

func caret(r rune) string {
	if r == 0x7f {
		return "^?"
	}
	return "^" + string(r^0x40)
}

// WriteStringSGR writes a string, one cell per grapheme cluster, with a style
// as an SGR sequence. It returns the BufferBuilder itself.
func (bb *BufferBuilder) WriteStringSGR(text, style string) *BufferBuilder {
	state := -1
	var cluster string
	for text != "" {
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		if cluster == "\r\n" {
			cluster = "\n"
		}
		bb.WriteClusterSGR(cluster, style)
	}
	return bb
}

// Write is equivalent to calling WriteStyled with ui.T(text, style...).
func (bb *BufferBuilder) Write(text string, ts ...ui.Styling) *BufferBuilder {
	return bb.WriteStringSGR(text, ui.ApplyStyling(ui.Style{}, ts...).SGR())
}

// WriteSpaces writes w spaces with the given styles. It returns the
// BufferBuilder itself.
func (bb *BufferBuilder) WriteSpaces(w int, ts ...ui.Styling) *BufferBuilder {
	return bb.Write(strings.Repeat(" ", w), ts...)
}

// WriteStyled writes a styled text. It returns the BufferBuilder itself.
func (bb *BufferBuilder) WriteStyled(t ui.Text) *BufferBuilder {
	for _, seg := range t {
		bb.WriteStringSGR(seg.Text, seg.Style.SGR())
	}
	return bb
}

// Buffer returns a Buffer built by the BufferBuilder.
func (bb *BufferBuilder) Buffer() *Buffer {
	return &Buffer{bb.Width, bb.Lines, bb.Dot}
}
