package tk

import (
	"strings"

	"github.com/elves/edline/pkg/cli/term"
	"github.com/elves/edline/pkg/ui"
)

// ListBox renders a list of items with one of them selected. Menus drive it
// through Reset and Select and read it back through CopyState.
type ListBox interface {
	Renderer
	MaxHeighter
	// CopyState returns a copy of the state.
	CopyState() ListBoxState
	// Reset replaces the items and selects the item at the given index. A
	// negative index means no item is selected.
	Reset(it Items, selected int)
	// Select changes the selection by calling f with the current state, and
	// using the return value as the new selection index.
	Select(f func(ListBoxState) int)
}

// ListBoxSpec specifies the configuration and initial state for ListBox.
type ListBoxSpec struct {
	// A placeholder to show when there are no items.
	Placeholder ui.Text
	// Whether the items are laid out in columns, filled top to bottom and then
	// left to right. Items must have only one line in this layout.
	Horizontal bool
	// The minimal amount of space to reserve for left and right sides of each
	// entry.
	Padding int
	// If true, the left padding of each item is styled the same as the first
	// segment of the item, and the right spacing and padding the same as the
	// last segment.
	ExtendStyle bool

	State ListBoxState
}

type listBox struct {
	ListBoxSpec
}

// NewListBox creates a new ListBox from the given spec.
func NewListBox(spec ListBoxSpec) ListBox {
	return &listBox{spec}
}

var stylingForSelected = ui.Inverse

func (w *listBox) Render(width, height int) *term.Buffer {
	if w.Horizontal {
		return w.renderHorizontal(width, height)
	}
	return w.renderVertical(width, height)
}

func (w *listBox) MaxHeight(width, height int) int {
	s := w.State
	if s.Items == nil || s.Items.Len() == 0 {
		return 0
	}
	if w.Horizontal {
		_, h, scrollbar := getHorizontalWindow(s, w.Padding, width, height)
		if scrollbar {
			return h + 1
		}
		return h
	}
	h := 0
	for i := 0; i < s.Items.Len(); i++ {
		h += s.Items.Show(i).CountLines()
		if h >= height {
			return height
		}
	}
	return h
}

const listBoxColGap = 2

func (w *listBox) renderHorizontal(width, height int) *term.Buffer {
	s := &w.State
	if s.Items == nil || s.Items.Len() == 0 {
		s.First = 0
		return Label{Content: w.Placeholder}.Render(width, height)
	}
	s.First, s.ContentHeight, _ = getHorizontalWindow(*s, w.Padding, width, height)

	items, selected, first, colHeight := s.Items, s.Selected, s.First, s.ContentHeight
	n := items.Len()

	buf := term.NewBuffer(0)
	remainedWidth := width
	hasCropped := false
	last := first
	for i := first; i < n; i += colHeight {
		selectedRow := -1
		col := make([]ui.Text, 0, colHeight)
		for j := i; j < i+colHeight && j < n; j++ {
			last = j
			if j == selected {
				selectedRow = j - i
			}
			col = append(col, items.Show(j))
		}

		colWidth := maxWidth(items, w.Padding, i, i+colHeight)
		if colWidth > remainedWidth {
			colWidth = remainedWidth
			hasCropped = true
		}

		colBuf := croppedLines{
			lines: col, padding: w.Padding,
			selectFrom: selectedRow, selectTo: selectedRow + 1,
			extendStyle: w.ExtendStyle}.Render(colWidth, colHeight)
		buf.ExtendRight(colBuf)

		remainedWidth -= colWidth
		if remainedWidth <= listBoxColGap {
			break
		}
		remainedWidth -= listBoxColGap
		buf.Width += listBoxColGap
	}
	buf.Width = width
	if colHeight < height && (first != 0 || last != n-1 || hasCropped) {
		scrollbar := HScrollbar{Total: n, Low: first, High: last + 1}
		buf.ExtendDown(scrollbar.Render(width, 1), false)
	}
	return buf
}

func (w *listBox) renderVertical(width, height int) *term.Buffer {
	s := &w.State
	s.ContentHeight = height
	if s.Items == nil || s.Items.Len() == 0 {
		s.First = 0
		return Label{Content: w.Placeholder}.Render(width, height)
	}
	var firstCrop int
	s.First, firstCrop = getVerticalWindow(*s, height)

	items, selected, first := s.Items, s.Selected, s.First
	n := items.Len()
	allLines := []ui.Text{}
	hasCropped := firstCrop > 0

	var i, selectFrom, selectTo int
	for i = first; i < n && len(allLines) < height; i++ {
		lines := items.Show(i).SplitByRune('\n')
		if i == first {
			lines = lines[firstCrop:]
		}
		if i == selected {
			selectFrom, selectTo = len(allLines), len(allLines)+len(lines)
		}
		if len(allLines)+len(lines) > height {
			lines = lines[:height-len(allLines)]
			hasCropped = true
		}
		allLines = append(allLines, lines...)
	}

	var rd Renderer = croppedLines{
		lines: allLines, padding: w.Padding,
		selectFrom: selectFrom, selectTo: selectTo, extendStyle: w.ExtendStyle}
	if first > 0 || i < n || hasCropped {
		rd = VScrollbarContainer{
			Content:   rd,
			Scrollbar: VScrollbar{Total: n, Low: first, High: i},
		}
	}
	return rd.Render(width, height)
}

type croppedLines struct {
	lines       []ui.Text
	padding     int
	selectFrom  int
	selectTo    int
	extendStyle bool
}

func (c croppedLines) Render(width, height int) *term.Buffer {
	bb := term.NewBufferBuilder(width)
	leftSpacing := ui.T(strings.Repeat(" ", c.padding))
	rightSpacing := ui.T(strings.Repeat(" ", max(width-c.padding, 0)))
	for i, line := range c.lines {
		if i > 0 {
			bb.Newline()
		}

		selected := c.selectFrom <= i && i < c.selectTo
		extendStyle := c.extendStyle && len(line) > 0

		left := leftSpacing.Clone()
		if extendStyle && len(left) > 0 {
			left[0].Style = line[0].Style
		}
		acc := ui.Concat(left, line.TrimWcwidth(width-2*c.padding))
		if extendStyle || selected {
			right := rightSpacing.Clone()
			if extendStyle && len(right) > 0 {
				right[0].Style = line[len(line)-1].Style
			}
			acc = ui.Concat(acc, right).TrimWcwidth(width)
		}
		if selected {
			acc = ui.StyleText(acc, stylingForSelected)
		}

		bb.WriteStyled(acc)
	}
	return bb.Buffer()
}

func (w *listBox) CopyState() ListBoxState {
	return w.State
}

func (w *listBox) Reset(it Items, selected int) {
	w.State = ListBoxState{Items: it, Selected: selected}
}

func (w *listBox) Select(f func(ListBoxState) int) {
	if w.State.Items == nil || w.State.Items.Len() == 0 {
		return
	}
	w.State.Selected = f(w.State)
}

// Prev moves the selection to the previous item, or does nothing if the
// first item is currently selected. It is suitable as an argument to
// [ListBox.Select].
func Prev(s ListBoxState) int {
	return fixIndex(s.Selected-1, s.Items.Len())
}

// PrevPage moves the selection to the item one page before. It is only
// meaningful in vertical layout.
func PrevPage(s ListBoxState) int {
	return fixIndex(s.Selected-s.ContentHeight, s.Items.Len())
}

// Next moves the selection to the next item, or does nothing if the last item
// is currently selected.
func Next(s ListBoxState) int {
	return fixIndex(s.Selected+1, s.Items.Len())
}

// NextPage moves the selection to the item one page after. It is only
// meaningful in vertical layout.
func NextPage(s ListBoxState) int {
	return fixIndex(s.Selected+s.ContentHeight, s.Items.Len())
}

// PrevWrap moves the selection to the previous item, or to the last item if
// the first item is currently selected.
func PrevWrap(s ListBoxState) int {
	selected, n := s.Selected, s.Items.Len()
	if selected <= 0 || selected >= n {
		return n - 1
	}
	return selected - 1
}

// NextWrap moves the selection to the next item, or to the first item if the
// last item is currently selected. With nothing selected, it selects the
// first item.
func NextWrap(s ListBoxState) int {
	selected, n := s.Selected, s.Items.Len()
	if selected < 0 || selected >= n-1 {
		return 0
	}
	return selected + 1
}

// Left moves the selection to the item in the column to the left. It is only
// meaningful in horizontal layout.
func Left(s ListBoxState) int {
	return horizontal(s.Selected, s.Items.Len(), -s.ContentHeight)
}

// Right moves the selection to the item in the column to the right. It is
// only meaningful in horizontal layout.
func Right(s ListBoxState) int {
	return horizontal(s.Selected, s.Items.Len(), s.ContentHeight)
}

func horizontal(selected, n, d int) int {
	selected = fixIndex(selected, n)
	newSelected := selected + d
	if newSelected < 0 || newSelected >= n {
		return selected
	}
	return newSelected
}

func fixIndex(i, n int) int {
	switch {
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	default:
		return i
	}
}
