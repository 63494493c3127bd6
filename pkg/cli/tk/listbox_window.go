package tk

import "github.com/elves/edline/pkg/wcwidth"

// The number of lines kept between the selected item and the top and bottom
// edges of a vertical window, unless the height is too small or the selected
// item is near either end of the list.
var respectDistance = 2

// Determines the first item of a vertical window, and how many of its initial
// lines to crop. The window always includes the selected item and is filled up
// to min(height, total height of all items). Among the windows that keep
// respectDistance lines around the selected item, the one with its first item
// closest to the previous first item wins, so the list scrolls only when it
// must.
func getVerticalWindow(state ListBoxState, height int) (first, crop int) {
	items, selected, lastFirst := state.Items, state.Selected, state.First
	n := items.Len()
	selected = fixIndex(selected, n)
	selectedHeight := items.Show(selected).CountLines()

	if height <= selectedHeight {
		return selected, 0
	}

	budget := height - selectedHeight
	needDown := respectDistance
	if budget < 2*respectDistance {
		needDown = budget / 2
	}
	useDown := 0
	for i := selected + 1; i < n; i++ {
		useDown += items.Show(i).CountLines()
		if useDown >= budget {
			break
		}
	}
	needDown = min(needDown, useDown)

	budgetUp := budget - needDown
	useUp := 0
	for i := selected - 1; i >= 0; i-- {
		useUp += items.Show(i).CountLines()
		if useUp >= budgetUp {
			return i, useUp - budgetUp
		}
		if i <= lastFirst && useUp >= respectDistance && useUp+useDown >= budget {
			return i, 0
		}
	}
	return 0, 0
}

// Determines the window of a horizontal layout. Returns the first item to show,
// the height of each column, and whether a scrollbar is needed.
func getHorizontalWindow(state ListBoxState, padding, width, height int) (int, int, bool) {
	items := state.Items
	n := items.Len()
	height = max(height, 1)
	perRow := max((width+listBoxColGap)/(maxWidth(items, padding, 0, n)+listBoxColGap), 1)
	if height*perRow >= n {
		return 0, (n + perRow - 1) / perRow, false
	}
	// Not everything fits. Reserve the last line for the scrollbar, unless it is
	// the only line.
	scrollbar := false
	if height > 1 {
		scrollbar = true
		height--
	}
	selected, lastFirst := max(state.Selected, 0), state.First
	// Start from the column of the selected item and go left until the width
	// is used up or the previous first column is reached.
	first := selected / height * height
	usedWidth := maxWidth(items, padding, first, first+height)
	for ; first > lastFirst; first -= height {
		usedWidth += maxWidth(items, padding, first-height, first) + listBoxColGap
		if usedWidth > width {
			break
		}
	}
	return first, height, scrollbar
}

func maxWidth(items Items, padding, low, high int) int {
	n := items.Len()
	width := 0
	for i := low; i < high && i < n; i++ {
		w := 0
		for _, seg := range items.Show(i) {
			w += wcwidth.Of(seg.Text)
		}
		width = max(width, w)
	}
	return width + 2*padding
}
