// Package prompt provides implementations of the cli.Prompt interface.
package prompt

import (
	"fmt"
	"os"
	"time"

	"github.com/elves/edline/pkg/cli/mode"
	"github.com/elves/edline/pkg/fsutil"
	"github.com/elves/edline/pkg/ui"
)

// Indicators shown between the prompt and the buffer.
const (
	DefaultIndicator          = "〉"
	DefaultViInsertIndicator  = ": "
	DefaultViNormalIndicator  = "〉"
	DefaultMultilineIndicator = "::: "
)

// Segment computes one side of a prompt.
type Segment interface {
	Get() ui.Text
}

// Basic is a Segment showing a fixed string.
type Basic string

// Get returns the string as unstyled text.
func (s Basic) Get() ui.Text {
	if s == "" {
		return nil
	}
	return ui.T(string(s))
}

// SegmentFunc adapts a function to a Segment.
type SegmentFunc func() ui.Text

// Get calls f.
func (f SegmentFunc) Get() ui.Text { return f() }

// Empty is a Segment that shows nothing.
var Empty Segment = Basic("")

// WorkingDirectory shows the working directory, with the home directory
// abbreviated to ~.
var WorkingDirectory Segment = SegmentFunc(func() ui.Text {
	wd, err := os.Getwd()
	if err != nil {
		return ui.T("no path")
	}
	if home, err := fsutil.GetHome(""); err == nil && wd != home {
		wd = fsutil.TildeAbbr(wd)
	}
	return ui.T(wd)
})

var now = time.Now

// CurrentDateTime shows the local date and time.
var CurrentDateTime Segment = SegmentFunc(func() ui.Text {
	return ui.T(now().Format("01/02/2006 03:04:05 PM"))
})

// Default is the default prompt: a left and a right segment, and indicators
// for the edit mode, continuation lines and the history search.
type Default struct {
	LeftSegment, RightSegment Segment
	// Styles of the left and right segments.
	LeftStyle, RightStyle ui.Styling
}

// NewDefault returns a Default prompt with the given segments, the left one
// green and the right one blue. Nil segments are Empty.
func NewDefault(left, right Segment) *Default {
	if left == nil {
		left = Empty
	}
	if right == nil {
		right = Empty
	}
	return &Default{left, right, ui.FgGreen, ui.FgBlue}
}

// Left returns the left segment.
func (p *Default) Left() ui.Text { return ui.StyleText(p.LeftSegment.Get(), p.LeftStyle) }

// Right returns the right segment.
func (p *Default) Right() ui.Text { return ui.StyleText(p.RightSegment.Get(), p.RightStyle) }

// Indicator returns the indicator for the active mode.
func (p *Default) Indicator(k mode.Kind) ui.Text {
	switch k {
	case mode.KindViInsert:
		return ui.T(DefaultViInsertIndicator)
	case mode.KindViNormal:
		return ui.T(DefaultViNormalIndicator)
	case mode.KindHelixNormal:
		return ui.T("[N] ")
	case mode.KindHelixInsert:
		return ui.T("[I] ")
	case mode.KindHelixSelect:
		return ui.T("[S] ")
	}
	return ui.T(DefaultIndicator)
}

// MultilineIndicator returns the prefix of continuation lines.
func (p *Default) MultilineIndicator() ui.Text {
	return ui.T(DefaultMultilineIndicator)
}

// SearchIndicator returns the indicator shown while searching the history.
func (p *Default) SearchIndicator(query string, failing bool) ui.Text {
	prefix := ""
	if failing {
		prefix = "failing "
	}
	return ui.T(fmt.Sprintf("(%sreverse-search: %s) ", prefix, query))
}

// Trigger requests an update of the asynchronous segments.
func (p *Default) Trigger(force bool) {
	for _, s := range []Segment{p.LeftSegment, p.RightSegment} {
		if a, ok := s.(*Async); ok {
			a.Trigger(force)
		}
	}
}

// LateUpdates returns the channel of the first asynchronous segment, or nil
// if there is none.
func (p *Default) LateUpdates() <-chan struct{} {
	for _, s := range []Segment{p.LeftSegment, p.RightSegment} {
		if a, ok := s.(*Async); ok {
			return a.LateUpdates()
		}
	}
	return nil
}
