package histutil

import (
	"errors"

	"github.com/elves/edline/pkg/store/storedefs"
)

// NewDedupCursor wraps a Cursor so that it skips entries whose text was
// already visited. Walking back with Next revisits the same entries.
func NewDedupCursor(c Cursor) Cursor {
	return &dedupCursor{inner: c, index: -1, inStack: map[string]bool{}}
}

type dedupCursor struct {
	inner Cursor
	// Distinct entries in the order they were visited, newest first.
	stack   []storedefs.Cmd
	inStack map[string]bool
	// Position in stack. -1 is past the newest entry and len(stack) past the
	// oldest one.
	index int
	err   error
}

func (c *dedupCursor) Prev() {
	c.err = nil
	if c.index >= len(c.stack) {
		return
	}
	if c.index+1 < len(c.stack) {
		c.index++
		return
	}
	for {
		c.inner.Prev()
		cmd, err := c.inner.Get()
		if errors.Is(err, ErrEndOfHistory) {
			c.index = len(c.stack)
			return
		} else if err != nil {
			c.err = err
			return
		}
		if !c.inStack[cmd.Text] {
			c.inStack[cmd.Text] = true
			c.stack = append(c.stack, cmd)
			c.index = len(c.stack) - 1
			return
		}
	}
}

func (c *dedupCursor) Next() {
	c.err = nil
	if c.index >= 0 {
		c.index--
	}
}

func (c *dedupCursor) Get() (storedefs.Cmd, error) {
	if c.err != nil {
		return storedefs.Cmd{}, c.err
	}
	if c.index < 0 || c.index >= len(c.stack) {
		return storedefs.Cmd{}, ErrEndOfHistory
	}
	return c.stack[c.index], nil
}
