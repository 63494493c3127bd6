package histutil

import (
	"strings"

	"github.com/elves/edline/pkg/store/storedefs"
)

// NewMemStore returns a Store that stores command history in memory.
func NewMemStore(texts ...string) Store {
	cmds := make([]storedefs.Cmd, len(texts))
	for i, text := range texts {
		cmds[i] = storedefs.Cmd{Text: text, Seq: i}
	}
	return &memStore{cmds}
}

type memStore struct{ cmds []storedefs.Cmd }

func (s *memStore) AllCmds() ([]storedefs.Cmd, error) {
	return s.cmds, nil
}

func (s *memStore) AddCmd(text string) (int, error) {
	seq := 0
	if len(s.cmds) > 0 {
		seq = s.cmds[len(s.cmds)-1].Seq + 1
	}
	s.add(storedefs.Cmd{Text: text, Seq: seq})
	return seq, nil
}

func (s *memStore) add(cmd storedefs.Cmd) {
	s.cmds = append(s.cmds, cmd)
}

func (s *memStore) Cmd(seq int) (string, error) {
	for i := len(s.cmds) - 1; i >= 0; i-- {
		if s.cmds[i].Seq == seq {
			return s.cmds[i].Text, nil
		}
	}
	return "", storedefs.ErrNoMatchingCmd
}

func (s *memStore) Search(query string) ([]storedefs.Cmd, error) {
	return searchCmds(s.cmds, query), nil
}

func (s *memStore) Cursor(prefix string) Cursor {
	return NewDedupCursor(s.rawCursor(prefix))
}

func (s *memStore) rawCursor(prefix string) *memStoreCursor {
	return &memStoreCursor{s.cmds, prefix, len(s.cmds)}
}

type memStoreCursor struct {
	cmds   []storedefs.Cmd
	prefix string
	index  int
}

func (c *memStoreCursor) Prev() {
	if c.index < 0 {
		return
	}
	for c.index--; c.index >= 0; c.index-- {
		if strings.HasPrefix(c.cmds[c.index].Text, c.prefix) {
			return
		}
	}
}

func (c *memStoreCursor) Next() {
	if c.index >= len(c.cmds) {
		return
	}
	for c.index++; c.index < len(c.cmds); c.index++ {
		if strings.HasPrefix(c.cmds[c.index].Text, c.prefix) {
			return
		}
	}
}

func (c *memStoreCursor) Get() (storedefs.Cmd, error) {
	if c.index < 0 || c.index >= len(c.cmds) {
		return storedefs.Cmd{}, ErrEndOfHistory
	}
	return c.cmds[c.index], nil
}
