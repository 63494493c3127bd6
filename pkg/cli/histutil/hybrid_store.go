package histutil

import (
	"errors"

	"github.com/elves/edline/pkg/store/storedefs"
)

// NewHybridStore returns a store that provides a view of all the commands that
// exists in the database, plus a in-memory session history. Commands added in
// other sessions after creation are not seen.
func NewHybridStore(db DB) (Store, error) {
	if db == nil {
		return NewMemStore(), nil
	}
	ds, err := NewDBStore(db)
	if err != nil {
		return NewMemStore(), err
	}
	return &hybridStore{ds.(dbStore), &memStore{}}, nil
}

type hybridStore struct {
	shared  dbStore
	session *memStore
}

// AddCmd adds the command to the database and, only if that succeeds, to the
// session history with the sequence number from the database.
func (s *hybridStore) AddCmd(text string) (int, error) {
	seq, err := s.shared.AddCmd(text)
	if err != nil {
		return -1, err
	}
	s.session.add(storedefs.Cmd{Text: text, Seq: seq})
	return seq, nil
}

func (s *hybridStore) AllCmds() ([]storedefs.Cmd, error) {
	shared, err := s.shared.AllCmds()
	if err != nil {
		return nil, err
	}
	if len(shared) == 0 {
		return s.session.cmds, nil
	}
	return append(shared, s.session.cmds...), nil
}

func (s *hybridStore) Cmd(seq int) (string, error) {
	if text, err := s.session.Cmd(seq); err == nil {
		return text, nil
	}
	return s.shared.Cmd(seq)
}

func (s *hybridStore) Search(query string) ([]storedefs.Cmd, error) {
	cmds, err := s.AllCmds()
	if err != nil {
		return nil, err
	}
	return searchCmds(cmds, query), nil
}

func (s *hybridStore) Cursor(prefix string) Cursor {
	return NewDedupCursor(&hybridStoreCursor{
		s.shared.rawCursor(prefix), s.session.rawCursor(prefix), false})
}

type hybridStoreCursor struct {
	shared    Cursor
	session   Cursor
	useShared bool
}

func (c *hybridStoreCursor) Prev() {
	if !c.useShared {
		c.session.Prev()
		if _, err := c.session.Get(); errors.Is(err, ErrEndOfHistory) {
			c.useShared = true
			c.shared.Prev()
		}
	} else {
		c.shared.Prev()
	}
}

func (c *hybridStoreCursor) Next() {
	if c.useShared {
		c.shared.Next()
		if _, err := c.shared.Get(); errors.Is(err, ErrEndOfHistory) {
			c.useShared = false
			c.session.Next()
		}
	} else {
		c.session.Next()
	}
}

func (c *hybridStoreCursor) Get() (storedefs.Cmd, error) {
	if c.useShared {
		return c.shared.Get()
	}
	return c.session.Get()
}
