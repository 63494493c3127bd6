package histutil

import (
	"errors"

	"github.com/elves/edline/pkg/store/storedefs"
)

// NewDBStore returns a Store backed by a database with the view of all
// commands frozen at creation.
func NewDBStore(db DB) (Store, error) {
	upper, err := db.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	return dbStore{db, upper}, nil
}

type dbStore struct {
	db    DB
	upper int
}

func (s dbStore) AllCmds() ([]storedefs.Cmd, error) {
	return s.db.CmdsWithSeq(0, s.upper)
}

func (s dbStore) AddCmd(text string) (int, error) {
	return s.db.AddCmd(text)
}

func (s dbStore) Cmd(seq int) (string, error) {
	return s.db.Cmd(seq)
}

func (s dbStore) Search(query string) ([]storedefs.Cmd, error) {
	cmds, err := s.AllCmds()
	if err != nil {
		return nil, err
	}
	return searchCmds(cmds, query), nil
}

func (s dbStore) Cursor(prefix string) Cursor {
	return NewDedupCursor(s.rawCursor(prefix))
}

func (s dbStore) rawCursor(prefix string) *dbStoreCursor {
	return &dbStoreCursor{
		s.db, prefix, s.upper, storedefs.Cmd{Seq: s.upper}, ErrEndOfHistory}
}

type dbStoreCursor struct {
	db     DB
	prefix string
	upper  int
	cmd    storedefs.Cmd
	err    error
}

func (c *dbStoreCursor) Prev() {
	if c.cmd.Seq < 0 {
		return
	}
	cmd, err := c.db.PrevCmd(c.cmd.Seq, c.prefix)
	c.set(cmd, err, -1)
}

func (c *dbStoreCursor) Next() {
	if c.cmd.Seq >= c.upper {
		return
	}
	cmd, err := c.db.NextCmd(c.cmd.Seq+1, c.prefix)
	if err == nil && cmd.Seq >= c.upper {
		err = storedefs.ErrNoMatchingCmd
	}
	c.set(cmd, err, c.upper)
}

func (c *dbStoreCursor) set(cmd storedefs.Cmd, err error, endSeq int) {
	switch {
	case err == nil:
		c.cmd = cmd
		c.err = nil
	case errors.Is(err, storedefs.ErrNoMatchingCmd):
		c.cmd = storedefs.Cmd{Seq: endSeq}
		c.err = ErrEndOfHistory
	default:
		// Don't change c.cmd
		logger.Println("walk history:", err)
		c.err = err
	}
}

func (c *dbStoreCursor) Get() (storedefs.Cmd, error) {
	return c.cmd, c.err
}
