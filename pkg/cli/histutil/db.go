package histutil

import (
	"strings"

	"github.com/elves/edline/pkg/store/storedefs"
)

// DB is the interface of the storage database.
type DB interface {
	NextCmdSeq() (int, error)
	AddCmd(cmd string) (int, error)
	Cmd(seq int) (string, error)
	CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error)
	PrevCmd(upto int, prefix string) (storedefs.Cmd, error)
	NextCmd(from int, prefix string) (storedefs.Cmd, error)
}

// TestDB is an implementation of the DB interface that can be used for testing.
// The sequence number of a command is its index in AllCmds.
type TestDB struct {
	AllCmds []string

	OneOffError error
}

func (s *TestDB) error() error {
	err := s.OneOffError
	s.OneOffError = nil
	return err
}

func (s *TestDB) NextCmdSeq() (int, error) {
	return len(s.AllCmds), s.error()
}

func (s *TestDB) AddCmd(cmd string) (int, error) {
	if s.OneOffError != nil {
		return -1, s.error()
	}
	s.AllCmds = append(s.AllCmds, cmd)
	return len(s.AllCmds) - 1, nil
}

func (s *TestDB) Cmd(seq int) (string, error) {
	if s.OneOffError != nil {
		return "", s.error()
	}
	if seq < 0 || seq >= len(s.AllCmds) {
		return "", storedefs.ErrNoMatchingCmd
	}
	return s.AllCmds[seq], nil
}

func (s *TestDB) CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error) {
	if err := s.error(); err != nil {
		return nil, err
	}
	var cmds []storedefs.Cmd
	for i := max(from, 0); i < upto && i < len(s.AllCmds); i++ {
		cmds = append(cmds, storedefs.Cmd{Text: s.AllCmds[i], Seq: i})
	}
	return cmds, nil
}

func (s *TestDB) PrevCmd(upto int, prefix string) (storedefs.Cmd, error) {
	if s.OneOffError != nil {
		return storedefs.Cmd{}, s.error()
	}
	if upto < 0 || upto > len(s.AllCmds) {
		upto = len(s.AllCmds)
	}
	for i := upto - 1; i >= 0; i-- {
		if strings.HasPrefix(s.AllCmds[i], prefix) {
			return storedefs.Cmd{Text: s.AllCmds[i], Seq: i}, nil
		}
	}
	return storedefs.Cmd{}, storedefs.ErrNoMatchingCmd
}

func (s *TestDB) NextCmd(from int, prefix string) (storedefs.Cmd, error) {
	if s.OneOffError != nil {
		return storedefs.Cmd{}, s.error()
	}
	for i := max(from, 0); i < len(s.AllCmds); i++ {
		if strings.HasPrefix(s.AllCmds[i], prefix) {
			return storedefs.Cmd{Text: s.AllCmds[i], Seq: i}, nil
		}
	}
	return storedefs.Cmd{}, storedefs.ErrNoMatchingCmd
}
