package histutil

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/elves/edline/pkg/store/storedefs"
)

// DefaultCapacity is the number of entries kept by a file store when no
// capacity is given.
const DefaultCapacity = 1000

// Newlines inside an entry are escaped so that every entry fits on one line.
const newlineEscape = `<\n>`

// NewFileStore returns a Store that keeps up to capacity entries in a text
// file, one "seq:text" line per entry. Adding an empty command or one equal to
// the newest entry does nothing. When the file grows beyond the capacity it is
// rewritten with the newest entries only.
func NewFileStore(path string, capacity int) (Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &fileStore{path: path, capacity: capacity, mem: &memStore{}}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

type fileStore struct {
	path     string
	capacity int
	mem      *memStore
	// Number of lines in the file.
	onDisk int
}

func encodeEntry(cmd storedefs.Cmd) string {
	return strconv.Itoa(cmd.Seq) + ":" + strings.ReplaceAll(cmd.Text, "\n", newlineEscape)
}

func decodeEntry(line string) (storedefs.Cmd, error) {
	id, text, ok := strings.Cut(line, ":")
	if !ok {
		return storedefs.Cmd{}, fmt.Errorf("history entry id is missing")
	}
	seq, err := strconv.Atoi(id)
	if err != nil {
		return storedefs.Cmd{}, fmt.Errorf("invalid history entry id %q", id)
	}
	return storedefs.Cmd{Text: strings.ReplaceAll(text, newlineEscape, "\n"), Seq: seq}, nil
}

func (s *fileStore) load() error {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(nil, 1<<20)
	for scanner.Scan() {
		s.onDisk++
		cmd, err := decodeEntry(scanner.Text())
		if err != nil {
			logger.Printf("%s:%d: %v", s.path, s.onDisk, err)
			continue
		}
		s.mem.add(cmd)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	s.trim()
	return nil
}

func (s *fileStore) trim() {
	if n := len(s.mem.cmds); n > s.capacity {
		s.mem.cmds = append([]storedefs.Cmd(nil), s.mem.cmds[n-s.capacity:]...)
	}
}

func (s *fileStore) AddCmd(text string) (int, error) {
	cmds := s.mem.cmds
	if text == "" {
		return -1, nil
	}
	if len(cmds) > 0 && cmds[len(cmds)-1].Text == text {
		return cmds[len(cmds)-1].Seq, nil
	}
	seq := 0
	if len(cmds) > 0 {
		seq = cmds[len(cmds)-1].Seq + 1
	}
	cmd := storedefs.Cmd{Text: text, Seq: seq}
	s.mem.add(cmd)
	s.trim()
	if s.onDisk+1 > s.capacity {
		return seq, s.rewrite()
	}
	return seq, s.appendEntry(cmd)
}

func (s *fileStore) appendEntry(cmd storedefs.Cmd) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, encodeEntry(cmd))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		s.onDisk++
	}
	return err
}

// Writes all entries to a temporary file and moves it over the history file.
func (s *fileStore) rewrite() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, cmd := range s.mem.cmds {
		fmt.Fprintln(w, encodeEntry(cmd))
	}
	err = w.Flush()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(f.Name(), s.path)
	}
	if err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("rewrite history file: %w", err)
	}
	s.onDisk = len(s.mem.cmds)
	return nil
}

func (s *fileStore) Cmd(seq int) (string, error)              { return s.mem.Cmd(seq) }
func (s *fileStore) AllCmds() ([]storedefs.Cmd, error)        { return s.mem.AllCmds() }
func (s *fileStore) Search(q string) ([]storedefs.Cmd, error) { return s.mem.Search(q) }
func (s *fileStore) Cursor(prefix string) Cursor              { return s.mem.Cursor(prefix) }
