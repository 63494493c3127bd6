package histutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/edline/pkg/store/storedefs"
)

func TestMemStore_Cursor(t *testing.T) {
	s := NewMemStore("+ 0", "- 1", "+ 2")
	testCursorIteration(t, s.Cursor("+"), []storedefs.Cmd{
		{Text: "+ 0", Seq: 0},
		{Text: "+ 2", Seq: 2},
	})
}

func TestMemStore_CursorSkipsDuplicates(t *testing.T) {
	s := NewMemStore("a", "b", "a", "c", "b")
	testCursorIteration(t, s.Cursor(""), []storedefs.Cmd{
		{Text: "a", Seq: 2},
		{Text: "c", Seq: 3},
		{Text: "b", Seq: 4},
	})
}

func TestMemStore_AddCmdAndCmd(t *testing.T) {
	s := NewMemStore("a")
	seq, err := s.AddCmd("b")
	if seq != 1 || err != nil {
		t.Errorf("AddCmd -> (%v, %v), want (1, nil)", seq, err)
	}
	if text, err := s.Cmd(1); text != "b" || err != nil {
		t.Errorf("Cmd(1) -> (%q, %v), want (\"b\", nil)", text, err)
	}
	if _, err := s.Cmd(5); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("Cmd(5) -> error %v, want ErrNoMatchingCmd", err)
	}
}

func TestMemStore_Search(t *testing.T) {
	s := NewMemStore("git status", "ls", "git log", "git status")
	got, err := s.Search("git")
	want := []storedefs.Cmd{{Text: "git status", Seq: 3}, {Text: "git log", Seq: 2}}
	if !cmp.Equal(got, want) || err != nil {
		t.Errorf("Search -> (%v, %v), want (%v, nil)", got, err, want)
	}
}

// Walks the cursor back to the oldest entry and forth again to the newest,
// checking every step. wantCmds is oldest first.
func testCursorIteration(t *testing.T, c Cursor, wantCmds []storedefs.Cmd) {
	t.Helper()
	expectEndOfHistory := func() {
		t.Helper()
		if _, err := c.Get(); err != ErrEndOfHistory {
			t.Errorf("Get -> error %v, want ErrEndOfHistory", err)
		}
	}
	expectCmd := func(i int) {
		t.Helper()
		wantCmd := wantCmds[i]
		cmd, err := c.Get()
		if cmd != wantCmd || err != nil {
			t.Errorf("Get -> (%v, %v), want (%v, nil)", cmd, err, wantCmd)
		}
	}

	expectEndOfHistory()
	for i := len(wantCmds) - 1; i >= 0; i-- {
		c.Prev()
		expectCmd(i)
	}
	c.Prev()
	expectEndOfHistory()
	c.Prev()
	expectEndOfHistory()

	for i := range wantCmds {
		c.Next()
		expectCmd(i)
	}
	c.Next()
	expectEndOfHistory()
	c.Next()
	expectEndOfHistory()
}
