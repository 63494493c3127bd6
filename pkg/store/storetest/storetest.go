// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/elves/edline/pkg/store/storedefs"
)

var (
	cmds     = []string{"echo foo", "put bar", "put lorem", "echo bar", "héllo wörld"}
	searches = []struct {
		next      bool
		seq       int
		prefix    string
		wantedCmd storedefs.Cmd
		wantedErr error
	}{
		{false, 6, "echo", storedefs.Cmd{Text: "echo bar", Seq: 4}, nil},
		{false, 6, "put", storedefs.Cmd{Text: "put lorem", Seq: 3}, nil},
		{false, 4, "echo", storedefs.Cmd{Text: "echo foo", Seq: 1}, nil},
		{false, 100, "hé", storedefs.Cmd{Text: "héllo wörld", Seq: 5}, nil},
		{false, 3, "f", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
		{false, 0, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},

		{true, 1, "echo", storedefs.Cmd{Text: "echo foo", Seq: 1}, nil},
		{true, 1, "put", storedefs.Cmd{Text: "put bar", Seq: 2}, nil},
		{true, 2, "echo", storedefs.Cmd{Text: "echo bar", Seq: 4}, nil},
		{true, 4, "put", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
	}
)

// TestCmd tests the command history functionality of a Store. The store must
// be empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() => (%v, %v), want (1, nil)",
			startSeq, err)
	}

	// AddCmd
	for i, cmd := range cmds {
		wantSeq := startSeq + i
		seq, err := store.AddCmd(cmd)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddCmd(%v) => (%v, %v), want (%v, nil)",
				cmd, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantedEndSeq := startSeq + len(cmds)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() => (%v, %v), want (%v, nil)",
			endSeq, err, wantedEndSeq)
	}

	// CmdsWithSeq
	wantCmdWithSeqs := make([]storedefs.Cmd, len(cmds))
	for i, cmd := range cmds {
		wantCmdWithSeqs[i] = storedefs.Cmd{Text: cmd, Seq: i + 1}
	}
	for i := 0; i < len(cmds); i++ {
		for j := i; j <= len(cmds); j++ {
			cmdWithSeqs, err := store.CmdsWithSeq(i+1, j+1)
			if !equalCmds(cmdWithSeqs, wantCmdWithSeqs[i:j]) || err != nil {
				t.Errorf("store.CmdsWithSeq(%v, %v) -> (%v, %v), want (%v, nil)",
					i+1, j+1, cmdWithSeqs, err, wantCmdWithSeqs[i:j])
			}
		}
	}

	// Cmd
	for i, wantedCmd := range cmds {
		seq := i + startSeq
		cmd, err := store.Cmd(seq)
		if cmd != wantedCmd || err != nil {
			t.Errorf("store.Cmd(%v) => (%v, %v), want (%v, nil)",
				seq, cmd, err, wantedCmd)
		}
	}

	// PrevCmd and NextCmd
	for _, tt := range searches {
		f, fname := store.PrevCmd, "store.PrevCmd"
		if tt.next {
			f, fname = store.NextCmd, "store.NextCmd"
		}
		cmd, err := f(tt.seq, tt.prefix)
		if cmd != tt.wantedCmd || !matchErr(err, tt.wantedErr) {
			t.Errorf("%s(%v, %v) => (%v, %v), want (%v, %v)",
				fname, tt.seq, tt.prefix, cmd, err, tt.wantedCmd, tt.wantedErr)
		}
	}

	// DelCmd
	if err := store.DelCmd(1); err != nil {
		t.Error("Failed to remove cmd")
	}
	if seq, err := store.Cmd(1); !matchErr(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("Cmd(1) => (%v, %v), want (%v, %v)",
			seq, err, "", storedefs.ErrNoMatchingCmd)
	}
	// Sequence numbers are not reused.
	if seq, err := store.AddCmd("new"); seq != wantedEndSeq || err != nil {
		t.Errorf("AddCmd after DelCmd => (%v, %v), want (%v, nil)", seq, err, wantedEndSeq)
	}
}

func equalCmds(a, b []storedefs.Cmd) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func matchErr(e1, e2 error) bool {
	return (e1 == nil && e2 == nil) || (e1 != nil && e2 != nil && e1.Error() == e2.Error())
}
