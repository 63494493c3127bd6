package prompt

import (
	"testing"
	"time"

	"github.com/elves/edline/pkg/cli/mode"
	"github.com/elves/edline/pkg/testutil"
	"github.com/elves/edline/pkg/tt"
	"github.com/elves/edline/pkg/ui"
)

func TestDefault_Segments(t *testing.T) {
	p := NewDefault(Basic("edline"), nil)
	tt.Test(t, tt.Fn("Left", p.Left),
		tt.Args().Rets(ui.T("edline", ui.FgGreen)))
	if right := p.Right(); len(right) != 0 {
		t.Errorf("Right() = %v, want empty", right)
	}
}

func TestDefault_Indicators(t *testing.T) {
	p := NewDefault(nil, nil)
	tt.Test(t, tt.Fn("Indicator", p.Indicator),
		tt.Args(mode.KindEmacs).Rets(ui.T("〉")),
		tt.Args(mode.KindViInsert).Rets(ui.T(": ")),
		tt.Args(mode.KindViNormal).Rets(ui.T("〉")),
		tt.Args(mode.KindHelixNormal).Rets(ui.T("[N] ")),
		tt.Args(mode.KindHelixInsert).Rets(ui.T("[I] ")),
		tt.Args(mode.KindHelixSelect).Rets(ui.T("[S] ")),
	)
	tt.Test(t, tt.Fn("SearchIndicator", p.SearchIndicator),
		tt.Args("git", false).Rets(ui.T("(reverse-search: git) ")),
		tt.Args("gti", true).Rets(ui.T("(failing reverse-search: gti) ")),
	)
	tt.Test(t, tt.Fn("MultilineIndicator", p.MultilineIndicator),
		tt.Args().Rets(ui.T("::: ")))
}

func TestWorkingDirectory(t *testing.T) {
	home := testutil.InTempDir(t)
	testutil.Setenv(t, "HOME", home)
	if got := WorkingDirectory.Get().Content(); got != home {
		t.Errorf("in home: got %q, want %q", got, home)
	}
	testutil.InTempDir(t)
	if got := WorkingDirectory.Get().Content(); got == "" || got == "~" {
		t.Errorf("outside home: got %q", got)
	}
}

func TestCurrentDateTime(t *testing.T) {
	testutil.Set(t, &now, func() time.Time {
		return time.Date(2024, 3, 9, 14, 5, 6, 0, time.Local)
	})
	if got := CurrentDateTime.Get().Content(); got != "03/09/2024 02:05:06 PM" {
		t.Errorf("got %q", got)
	}
}

func TestDefault_TriggersAsyncSegments(t *testing.T) {
	async := NewAsync(Config{
		Compute:   func() ui.Text { return ui.T("async") },
		Eagerness: func() int { return 0 }})
	p := NewDefault(Basic("sync"), async)
	if p.LateUpdates() != async.LateUpdates() {
		t.Fatalf("LateUpdates is not the channel of the async segment")
	}
	p.Trigger(true)
	testUpdate(t, async, ui.T("async"))
	if got := p.Right(); got.Content() != "async" {
		t.Errorf("Right() = %v after update", got)
	}
	if NewDefault(Basic("a"), Basic("b")).LateUpdates() != nil {
		t.Errorf("LateUpdates is non-nil without async segments")
	}
}

func TestCommand(t *testing.T) {
	seg := Command("echo first; echo second")
	seg.Trigger(true)
	waitForContent(t, seg, "first")

	failing := Command("exit 3")
	failing.Trigger(true)
	waitForContent(t, failing, "!exit status 3")
}

// Waits until seg shows want. A slow command may first show stale content.
func waitForContent(t *testing.T, seg *Async, want string) {
	t.Helper()
	timeout := time.After(testutil.Scaled(2 * time.Second))
	for {
		select {
		case <-seg.LateUpdates():
			if seg.Get().Content() == want {
				return
			}
		case <-timeout:
			t.Errorf("timed out, content is %q, want %q", seg.Get().Content(), want)
			return
		}
	}
}
