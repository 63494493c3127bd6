package prog_test

import (
	"os"
	"testing"

	"github.com/elves/edline/pkg/logutil"
	. "github.com/elves/edline/pkg/prog"
	"github.com/elves/edline/pkg/prog/progtest"
	"github.com/elves/edline/pkg/testutil"
)

var (
	Test       = progtest.Test
	ThatEdline = progtest.ThatEdline
)

func TestCommonFlagHandling(t *testing.T) {
	testutil.InTempDir(t)
	t.Cleanup(func() { logutil.SetOutputFile("") })

	Test(t, testProgram{},
		ThatEdline("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatEdline("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatEdline("-help").
			WritesStdoutContaining("Usage: edline [flags]"),

		ThatEdline("-cpuprofile", "cpuprof").DoesNothing(),
		ThatEdline("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),

		ThatEdline("-log", "log").DoesNothing(),
		ThatEdline("-log", "/a/bad/path").
			WritesStderrContaining("/a/bad/path"),
	)

	// Check for the effect of -cpuprofile and -log. There isn't much to test
	// beyond a sanity check that the files now exist.
	for _, name := range []string{"cpuprof", "log"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("file %s does not exist: %v", name, err)
		}
	}
}

func TestFlagsArePassed(t *testing.T) {
	var got Flags
	Test(t, testProgram{flags: &got},
		ThatEdline("-mode", "vi", "-history", "h.txt", "-rc", "rc.yaml", "-clock").
			DoesNothing(),
	)
	want := Flags{Mode: "vi", History: "h.txt", RC: "rc.yaml", Clock: true}
	if got != want {
		t.Errorf("got flags %+v, want %+v", got, want)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatEdline().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatEdline().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatEdline().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatEdline().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatEdline().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatEdline().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatEdline().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
	flags       *Flags
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	if p.flags != nil {
		*p.flags = *f
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}
