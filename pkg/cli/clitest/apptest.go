package clitest

import (
	"errors"
	"testing"

	"github.com/elves/edline/pkg/cli"
	"github.com/elves/edline/pkg/cli/term"
	"github.com/elves/edline/pkg/ui"
)

// Fixture is a test fixture.
type Fixture struct {
	App   cli.App
	TTY   TTYCtrl
	width int

	done chan struct{}
	sig  cli.Signal
	err  error
}

// ErrStopped is the error returned by ReadLine after Fixture.Stop.
var ErrStopped = errors.New("stopped by fixture")

// DotHere can be passed to MakeBuffer, TestTTY and TestTTYNotes to mark the
// position of the dot.
var DotHere = dotHere{}

type dotHere struct{}

// Setup sets up a test fixture. It contains an App whose ReadLine method has
// been started asynchronously.
func Setup(fns ...func(*cli.AppSpec, TTYCtrl)) *Fixture {
	tty, ttyCtrl := NewFakeTTY()
	spec := cli.AppSpec{TTY: tty}
	for _, fn := range fns {
		fn(&spec, ttyCtrl)
	}
	_, width := tty.Size()
	f := &Fixture{App: cli.NewApp(spec), TTY: ttyCtrl, width: width}
	f.Restart()
	return f
}

// WithSpec takes a function that operates on *cli.AppSpec, and wraps it into a
// form suitable for passing to Setup.
func WithSpec(f func(*cli.AppSpec)) func(*cli.AppSpec, TTYCtrl) {
	return func(spec *cli.AppSpec, _ TTYCtrl) { f(spec) }
}

// WithTTY takes a function that operates on TTYCtrl, and wraps it to a form
// suitable for passing to Setup.
func WithTTY(f func(TTYCtrl)) func(*cli.AppSpec, TTYCtrl) {
	return func(_ *cli.AppSpec, tty TTYCtrl) { f(tty) }
}

// Restart starts another ReadLine session of the App. The previous session
// must have ended.
func (f *Fixture) Restart() {
	done := make(chan struct{})
	f.done = done
	go func() {
		f.sig, f.err = f.App.ReadLine()
		close(done)
	}()
}

// Wait waits for ReadLine to finish, and returns its return values.
func (f *Fixture) Wait() (cli.Signal, error) {
	<-f.done
	return f.sig, f.err
}

// Stop ends the session by injecting a fatal read error, unless it has ended
// already, and waits for ReadLine to return.
func (f *Fixture) Stop() {
	select {
	case <-f.done:
	default:
		f.TTY.Inject(term.FatalErrorEvent{Err: ErrStopped})
	}
	f.Wait()
}

// MakeBuffer is a helper for building a buffer as wide as the fake terminal.
// Strings are written plainly, ui.Text values with their styles, and DotHere
// marks the dot.
func (f *Fixture) MakeBuffer(args ...any) *term.Buffer {
	bb := term.NewBufferBuilder(f.width)
	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			bb.Write(arg)
		case ui.Text:
			bb.WriteStyled(arg)
		case dotHere:
			bb.SetDotHere()
		default:
			panic("invalid argument to MakeBuffer")
		}
	}
	return bb.Buffer()
}

// TestTTY is equivalent to f.TTY.TestBuffer(f.MakeBuffer(args...)).
func (f *Fixture) TestTTY(t *testing.T, args ...any) {
	t.Helper()
	f.TTY.TestBuffer(t, f.MakeBuffer(args...))
}

// TestTTYNotes is equivalent to f.TTY.TestNotesBuffer(f.MakeBuffer(args...)).
func (f *Fixture) TestTTYNotes(t *testing.T, args ...any) {
	t.Helper()
	f.TTY.TestNotesBuffer(t, f.MakeBuffer(args...))
}
