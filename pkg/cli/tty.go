package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/elves/edline/pkg/cli/term"
	"github.com/elves/edline/pkg/sys"
)

// TTY is the type the terminal dependency of the editor needs to satisfy.
type TTY interface {
	// Setup sets up the terminal for the CLI app.
	//
	// This method returns a restore function that undoes the setup, and any
	// error during setup. It only returns fatal errors that make the terminal
	// unsuitable for later operations; non-fatal errors may be reported by
	// showing a warning message, but not returned.
	//
	// This method should be called before any other method is called.
	Setup() (restore func(), err error)

	// ReadEvent reads a terminal event.
	ReadEvent() (term.Event, error)
	// CloseReader releases resources allocated for reading terminal events.
	// A ReadEvent call in progress returns term.ErrStopped.
	CloseReader()

	term.Writer

	// NotifySignals start relaying signals and returns a channel on which
	// signals are delivered.
	NotifySignals() <-chan os.Signal
	// StopSignals stops the relaying of signals. After this function returns,
	// the channel returned by NotifySignals will no longer deliver signals.
	StopSignals()

	// Size returns the height and width of the terminal.
	Size() (h, w int)
}

type aTTY struct {
	in, out *os.File
	term.Writer
	rMutex sync.Mutex
	r      term.Reader
	// Set by CloseReader until the next Setup.
	closed bool
	sigCh  chan os.Signal
}

// NewTTY returns a new TTY from input and output terminal files.
func NewTTY(in, out *os.File) TTY {
	return &aTTY{in: in, out: out, Writer: term.NewWriter(out)}
}

func (t *aTTY) Setup() (func(), error) {
	t.rMutex.Lock()
	t.closed = false
	t.rMutex.Unlock()
	restore, err := term.Setup(t.in, t.out)
	if err != nil {
		return nil, err
	}
	return func() {
		err := restore()
		if err != nil {
			fmt.Fprintln(t.out, "failed to restore terminal properties:", err)
		}
	}, nil
}

func (t *aTTY) Size() (h, w int) {
	return sys.WinSize(t.out)
}

func (t *aTTY) ReadEvent() (term.Event, error) {
	t.rMutex.Lock()
	if t.closed {
		t.rMutex.Unlock()
		return nil, term.ErrStopped
	}
	if t.r == nil {
		r, err := term.NewReader(t.in)
		if err != nil {
			t.rMutex.Unlock()
			return nil, err
		}
		t.r = r
	}
	r := t.r
	t.rMutex.Unlock()
	return r.ReadEvent()
}

func (t *aTTY) CloseReader() {
	t.rMutex.Lock()
	defer t.rMutex.Unlock()
	if t.r != nil {
		t.r.Close()
	}
	t.r = nil
	t.closed = true
}

func (t *aTTY) NotifySignals() <-chan os.Signal {
	t.sigCh = sys.NotifySignals()
	return t.sigCh
}

func (t *aTTY) StopSignals() {
	sys.StopSignals(t.sigCh)
	close(t.sigCh)
	t.sigCh = nil
}
