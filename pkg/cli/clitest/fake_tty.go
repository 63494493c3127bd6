// Package clitest provides utilities for testing cli.App.
package clitest

import (
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/elves/edline/pkg/cli"
	"github.com/elves/edline/pkg/cli/term"
	"github.com/elves/edline/pkg/testutil"
)

const (
	// Maximum number of buffer updates FakeTTY expect to see.
	fakeTTYBufferUpdates = 4096
	// Maximum number of events FakeTTY produces.
	fakeTTYEvents = 4096
	// Maximum number of signals FakeTTY produces.
	fakeTTYSignals = 4096
)

// An implementation of the cli.TTY interface that is useful in tests.
type fakeTTY struct {
	setup func() (func(), error)
	// Channel that ReadEvent reads from. Events injected between sessions
	// are kept for the next one.
	eventCh chan term.Event
	// Closed by CloseReader, and replaced by Setup.
	stopCh    chan struct{}
	stopped   bool
	stopMutex sync.Mutex
	// Channel for publishing updates of the main buffer and notes buffer.
	bufCh, notesBufCh chan *term.Buffer
	// Records history of the main buffer and notes buffer.
	bufs, notesBufs []*term.Buffer
	// Number of times the screen and the scrollback have been cleared.
	cleared, scrollbackCleared int
	// Mutex for guarding the fields above.
	bufMutex sync.RWMutex
	// Channel that NotifySignals returns; nil outside a session.
	sigCh    chan os.Signal
	sigMutex sync.Mutex

	sizeMutex sync.RWMutex
	// Predefined sizes.
	height, width int
}

// Initial size of fake TTY.
const (
	FakeTTYHeight = 20
	FakeTTYWidth  = 50
)

// NewFakeTTY creates a new FakeTTY and a handle for controlling it. The initial
// size of the terminal is FakeTTYHeight and FakeTTYWidth.
func NewFakeTTY() (cli.TTY, TTYCtrl) {
	tty := &fakeTTY{
		eventCh:    make(chan term.Event, fakeTTYEvents),
		stopCh:     make(chan struct{}),
		bufCh:      make(chan *term.Buffer, fakeTTYBufferUpdates),
		notesBufCh: make(chan *term.Buffer, fakeTTYBufferUpdates),
		height:     FakeTTYHeight, width: FakeTTYWidth,
	}
	return tty, TTYCtrl{tty}
}

// Starts reading again if CloseReader was called, and delegates to the setup
// function specified using the SetSetup method of TTYCtrl, or return a nop
// function and a nil error.
func (t *fakeTTY) Setup() (func(), error) {
	t.stopMutex.Lock()
	if t.stopped {
		t.stopCh = make(chan struct{})
		t.stopped = false
	}
	t.stopMutex.Unlock()
	if t.setup == nil {
		return func() {}, nil
	}
	return t.setup()
}

// Returns the size specified by using the SetSize method of TTYCtrl.
func (t *fakeTTY) Size() (h, w int) {
	t.sizeMutex.RLock()
	defer t.sizeMutex.RUnlock()
	return t.height, t.width
}

// Returns next event from t.eventCh, or term.ErrStopped after CloseReader.
func (t *fakeTTY) ReadEvent() (term.Event, error) {
	t.stopMutex.Lock()
	stopCh := t.stopCh
	t.stopMutex.Unlock()
	select {
	case <-stopCh:
		return nil, term.ErrStopped
	default:
	}
	select {
	case event := <-t.eventCh:
		return event, nil
	case <-stopCh:
		return nil, term.ErrStopped
	}
}

func (t *fakeTTY) CloseReader() {
	t.stopMutex.Lock()
	defer t.stopMutex.Unlock()
	if !t.stopped {
		close(t.stopCh)
		t.stopped = true
	}
}

// Returns the last recorded buffer.
func (t *fakeTTY) Buffer() *term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	if len(t.bufs) == 0 {
		return nil
	}
	return t.bufs[len(t.bufs)-1]
}

// Records a nil buffer.
func (t *fakeTTY) ResetBuffer() {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.recordBuf(nil)
}

// UpdateBuffer records a new pair of buffers, i.e. sending them to their
// respective channels and appending them to their respective slices.
func (t *fakeTTY) UpdateBuffer(bufNotes, buf *term.Buffer, _ bool) error {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.recordNotesBuf(bufNotes)
	t.recordBuf(buf)
	return nil
}

func (t *fakeTTY) HideCursor() {
}

func (t *fakeTTY) ShowCursor() {
}

func (t *fakeTTY) ClearScreen() {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.cleared++
}

func (t *fakeTTY) ClearScrollback() {
	t.bufMutex.Lock()
	defer t.bufMutex.Unlock()
	t.scrollbackCleared++
}

func (t *fakeTTY) NotifySignals() <-chan os.Signal {
	t.sigMutex.Lock()
	defer t.sigMutex.Unlock()
	t.sigCh = make(chan os.Signal, fakeTTYSignals)
	return t.sigCh
}

func (t *fakeTTY) StopSignals() {
	t.sigMutex.Lock()
	defer t.sigMutex.Unlock()
	if t.sigCh != nil {
		close(t.sigCh)
		t.sigCh = nil
	}
}

func (t *fakeTTY) recordBuf(buf *term.Buffer) {
	t.bufs = append(t.bufs, buf)
	t.bufCh <- buf
}

func (t *fakeTTY) recordNotesBuf(buf *term.Buffer) {
	t.notesBufs = append(t.notesBufs, buf)
	t.notesBufCh <- buf
}

// TTYCtrl is an interface for controlling a fake terminal.
type TTYCtrl struct{ *fakeTTY }

// GetTTYCtrl takes a TTY and returns a TTYCtrl and true, if the TTY is a fake
// terminal. Otherwise it returns an invalid TTYCtrl and false.
func GetTTYCtrl(t cli.TTY) (TTYCtrl, bool) {
	fake, ok := t.(*fakeTTY)
	return TTYCtrl{fake}, ok
}

// SetSetup sets the return values of the Setup method of the fake terminal.
func (t TTYCtrl) SetSetup(restore func(), err error) {
	t.setup = func() (func(), error) {
		return restore, err
	}
}

// SetSize sets the size of the fake terminal.
func (t TTYCtrl) SetSize(h, w int) {
	t.sizeMutex.Lock()
	defer t.sizeMutex.Unlock()
	t.height, t.width = h, w
}

// Inject injects events to the fake terminal.
func (t TTYCtrl) Inject(events ...term.Event) {
	for _, event := range events {
		t.eventCh <- event
	}
}

// EventCh returns the underlying channel for delivering events.
func (t TTYCtrl) EventCh() chan term.Event {
	return t.eventCh
}

// InjectSignal injects signals. Signals injected while no session is reading
// signals are dropped.
func (t TTYCtrl) InjectSignal(sigs ...os.Signal) {
	t.sigMutex.Lock()
	defer t.sigMutex.Unlock()
	if t.sigCh == nil {
		return
	}
	for _, sig := range sigs {
		t.sigCh <- sig
	}
}

// ScreenCleared returns the number of times ClearScreen has been called on the
// TTY.
func (t TTYCtrl) ScreenCleared() int {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return t.cleared
}

// ScrollbackCleared returns the number of times ClearScrollback has been
// called on the TTY.
func (t TTYCtrl) ScrollbackCleared() int {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return t.scrollbackCleared
}

// TestBuffer verifies that a buffer will appear within 100ms, and aborts the
// test if it doesn't.
func (t TTYCtrl) TestBuffer(tt *testing.T, b *term.Buffer) {
	tt.Helper()
	ok := testBuffer(b, t.bufCh)
	if !ok {
		tt.Logf("wanted buffer not shown:\n%s", b.TTYString())

		lastBuf := t.LastBuffer()
		tt.Logf("Last buffer: %s", lastBuf.TTYString())
		if lastBuf == nil {
			bufs := t.BufferHistory()
			for i := len(bufs) - 1; i >= 0; i-- {
				if bufs[i] != nil {
					tt.Logf("Last non-nil buffer: %s", bufs[i].TTYString())
					break
				}
			}
		}
		tt.FailNow()
	}
}

// TestNotesBuffer verifies that a notes buffer will appear within 100ms, and
// aborts the test if it doesn't.
func (t TTYCtrl) TestNotesBuffer(tt *testing.T, b *term.Buffer) {
	tt.Helper()
	ok := testBuffer(b, t.notesBufCh)
	if !ok {
		tt.Logf("wanted notes buffer not shown:\n%s", b.TTYString())

		bufs := t.NotesBufferHistory()
		tt.Logf("There has been %d notes buffers. None-nil ones are:", len(bufs))
		for i, buf := range bufs {
			if buf != nil {
				tt.Logf("#%d:\n%s", i, buf.TTYString())
			}
		}
		tt.FailNow()
	}
}

// BufferHistory returns a slice of all buffers that have appeared.
func (t TTYCtrl) BufferHistory() []*term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return append([]*term.Buffer(nil), t.bufs...)
}

// LastBuffer returns the last buffer that has appeared.
func (t TTYCtrl) LastBuffer() *term.Buffer {
	return t.fakeTTY.Buffer()
}

// NotesBufferHistory returns a slice of all notes buffers that have appeared.
func (t TTYCtrl) NotesBufferHistory() []*term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	return append([]*term.Buffer(nil), t.notesBufs...)
}

func (t TTYCtrl) LastNotesBuffer() *term.Buffer {
	t.bufMutex.RLock()
	defer t.bufMutex.RUnlock()
	if len(t.notesBufs) == 0 {
		return nil
	}
	return t.notesBufs[len(t.notesBufs)-1]
}

// Tests that an buffer appears on the channel within 100ms.
func testBuffer(want *term.Buffer, ch <-chan *term.Buffer) bool {
	timeout := time.After(testutil.Scaled(100 * time.Millisecond))
	for {
		select {
		case buf := <-ch:
			if reflect.DeepEqual(buf, want) {
				return true
			}
		case <-timeout:
			return false
		}
	}
}
