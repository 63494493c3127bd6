// Package cli implements a generic interactive line editor.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/cli/histutil"
	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/cli/menu"
	"github.com/elves/edline/pkg/cli/mode"
	"github.com/elves/edline/pkg/cli/term"
	"github.com/elves/edline/pkg/logutil"
	"github.com/elves/edline/pkg/strutil"
	"github.com/elves/edline/pkg/sys"
	"github.com/elves/edline/pkg/ui"
)

var logger = logutil.GetLogger("[cli] ")

// App represents a CLI app.
type App interface {
	// ReadLine reads a line from the terminal by running an event loop, and
	// returns how the session ended. This function is not re-entrant.
	ReadLine() (Signal, error)

	// SetEditMode switches the keybinding family. It takes effect on the next
	// key.
	SetEditMode(m mode.EditMode)
	// EditMode returns the active keybinding family.
	EditMode() mode.EditMode

	// CopyState returns a copy of the state of the app.
	CopyState() State

	// Redraw requests a redraw. It never blocks and can be called regardless of
	// whether the App is active or not.
	Redraw()
	// RedrawFull requests a full redraw. It never blocks and can be called
	// regardless of whether the App is active or not.
	RedrawFull()
	// Notify adds a note and requests a redraw. It can be called from any
	// goroutine.
	Notify(note ui.Text)
}

// State is a snapshot of the state of an App.
type State struct {
	// Content of the buffer and the byte index of the cursor.
	Content string
	Dot     int
	// The active mode.
	Mode mode.Kind
	// Whether the history search is active, and its query.
	Searching bool
	Query     string
	// Name of the active menu, if any.
	Menu string
	// Notes that have been added since the last redraw.
	Notes []ui.Text
}

type app struct {
	loop    *loop
	reqRead chan struct{}

	tty               TTY
	maxHeight         func() int
	prompt            Prompt
	highlighter       Highlighter
	searchHighlighter func(string) Highlighter
	hinter            Hinter
	validator         Validator
	history           histutil.Store
	printer           *Printer
	chordTimeout      time.Duration
	clearScreenExits  bool
	rpromptPersistent bool

	// Guards all of the fields below except notes. The handle and redraw
	// callbacks hold it, so methods called from other goroutines can read a
	// consistent state.
	stateMutex sync.Mutex
	ed         *editor.Editor
	modes      *mode.State
	menus      *menu.Controller
	walk       *historyWalk
	walked     bool
	search     *historySearch
	paste      *strings.Builder
	keepBuffer bool
	chordTimer *time.Timer
	chordGen   int

	notesMutex sync.Mutex
	notes      []ui.Text
}

// Sent by the chord timer; stale values are ignored.
type chordTimeout int

// Result of handling an event.
type status int

const (
	handled status = iota
	// The event doesn't apply in the current state. UntilFound events move
	// on to the next candidate.
	inapplicable
)

// NewApp creates a new App from the given specification.
func NewApp(spec AppSpec) App {
	a := &app{
		tty:               spec.TTY,
		maxHeight:         spec.MaxHeight,
		prompt:            spec.Prompt,
		highlighter:       spec.Highlighter,
		searchHighlighter: spec.SearchHighlighter,
		hinter:            spec.Hinter,
		validator:         spec.Validator,
		history:           spec.History,
		printer:           spec.Printer,
		chordTimeout:      spec.ChordTimeout,
		clearScreenExits:  spec.ClearScreenExits,
		rpromptPersistent: spec.RPromptPersistent,
	}
	if a.tty == nil {
		a.tty = NewTTY(os.Stdin, os.Stderr)
	}
	if a.maxHeight == nil {
		a.maxHeight = func() int { return -1 }
	}
	if a.prompt == nil {
		a.prompt = NewConstPrompt(ui.T("> "))
	}
	if a.chordTimeout <= 0 {
		a.chordTimeout = DefaultChordTimeout
	}
	keymaps := spec.Keymaps
	if keymaps == (keymap.Set{}) {
		keymaps = keymap.DefaultSet()
	}
	a.modes = mode.NewState(keymaps, spec.EditMode)
	a.ed = editor.New(spec.CutBuffer, spec.SystemClipboard)
	a.menus = menu.NewController()
	if spec.Completer != nil {
		a.menus.Register(menu.NewCompletionMenu(
			spec.Completer, spec.QuickCompletion, spec.PartialCompletion))
	}
	if spec.History != nil {
		a.menus.Register(menu.NewHistoryMenu(spec.History))
	}
	a.loop = newLoop(a.handle, a.redraw)
	return a
}

func (a *app) SetEditMode(m mode.EditMode) {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()
	a.modes.SetEditMode(m)
}

func (a *app) EditMode() mode.EditMode {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()
	return a.modes.EditMode()
}

func (a *app) CopyState() State {
	a.stateMutex.Lock()
	buf := a.ed.Buffer()
	s := State{
		Content: buf.Content(),
		Dot:     buf.Dot(),
		Mode:    a.modes.Kind(),
	}
	if a.search != nil {
		s.Searching = true
		s.Query = a.search.query
	}
	s.Menu, _ = a.menus.Active()
	a.stateMutex.Unlock()

	a.notesMutex.Lock()
	s.Notes = append([]ui.Text(nil), a.notes...)
	a.notesMutex.Unlock()
	return s
}

func (a *app) ReadLine() (Signal, error) {
	defer a.endSession()

	restore, err := a.tty.Setup()
	if err != nil {
		return Signal{}, err
	}
	defer restore()

	var wg sync.WaitGroup
	defer wg.Wait()

	// Relay input events.
	a.reqRead = make(chan struct{}, 1)
	a.reqRead <- struct{}{}
	defer close(a.reqRead)
	defer a.tty.CloseReader()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range a.reqRead {
			event, err := a.tty.ReadEvent()
			if err == nil {
				a.loop.Input(event)
			} else if err == term.ErrStopped {
				return
			} else if term.IsReadErrorRecoverable(err) {
				a.loop.Input(term.NonfatalErrorEvent{Err: err})
			} else {
				a.loop.Input(term.FatalErrorEvent{Err: err})
				return
			}
		}
	}()

	// Relay signals.
	sigCh := a.tty.NotifySignals()
	defer a.tty.StopSignals()
	wg.Add(1)
	go func() {
		for sig := range sigCh {
			a.loop.Input(sig)
		}
		wg.Done()
	}()

	// Relay printed lines and late updates of the prompt.
	stopRelay := make(chan struct{})
	defer close(stopRelay)
	if a.printer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case line := <-a.printer.Lines():
					a.Notify(ui.T(line))
				case <-stopRelay:
					return
				}
			}
		}()
	}
	if l, ok := a.prompt.(lateUpdater); ok {
		if ch := l.LateUpdates(); ch != nil {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-ch:
						a.Redraw()
					case <-stopRelay:
						return
					}
				}
			}()
		}
	}

	a.triggerPrompt(true)

	return a.loop.Run()
}

// Resets the per-session state. The buffer survives only a host command,
// which is expected to be followed by another session.
func (a *app) endSession() {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()
	a.stopChordTimer()
	a.menus.Close()
	a.walk = nil
	a.search = nil
	a.paste = nil
	a.modes.Reset()
	if a.keepBuffer {
		a.keepBuffer = false
		a.ed.ResetUndo()
	} else {
		a.ed.Reset()
	}
}

func (a *app) Redraw() {
	a.loop.Redraw(false)
}

func (a *app) RedrawFull() {
	a.loop.Redraw(true)
}

func (a *app) Notify(note ui.Text) {
	a.notesMutex.Lock()
	a.notes = append(a.notes, note)
	a.notesMutex.Unlock()
	a.Redraw()
}

func (a *app) notifyError(what string, err error) {
	logger.Printf("%s: %v", what, err)
	a.Notify(ui.T(fmt.Sprintf("%s: %v", what, err), ui.FgRed))
}

func (a *app) takeNotes() []ui.Text {
	a.notesMutex.Lock()
	defer a.notesMutex.Unlock()
	notes := a.notes
	a.notes = nil
	return notes
}

func (a *app) triggerPrompt(force bool) {
	if t, ok := a.prompt.(triggerer); ok {
		t.Trigger(force)
	}
}

func (a *app) handle(e event) {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()
	switch e := e.(type) {
	case os.Signal:
		switch e {
		case syscall.SIGHUP, syscall.SIGTERM:
			a.loop.Return(Signal{}, io.EOF)
		case syscall.SIGINT:
			a.loop.Return(Signal{Kind: CtrlC}, nil)
		case sys.SIGWINCH:
			a.RedrawFull()
		}
	case chordTimeout:
		if int(e) == a.chordGen && a.modes.Pending() {
			a.chordTimer = nil
			a.dispatch(a.modes.Flush())
			if a.modes.Pending() {
				a.armChordTimer()
			}
		}
	case term.Event:
		a.handleTermEvent(e)
		if !a.loop.HasReturned() {
			a.triggerPrompt(false)
			a.reqRead <- struct{}{}
		}
	}
}

func (a *app) handleTermEvent(e term.Event) {
	switch e := e.(type) {
	case term.PasteSetting:
		if e {
			a.paste = &strings.Builder{}
			return
		}
		if a.paste != nil {
			text := strutil.NormalizeNewlines(a.paste.String())
			a.paste = nil
			if text != "" {
				a.dispatch(keymap.EditEvent(
					editor.TextCmd(editor.InsertString, text)))
			}
		}
	case term.KeyEvent:
		k := ui.Key(e)
		if a.paste != nil {
			a.paste.WriteString(pastedText(k))
			return
		}
		a.handleKey(k)
	case term.NonfatalErrorEvent:
		logger.Println("error reading terminal:", e.Err)
	case term.FatalErrorEvent:
		a.loop.Return(Signal{}, e.Err)
	}
}

// Returns the text a key stands for inside a bracketed paste.
func pastedText(k ui.Key) string {
	switch {
	case k == ui.K(ui.Enter):
		return "\n"
	case k == ui.K(ui.Tab):
		return "\t"
	case k.Mod == 0 && k.Rune >= 0:
		return string(k.Rune)
	}
	return ""
}

func (a *app) handleKey(k ui.Key) {
	a.stopChordTimer()
	a.dispatch(a.modes.Resolve(k))
	if a.modes.Pending() {
		a.armChordTimer()
	}
}

func (a *app) armChordTimer() {
	a.chordGen++
	gen := a.chordGen
	a.chordTimer = time.AfterFunc(a.chordTimeout, func() {
		a.loop.Input(chordTimeout(gen))
	})
}

func (a *app) stopChordTimer() {
	if a.chordTimer != nil {
		a.chordTimer.Stop()
		a.chordTimer = nil
	}
	a.chordGen++
}

func (a *app) dispatch(ev keymap.Event) {
	if a.search != nil && !a.modes.Searching() {
		// The key that was just resolved ended the search.
		a.search = nil
	}
	a.walked = false
	a.handleEvent(ev)
	if !a.walked {
		a.walk = nil
	}
}

func (a *app) handleEvent(ev keymap.Event) status {
	switch ev.Kind {
	case keymap.None:
		return inapplicable
	case keymap.Edit:
		if a.search != nil {
			a.editQuery(ev.Commands)
			return handled
		}
		a.edit(ev.Commands)
		return handled
	case keymap.Menu:
		ok, err := a.menus.Activate(ev.Name, a.ed)
		if err != nil {
			a.notifyError("completion", err)
		}
		if !ok {
			return inapplicable
		}
		return handled
	case keymap.MenuNext, keymap.MenuPrevious, keymap.MenuUp, keymap.MenuDown,
		keymap.MenuLeft, keymap.MenuRight, keymap.MenuPageNext,
		keymap.MenuPagePrevious:
		if a.menus.Navigate(ev.Kind) {
			return handled
		}
		return inapplicable
	case keymap.UntilFound:
		for _, sub := range ev.Events {
			if a.handleEvent(sub) == handled {
				return handled
			}
		}
		if a.search != nil {
			return handled
		}
		return inapplicable
	case keymap.Multiple:
		for _, sub := range ev.Events {
			a.handleEvent(sub)
		}
		return handled
	case keymap.Submit:
		a.submit()
		return handled
	case keymap.SubmitOrNewline:
		if a.ed.Buffer().AtEnd() {
			a.submit()
		} else {
			a.edit([]editor.Command{editor.C(editor.InsertNewline)})
		}
		return handled
	case keymap.Enter:
		return a.enter()
	case keymap.Esc:
		if a.search != nil {
			a.endSearch(false)
			return handled
		}
		if a.menus.Close() {
			return handled
		}
		return inapplicable
	case keymap.CtrlC:
		a.loop.Return(Signal{Kind: CtrlC}, nil)
		return handled
	case keymap.CtrlD:
		if a.ed.Buffer().IsEmpty() {
			a.loop.Return(Signal{Kind: CtrlD}, nil)
		} else {
			a.edit([]editor.Command{editor.C(editor.Delete)})
		}
		return handled
	case keymap.ClearScreen, keymap.ClearScrollback:
		if a.clearScreenExits {
			a.loop.Return(Signal{Kind: CtrlL}, nil)
			return handled
		}
		if ev.Kind == keymap.ClearScreen {
			a.tty.ClearScreen()
		} else {
			a.tty.ClearScrollback()
		}
		a.tty.ResetBuffer()
		a.RedrawFull()
		return handled
	case keymap.HistoryHintComplete:
		return a.completeHint(false)
	case keymap.HistoryHintWordComplete:
		return a.completeHint(true)
	case keymap.PreviousHistory:
		return a.historyPrev()
	case keymap.NextHistory:
		return a.historyNext()
	case keymap.Up:
		if a.ed.Buffer().OnFirstLine() {
			return a.historyPrev()
		}
		a.edit([]editor.Command{editor.C(editor.MoveLineUp)})
		return handled
	case keymap.Down:
		if a.ed.Buffer().OnLastLine() {
			return a.historyNext()
		}
		a.edit([]editor.Command{editor.C(editor.MoveLineDown)})
		return handled
	case keymap.Left:
		a.edit([]editor.Command{editor.C(editor.MoveLeft)})
		return handled
	case keymap.Right:
		a.edit([]editor.Command{editor.C(editor.MoveRight)})
		return handled
	case keymap.SearchHistory:
		if a.search == nil {
			return a.startSearch()
		}
		a.search.next(a)
		return handled
	case keymap.Repaint:
		a.RedrawFull()
		return handled
	case keymap.ExecuteHostCommand:
		a.keepBuffer = true
		a.loop.Return(SuccessSignal(ev.Name), nil)
		return handled
	}
	logger.Println("unhandled event", ev)
	return inapplicable
}

// Runs edit commands against the buffer and refreshes the active menu when
// the content changes.
func (a *app) edit(cmds []editor.Command) {
	before := a.ed.Buffer().Content()
	for _, cmd := range cmds {
		if cmd.Kind == editor.Complete {
			_, err := a.menus.CompleteInline(keymap.CompletionMenu, a.ed)
			if err != nil {
				a.notifyError("completion", err)
			}
			continue
		}
		a.ed.Run(cmd)
	}
	if a.ed.Buffer().Content() != before {
		if err := a.menus.Update(a.ed); err != nil {
			a.notifyError("completion", err)
		}
	}
}

func (a *app) enter() status {
	if a.search != nil {
		a.endSearch(true)
		return handled
	}
	if a.menus.Accept(a.ed) {
		return handled
	}
	if a.validator == nil || a.validator.Validate(a.ed.Buffer().Content()) {
		a.submit()
	} else {
		a.edit([]editor.Command{editor.C(editor.InsertNewline)})
	}
	return handled
}

func (a *app) submit() {
	content := a.ed.Buffer().Content()
	if a.history != nil && strings.TrimSpace(content) != "" {
		if _, err := a.history.AddCmd(content); err != nil {
			logger.Println("adding history:", err)
		}
	}
	a.menus.Close()
	a.loop.Return(SuccessSignal(content), nil)
}

func (a *app) completeHint(word bool) status {
	buf := a.ed.Buffer()
	if a.hinter == nil || a.search != nil || !buf.AtEnd() {
		return inapplicable
	}
	a.hinter.Hint(buf.Content(), buf.Dot())
	s := a.hinter.Complete()
	if word {
		s = a.hinter.NextToken()
	}
	if s == "" {
		return inapplicable
	}
	a.edit([]editor.Command{editor.TextCmd(editor.InsertString, s)})
	return handled
}
