package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/elves/edline/pkg/cli/linebuf"
	"github.com/elves/edline/pkg/cli/undo"
	"github.com/elves/edline/pkg/logutil"
)

var logger = logutil.GetLogger("[cli/editor] ")

// Snapshot is the state kept in the undo history.
type Snapshot struct {
	Content string
	Dot     int
}

// Editor couples a buffer with its undo history and clipboards.
type Editor struct {
	buf    *linebuf.Buffer
	undo   *undo.Manager[Snapshot]
	cut    Clipboard
	system Clipboard
}

// New creates an Editor with an empty buffer. The cut buffer backs the cut and
// paste commands; the system clipboard backs the *System commands. A nil
// clipboard is replaced by a LocalClipboard.
func New(cut, system Clipboard) *Editor {
	if cut == nil {
		cut = &LocalClipboard{}
	}
	if system == nil {
		system = &LocalClipboard{}
	}
	return &Editor{
		buf:    &linebuf.Buffer{},
		undo:   undo.NewManager(Snapshot{}),
		cut:    cut,
		system: system,
	}
}

// Buffer returns the underlying buffer. Changes made directly to it are not
// recorded in the undo history.
func (e *Editor) Buffer() *linebuf.Buffer { return e.buf }

// CutBuffer returns the clipboard used by cut and paste commands.
func (e *Editor) CutBuffer() Clipboard { return e.cut }

// UndoStack returns the undo history.
func (e *Editor) UndoStack() *undo.Stack[Snapshot] { return e.undo.Stack() }

func (e *Editor) snapshot() Snapshot {
	return Snapshot{e.buf.Content(), e.buf.Dot()}
}

func (e *Editor) restore(s Snapshot) {
	e.buf.SetContent(s.Content)
	e.buf.SetDot(s.Dot)
}

// Reset empties the buffer and the undo history.
func (e *Editor) Reset() {
	e.buf.Clear()
	e.undo.Reset(Snapshot{})
}

// ResetUndo drops the undo history, keeping the buffer.
func (e *Editor) ResetUndo() { e.undo.Reset(e.snapshot()) }

// Checkpoint makes the next edit start a new undo unit.
func (e *Editor) Checkpoint() { e.undo.Checkpoint() }

// SetContentFromHistory replaces the buffer with a history entry, putting the
// cursor at the end. Successive replacements form one undo unit.
func (e *Editor) SetContentFromHistory(s string) {
	e.buf.SetContent(s)
	e.undo.Record(e.snapshot(), undo.B(undo.HistoryNavigation))
}

// SetContent replaces the buffer as a single undo unit, putting the cursor at
// dot.
func (e *Editor) SetContent(s string, dot int) {
	e.buf.SetContent(s)
	e.buf.SetDot(dot)
	e.undo.Record(e.snapshot(), undo.Checkpoint)
}

// ReplaceRange replaces the byte range [from, to) with text as a single undo
// unit, leaving the cursor after the text.
func (e *Editor) ReplaceRange(from, to int, text string) {
	e.buf.ClearSelection()
	e.buf.Replace(from, to, text)
	e.undo.Record(e.snapshot(), undo.Checkpoint)
}

// RunAll runs commands in order.
func (e *Editor) RunAll(cmds []Command) {
	for _, cmd := range cmds {
		e.Run(cmd)
	}
}

// Run runs one command and records the result in the undo history.
func (e *Editor) Run(cmd Command) {
	typ := cmd.EditType()
	if typ == TypeMoveCursor && cmd.Kind.IsMove() {
		if !cmd.Select {
			e.buf.ClearSelection()
		} else if !e.buf.HasAnchor() {
			e.buf.SetAnchor()
		}
	}
	b := e.exec(cmd)
	switch typ {
	case TypeMoveCursor:
		e.undo.Record(e.snapshot(), b)
	case TypeEditText:
		e.buf.ClearSelection()
		e.undo.Record(e.snapshot(), b)
	}
}

func (e *Editor) exec(cmd Command) undo.Behavior {
	buf := e.buf
	switch cmd.Kind {
	case NoCommand, Complete:
		// Completion is carried out by the caller, which owns the menus.
	case MoveToStart:
		buf.MoveToStart()
	case MoveToEnd:
		buf.MoveToEnd()
	case MoveToLineStart:
		buf.MoveToLineStart()
	case MoveToLineEnd:
		buf.MoveToLineEnd()
	case MoveToLineNonBlankStart:
		from, to := buf.CurrentLineRange()
		line := buf.Content()[from:to]
		buf.SetDot(from + len(line) - len(strings.TrimLeft(line, " \t")))
	case MoveLeft:
		buf.MoveLeft()
	case MoveRight:
		buf.MoveRight()
	case MoveWordLeft:
		buf.MoveWordLeft()
	case MoveBigWordLeft:
		buf.MoveBigWordLeft()
	case MoveWordRight:
		buf.MoveWordRight()
	case MoveBigWordRight:
		buf.MoveBigWordRight()
	case MoveWordRightStart:
		buf.MoveWordRightStart()
	case MoveBigWordRightStart:
		buf.MoveBigWordRightStart()
	case MoveWordRightEnd:
		buf.MoveWordRightEnd()
	case MoveBigWordRightEnd:
		buf.MoveBigWordRightEnd()
	case MoveToPosition:
		buf.SetCursor(cmd.N)
	case MoveRightUntil:
		buf.MoveRightUntil(cmd.Char, true)
	case MoveRightBefore:
		buf.MoveRightBefore(cmd.Char, true)
	case MoveLeftUntil:
		buf.MoveLeftUntil(cmd.Char, true)
	case MoveLeftBefore:
		buf.MoveLeftBefore(cmd.Char, true)
	case MoveLeftInLine:
		if from, _ := buf.CurrentLineRange(); buf.Dot() > from {
			buf.MoveLeft()
		}
	case MoveLineUp:
		buf.MoveLineUp()
	case MoveLineDown:
		buf.MoveLineDown()

	case SelectAll:
		buf.SelectAll()
	case ClearSelection:
		buf.ClearSelection()
	case SwapCursorAndAnchor:
		buf.SwapCursorAndAnchor()
	case MoveToSelectionStart, MoveToSelectionEnd:
		if from, to, ok := buf.Selection(); ok {
			buf.ClearSelection()
			if cmd.Kind == MoveToSelectionStart {
				buf.SetDot(from)
			} else {
				buf.SetDot(to)
			}
		}

	case InsertChar:
		e.deleteSelection()
		buf.InsertChar(cmd.Char)
		return undo.BC(undo.InsertChar, cmd.Char)
	case InsertString:
		e.deleteSelection()
		buf.Insert(cmd.Text)
	case InsertNewline:
		buf.InsertNewline()
		return undo.BC(undo.InsertChar, '\n')
	case ReplaceChar:
		buf.ReplaceChar(cmd.Char)
	case ReplaceChars:
		buf.ReplaceChars(cmd.N, cmd.Text)
	case Backspace:
		if e.deleteSelection() {
			break
		}
		return behaviorWithChar(undo.Backspace, buf.DeleteLeft())
	case Delete:
		if e.deleteSelection() {
			break
		}
		return behaviorWithChar(undo.Delete, buf.DeleteRight())
	case BackspaceWord:
		buf.DeleteWordLeft()
	case DeleteWord:
		buf.DeleteWordRight()
	case Clear:
		buf.Clear()
	case ClearToLineEnd:
		buf.ClearToLineEnd()

	case CutChar:
		e.setCut(buf.DeleteRight(), Normal)
	case CutCurrentLine:
		e.setCut(buf.DeleteCurrentLine(), Lines)
	case CutFromStart:
		e.setCut(buf.ClearToStart(), Normal)
	case CutFromLineStart:
		e.setCut(buf.ClearToLineStart(), Normal)
	case CutToEnd:
		e.setCut(buf.ClearToEnd(), Normal)
	case CutToLineEnd:
		e.setCut(buf.ClearToLineEnd(), Normal)
	case CutWordLeft:
		e.setCut(buf.DeleteWordLeft(), Normal)
	case CutBigWordLeft:
		e.setCut(buf.DeleteBigWordLeft(), Normal)
	case CutWordRight:
		e.setCut(buf.DeleteWordRight(), Normal)
	case CutBigWordRight:
		e.setCut(buf.DeleteBigWordRight(), Normal)
	case CutWordRightToNext:
		e.setCut(buf.DeleteRange(buf.Dot(), buf.WordRightStartIndex()), Normal)
	case CutBigWordRightToNext:
		e.setCut(buf.DeleteRange(buf.Dot(), buf.BigWordRightStartIndex()), Normal)
	case CutRightUntil:
		e.setCut(buf.DeleteRightUntil(cmd.Char, true), Normal)
	case CutRightBefore:
		e.setCut(buf.DeleteRightBefore(cmd.Char, true), Normal)
	case CutLeftUntil:
		e.setCut(buf.DeleteLeftUntil(cmd.Char, true), Normal)
	case CutLeftBefore:
		e.setCut(buf.DeleteLeftBefore(cmd.Char, true), Normal)

	case CopyFromStart:
		e.copyRange(0, buf.Dot(), Normal)
	case CopyFromLineStart:
		from, _ := buf.CurrentLineRange()
		e.copyRange(from, buf.Dot(), Normal)
	case CopyToEnd:
		e.copyRange(buf.Dot(), len(buf.Content()), Normal)
	case CopyToLineEnd:
		e.copyRange(buf.Dot(), buf.CurrentLineEnd(), Normal)
	case CopyCurrentLine:
		from, to := buf.CurrentLineRange()
		e.copyRange(from, to, Lines)
	case CopyWordLeft:
		e.copyRange(buf.WordLeftIndex(), buf.Dot(), Normal)
	case CopyBigWordLeft:
		e.copyRange(buf.BigWordLeftIndex(), buf.Dot(), Normal)
	case CopyWordRight:
		e.copyRange(buf.Dot(), buf.WordRightIndex(), Normal)
	case CopyBigWordRight:
		e.copyRange(buf.Dot(), buf.BigWordRightIndex(), Normal)
	case CopyWordRightToNext:
		e.copyRange(buf.Dot(), buf.WordRightStartIndex(), Normal)
	case CopyBigWordRightToNext:
		e.copyRange(buf.Dot(), buf.BigWordRightStartIndex(), Normal)
	case CopyRightUntil:
		if _, to, ok := buf.FindCharRight(cmd.Char, true); ok {
			e.copyRange(buf.Dot(), to, Normal)
		}
	case CopyRightBefore:
		if from, _, ok := buf.FindCharRight(cmd.Char, true); ok {
			e.copyRange(buf.Dot(), from, Normal)
		}
	case CopyLeftUntil:
		if from, _, ok := buf.FindCharLeft(cmd.Char, true); ok {
			e.copyRange(from, buf.Dot(), Normal)
		}
	case CopyLeftBefore:
		if _, to, ok := buf.FindCharLeft(cmd.Char, true); ok {
			e.copyRange(to, buf.Dot(), Normal)
		}

	case PasteCutBufferBefore:
		e.pasteBefore(e.cut.Get())
	case PasteCutBufferAfter:
		e.pasteAfter(e.cut.Get())

	case UppercaseWord:
		buf.UppercaseWord()
	case LowercaseWord:
		buf.LowercaseWord()
	case CapitalizeChar:
		buf.CapitalizeChar()
	case SwitchcaseChar:
		buf.SwitchcaseChar()
	case SwapWords:
		buf.SwapWords()
	case SwapGraphemes:
		buf.SwapGraphemes()

	case Undo:
		e.restore(e.undo.Undo())
	case Redo:
		e.restore(e.undo.Redo())

	case CutSelection:
		e.cutSelection(e.cut)
	case CopySelection:
		e.copySelection(e.cut)
	case Paste:
		e.deleteSelection()
		text, _ := e.cut.Get()
		buf.Insert(text)
	case CutSelectionSystem:
		e.cutSelection(e.system)
	case CopySelectionSystem:
		e.copySelection(e.system)
	case PasteSystem:
		e.deleteSelection()
		text, _ := e.system.Get()
		buf.Insert(text)

	default:
		logger.Println("unknown edit command", cmd)
	}
	if cmd.EditType() == TypeMoveCursor {
		return undo.B(undo.MoveCursor)
	}
	return undo.Checkpoint
}

func behaviorWithChar(k undo.Kind, deleted string) undo.Behavior {
	if deleted == "" {
		return undo.B(k)
	}
	r, _ := utf8.DecodeRuneInString(deleted)
	return undo.BC(k, r)
}

func (e *Editor) setCut(text string, mode ClipboardMode) {
	if text != "" {
		e.cut.Set(text, mode)
	}
}

func (e *Editor) copyRange(from, to int, mode ClipboardMode) {
	e.setCut(e.buf.Slice(from, to), mode)
}

// Removes the selected text without touching any clipboard. It returns whether
// there was a selection.
func (e *Editor) deleteSelection() bool {
	from, to, ok := e.buf.Selection()
	if !ok {
		return false
	}
	e.buf.ClearSelection()
	e.buf.DeleteRange(from, to)
	return true
}

func (e *Editor) cutSelection(c Clipboard) {
	from, to, ok := e.buf.Selection()
	if !ok {
		return
	}
	e.buf.ClearSelection()
	if text := e.buf.DeleteRange(from, to); text != "" {
		c.Set(text, Normal)
	}
}

func (e *Editor) copySelection(c Clipboard) {
	if from, to, ok := e.buf.Selection(); ok && from < to {
		c.Set(e.buf.Slice(from, to), Normal)
	}
}

// Pastes in front of the cursor, or above the current line for line-wise
// content. Line-wise pastes leave the cursor at the start of the pasted lines.
func (e *Editor) pasteBefore(text string, mode ClipboardMode) {
	if text == "" {
		return
	}
	buf := e.buf
	if mode == Lines {
		buf.MoveToLineStart()
		at := buf.Dot()
		buf.Insert(withNewline(text))
		buf.SetDot(at)
		return
	}
	buf.Insert(text)
}

// Pastes after the cluster under the cursor, or below the current line for
// line-wise content.
func (e *Editor) pasteAfter(text string, mode ClipboardMode) {
	if text == "" {
		return
	}
	buf := e.buf
	if mode == Lines {
		_, to := buf.CurrentLineRange()
		if to == len(buf.Content()) && !strings.HasSuffix(buf.Content(), "\n") {
			buf.SetDot(to)
			buf.Insert("\n" + strings.TrimSuffix(text, "\n"))
			buf.SetDot(to + 1)
			return
		}
		buf.SetDot(to)
		buf.Insert(withNewline(text))
		buf.SetDot(to)
		return
	}
	buf.MoveRight()
	buf.Insert(text)
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
