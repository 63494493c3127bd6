package mode

import (
	"strings"

	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/ui"
)

type viState struct {
	// Keys of the command being typed.
	cache []rune
	// The last change, replayed by ".".
	last viCommand
}

func (s *State) viNormal(k ui.Key) keymap.Event {
	if k == ui.Esc {
		s.vi.cache = nil
		return keymap.E(keymap.Esc)
	}
	if k.Mod != 0 || !insertable(k) {
		s.vi.cache = nil
		return keymap.Event{}
	}
	if k.Rune == '.' && len(s.vi.cache) == 0 {
		return s.runVi(s.vi.last)
	}
	s.vi.cache = append(s.vi.cache, k.Rune)
	cmd, status := parseVi(s.vi.cache)
	switch status {
	case viIncomplete:
		return keymap.Event{}
	case viInvalid:
		s.vi.cache = nil
		return keymap.Event{}
	}
	s.vi.cache = nil
	if cmd.change {
		s.vi.last = cmd
	}
	return s.runVi(cmd)
}

func (s *State) runVi(cmd viCommand) keymap.Event {
	if cmd.insert {
		s.kind = KindViInsert
	}
	return cmd.event
}

type viStatus int

const (
	viComplete viStatus = iota
	viIncomplete
	viInvalid
)

// A parsed Vi command.
type viCommand struct {
	event keymap.Event
	// Whether the command enters insert mode.
	insert bool
	// Whether the command changes the buffer and can be repeated with ".".
	change bool
}

// Motions that can stand alone or follow an operator. The char searches take
// the next key as their argument.
var viMotions = map[rune]editor.Kind{
	'h': editor.MoveLeftInLine,
	'l': editor.MoveRight,
	'w': editor.MoveWordRightStart,
	'W': editor.MoveBigWordRightStart,
	'b': editor.MoveWordLeft,
	'B': editor.MoveBigWordLeft,
	'e': editor.MoveWordRightEnd,
	'E': editor.MoveBigWordRightEnd,
	'0': editor.MoveToLineStart,
	'^': editor.MoveToLineNonBlankStart,
	'$': editor.MoveToLineEnd,
	'G': editor.MoveToEnd,
	'f': editor.MoveRightUntil,
	't': editor.MoveRightBefore,
	'F': editor.MoveLeftUntil,
	'T': editor.MoveLeftBefore,
}

// Commands operators turn motions into. "cw" acts like "ce", as in Vim.
var viOperatorMotions = map[rune]map[rune]editor.Kind{
	'd': {
		'h': editor.Backspace,
		'l': editor.CutChar,
		'w': editor.CutWordRightToNext,
		'W': editor.CutBigWordRightToNext,
		'e': editor.CutWordRight,
		'E': editor.CutBigWordRight,
		'b': editor.CutWordLeft,
		'B': editor.CutBigWordLeft,
		'0': editor.CutFromLineStart,
		'^': editor.CutFromLineStart,
		'$': editor.CutToLineEnd,
		'G': editor.CutToEnd,
		'f': editor.CutRightUntil,
		't': editor.CutRightBefore,
		'F': editor.CutLeftUntil,
		'T': editor.CutLeftBefore,
	},
	'c': {
		'h': editor.Backspace,
		'l': editor.CutChar,
		'w': editor.CutWordRight,
		'W': editor.CutBigWordRight,
		'e': editor.CutWordRight,
		'E': editor.CutBigWordRight,
		'b': editor.CutWordLeft,
		'B': editor.CutBigWordLeft,
		'0': editor.CutFromLineStart,
		'^': editor.CutFromLineStart,
		'$': editor.CutToLineEnd,
		'G': editor.CutToEnd,
		'f': editor.CutRightUntil,
		't': editor.CutRightBefore,
		'F': editor.CutLeftUntil,
		'T': editor.CutLeftBefore,
	},
	'y': {
		'w': editor.CopyWordRightToNext,
		'W': editor.CopyBigWordRightToNext,
		'e': editor.CopyWordRight,
		'E': editor.CopyBigWordRight,
		'b': editor.CopyWordLeft,
		'B': editor.CopyBigWordLeft,
		'0': editor.CopyFromLineStart,
		'^': editor.CopyFromLineStart,
		'$': editor.CopyToLineEnd,
		'G': editor.CopyToEnd,
		'f': editor.CopyRightUntil,
		't': editor.CopyRightBefore,
		'F': editor.CopyLeftUntil,
		'T': editor.CopyLeftBefore,
	},
}

// Doubled operators act on the whole line.
var viLineOperators = map[rune][]editor.Kind{
	'd': {editor.CutCurrentLine},
	'c': {editor.MoveToLineStart, editor.CutToLineEnd},
	'y': {editor.CopyCurrentLine},
}

// Commands that take no motion, with whether they enter insert mode.
var viSimpleCommands = map[rune]struct {
	kinds  []editor.Kind
	insert bool
}{
	'x': {[]editor.Kind{editor.CutChar}, false},
	'X': {[]editor.Kind{editor.Backspace}, false},
	'D': {[]editor.Kind{editor.CutToLineEnd}, false},
	'C': {[]editor.Kind{editor.CutToLineEnd}, true},
	's': {[]editor.Kind{editor.CutChar}, true},
	'S': {[]editor.Kind{editor.MoveToLineStart, editor.CutToLineEnd}, true},
	'p': {[]editor.Kind{editor.PasteCutBufferAfter}, false},
	'P': {[]editor.Kind{editor.PasteCutBufferBefore}, false},
	'~': {[]editor.Kind{editor.SwitchcaseChar}, false},
	'Y': {[]editor.Kind{editor.CopyCurrentLine}, false},
	'o': {[]editor.Kind{editor.MoveToLineEnd, editor.InsertNewline}, true},
	'O': {[]editor.Kind{editor.MoveToLineStart, editor.InsertNewline, editor.MoveLeft}, true},
}

// Commands that only enter insert mode, after moving the cursor.
var viInsertCommands = map[rune][]editor.Kind{
	'i': nil,
	'a': {editor.MoveRight},
	'I': {editor.MoveToLineStart},
	'A': {editor.MoveToLineEnd},
}

// Parses the keys of a Vi normal mode command:
//
//	[count] command
//	[count] operator [count] motion
//	[count] operator operator
func parseVi(keys []rune) (viCommand, viStatus) {
	p := viParser{keys: keys}
	n1 := p.count()
	c, ok := p.next()
	if !ok {
		return viCommand{}, viIncomplete
	}

	if kinds, ok := viInsertCommands[c]; ok {
		if len(kinds) == 0 {
			return viCommand{event: keymap.E(keymap.Repaint), insert: true}, viComplete
		}
		return viCommand{event: keymap.EditKinds(kinds...), insert: true}, viComplete
	}
	if cmd, ok := viSimpleCommands[c]; ok {
		return viCommand{event: repeatKinds(cmd.kinds, n1), insert: cmd.insert, change: true}, viComplete
	}
	switch c {
	case 'u':
		return viCommand{event: repeatKinds([]editor.Kind{editor.Undo}, n1)}, viComplete
	case 'j', 'k':
		ev := keymap.UntilFoundEvent(keymap.E(keymap.MenuDown), keymap.E(keymap.Down))
		if c == 'k' {
			ev = keymap.UntilFoundEvent(keymap.E(keymap.MenuUp), keymap.E(keymap.Up))
		}
		evs := make([]keymap.Event, max(n1, 1))
		for i := range evs {
			evs[i] = ev
		}
		return viCommand{event: keymap.Combine(evs...)}, viComplete
	case 'r':
		r, ok := p.next()
		if !ok {
			return viCommand{}, viIncomplete
		}
		n := max(n1, 1)
		cmd := editor.Command{Kind: editor.ReplaceChars, N: n, Text: strings.Repeat(string(r), n)}
		if n == 1 {
			cmd = editor.CharCmd(editor.ReplaceChar, r)
		}
		return viCommand{event: keymap.EditEvent(cmd), change: true}, viComplete
	}
	if kind, ok := viMotions[c]; ok {
		cmd, status := p.motionCommand(kind)
		if status != viComplete {
			return viCommand{}, status
		}
		return viCommand{event: repeat([]editor.Command{cmd}, n1)}, viComplete
	}

	motions, ok := viOperatorMotions[c]
	if !ok {
		return viCommand{}, viInvalid
	}
	n2 := p.count()
	m, ok := p.next()
	if !ok {
		return viCommand{}, viIncomplete
	}
	n := min(max(n1, 1)*max(n2, 1), maxViCount)
	insert := c == 'c'
	if m == c {
		return viCommand{event: repeatKinds(viLineOperators[c], n), insert: insert, change: true}, viComplete
	}
	kind, ok := motions[m]
	if !ok {
		return viCommand{}, viInvalid
	}
	cmd, status := p.motionCommand(kind)
	if status != viComplete {
		return viCommand{}, status
	}
	return viCommand{event: repeat([]editor.Command{cmd}, n), insert: insert, change: c != 'y'}, viComplete
}

type viParser struct {
	keys []rune
	i    int
}

func (p *viParser) next() (rune, bool) {
	if p.i >= len(p.keys) {
		return 0, false
	}
	p.i++
	return p.keys[p.i-1], true
}

// Counts larger than this are clamped to it.
const maxViCount = 9999

// Reads a count. A count never starts with 0, which is a motion.
func (p *viParser) count() int {
	n := 0
	for p.i < len(p.keys) {
		r := p.keys[p.i]
		if r < '0' || r > '9' || (r == '0' && n == 0) {
			break
		}
		n = min(n*10+int(r-'0'), maxViCount)
		p.i++
	}
	return n
}

// Builds the command for a motion key, reading the argument of char
// searches.
func (p *viParser) motionCommand(kind editor.Kind) (editor.Command, viStatus) {
	if kind.NeedsChar() {
		r, ok := p.next()
		if !ok {
			return editor.Command{}, viIncomplete
		}
		return editor.CharCmd(kind, r), viComplete
	}
	return editor.C(kind), viComplete
}

func repeatKinds(kinds []editor.Kind, n int) keymap.Event {
	cmds := make([]editor.Command, len(kinds))
	for i, k := range kinds {
		cmds[i] = editor.C(k)
	}
	return repeat(cmds, n)
}

// Returns an Edit event running cmds n times, at least once.
func repeat(cmds []editor.Command, n int) keymap.Event {
	var all []editor.Command
	for i := 0; i < max(n, 1); i++ {
		all = append(all, cmds...)
	}
	return keymap.EditEvent(all...)
}
