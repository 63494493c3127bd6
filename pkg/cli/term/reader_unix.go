//go:build unix

package term

import (
	"time"

	"github.com/elves/edline/pkg/ui"
)

// reader reads terminal escape sequences and decodes them into events.
type reader struct {
	fr fileReader
	// Inside a bracketed paste.
	pasting bool
}

func (rd *reader) ReadEvent() (Event, error) {
	ev, err := readEvent(rd.fr, rd.pasting)
	if p, ok := ev.(PasteSetting); ok {
		rd.pasting = bool(p)
	}
	return ev, err
}

func (rd *reader) ReadRawEvent() (Event, error) {
	r, err := readRune(rd.fr, -1)
	return K(r), err
}

func (rd *reader) Close() {
	rd.fr.Stop()
	rd.fr.Close()
}

// Returned by seqReader.next to signal the end of the current sequence.
const runeEndOfSeq rune = -1

// Timeout for bytes in escape sequences. Terminal emulators write a whole
// sequence at once, so a short timeout is enough to tell a lone Esc from the
// start of a sequence.
var keySeqTimeout = 10 * time.Millisecond

// seqReader accumulates the runes of one escape sequence.
type seqReader struct {
	rd  byteReaderWithTimeout
	seq string
}

func (s *seqReader) next() rune {
	r, err := readRune(s.rd, keySeqTimeout)
	if err != nil {
		return runeEndOfSeq
	}
	s.seq += string(r)
	return r
}

func (s *seqReader) bad(msg string) error {
	return seqError{msg, s.seq}
}

// Inside a bracketed paste, a carriage return is kept as such so that pasted
// line endings can be told apart.
func readEvent(rd byteReaderWithTimeout, pasting bool) (Event, error) {
	r, err := readRune(rd, -1)
	if err != nil {
		return nil, err
	}
	if r != 0x1b {
		if pasting && r == '\r' {
			return K('\r'), nil
		}
		return KeyEvent(ctrlModify(r)), nil
	}

	s := &seqReader{rd, string(r)}
	r2 := s.next()
	// rxvt and derivatives signal Alt by prepending another Esc to a CSI or G3
	// sequence.
	altPrefix := false
	if r2 == 0x1b {
		altPrefix = true
		r2 = s.next()
	}
	switch r2 {
	case runeEndOfSeq:
		return KeyEvent(ui.Esc), nil
	case '[':
		return readCSI(s, altPrefix)
	case 'O':
		r = s.next()
		if r == runeEndOfSeq {
			return K('O', ui.Alt), nil
		}
		k, ok := g3Seq[r]
		if !ok {
			return nil, s.bad("bad G3")
		}
		if altPrefix {
			k.Mod |= ui.Alt
		}
		return KeyEvent(k), nil
	default:
		k := ctrlModify(r2)
		k.Mod |= ui.Alt
		return KeyEvent(k), nil
	}
}

// Reads the remainder of a sequence that started with "\e[".
func readCSI(s *seqReader, altPrefix bool) (Event, error) {
	r := s.next()
	if r == runeEndOfSeq {
		return K('[', ui.Alt), nil
	}

	var starter rune
	switch r {
	case '<':
		starter = r
		r = s.next()
	case 'M':
		return readX10Mouse(s)
	}

	nums := make([]int, 0, 2)
params:
	for {
		switch {
		case r == ';':
			nums = append(nums, 0)
		case '0' <= r && r <= '9':
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			nums[len(nums)-1] = nums[len(nums)-1]*10 + int(r-'0')
		case r == runeEndOfSeq:
			return nil, s.bad("incomplete CSI")
		default:
			break params
		}
		r = s.next()
	}

	switch {
	case starter == 0 && r == 'R':
		if len(nums) != 2 {
			return nil, s.bad("bad CPR")
		}
		return CursorPosition{nums[0], nums[1]}, nil
	case starter == '<' && (r == 'm' || r == 'M'):
		if len(nums) != 3 {
			return nil, s.bad("bad SGR mouse event")
		}
		return MouseEvent{Pos{nums[2], nums[1]}, r == 'M', nums[0] & 3, mouseModify(nums[0])}, nil
	case r == '~' && len(nums) == 1 && (nums[0] == 200 || nums[0] == 201):
		return PasteSetting(nums[0] == 200), nil
	}
	k := parseCSI(nums, r)
	if k == (ui.Key{}) {
		return nil, s.bad("bad CSI")
	}
	if altPrefix {
		k.Mod |= ui.Alt
	}
	return KeyEvent(k), nil
}

func readX10Mouse(s *seqReader) (Event, error) {
	var b [3]rune
	for i := range b {
		b[i] = s.next()
		if b[i] == runeEndOfSeq {
			return nil, s.bad("incomplete mouse event")
		}
	}
	cb, cx, cy := b[0], b[1], b[2]
	down, button := true, int(cb&3)
	if button == 3 {
		down, button = false, -1
	}
	return MouseEvent{Pos{int(cy) - 32, int(cx) - 32}, down, button, mouseModify(int(cb))}, nil
}

// Determines whether a rune corresponds to a Ctrl-modified key and returns the
// ui.Key the rune represents.
func ctrlModify(r rune) ui.Key {
	switch r {
	case 0x0:
		return ui.K('`', ui.Ctrl) // ^@
	case 0x1e:
		return ui.K('6', ui.Ctrl) // ^^
	case 0x1f:
		return ui.K('/', ui.Ctrl) // ^_
	case ui.Tab, ui.Enter, ui.Backspace:
		// ^I ^J ^? are ambiguous; the plain key is far more likely.
		return ui.K(r)
	case '\r':
		// Enter arrives as ^M once ICRNL is off.
		return ui.K(ui.Enter)
	}
	if 0x1 <= r && r <= 0x1d {
		return ui.K(r+0x40, ui.Ctrl)
	}
	return ui.K(r)
}

// G3-style key sequences: \eO followed by exactly one character.
var g3Seq = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End), 'M': ui.K(ui.Insert),
	// urxvt
	'a': ui.K(ui.Up, ui.Ctrl), 'b': ui.K(ui.Down, ui.Ctrl),
	'c': ui.K(ui.Right, ui.Ctrl), 'd': ui.K(ui.Left, ui.Ctrl),
	'P': ui.K(ui.F1), 'Q': ui.K(ui.F2), 'R': ui.K(ui.F3), 'S': ui.K(ui.F4),
}

// CSI-style key sequences identified by the last rune, such as \e[A for Up.
// Modified forms carry two arguments, the first being 1 and the second the
// xterm modifier code: \e[1;5A is Ctrl-Up.
var csiSeqByLast = map[rune]ui.Key{
	'A': ui.K(ui.Up), 'B': ui.K(ui.Down), 'C': ui.K(ui.Right), 'D': ui.K(ui.Left),
	// urxvt
	'a': ui.K(ui.Up, ui.Shift), 'b': ui.K(ui.Down, ui.Shift),
	'c': ui.K(ui.Right, ui.Shift), 'd': ui.K(ui.Left, ui.Shift),
	'H': ui.K(ui.Home), 'F': ui.K(ui.End),
	'Z': ui.K(ui.Tab, ui.Shift),
}

// CSI-style key sequences ending in '~', keyed by the first argument. An
// optional second argument is the xterm modifier code; urxvt instead replaces
// the '~' with '$' (Shift), '^' (Ctrl) or '@' (Ctrl-Shift).
var csiSeqTilde = map[int]rune{
	1: ui.Home, 4: ui.End,
	2: ui.Insert,
	3: ui.Delete,
	5: ui.PageUp, 6: ui.PageDown,
	7: ui.Home, 8: ui.End,
	11: ui.F1, 12: ui.F2, 13: ui.F3, 14: ui.F4,
	15: ui.F5, 17: ui.F6, 18: ui.F7, 19: ui.F8,
	20: ui.F9, 21: ui.F10, 23: ui.F11, 24: ui.F12,
}

// xterm's modifyOtherKeys form: \e[27;<mod>;<code>~.
var csiSeqTilde27 = map[int]rune{
	9: '\t', 13: '\n',
	33: '!', 35: '#', 39: '\'', 40: '(', 41: ')', 43: '+', 44: ',', 45: '-',
	46: '.',
	48: '0', 49: '1', 50: '2', 51: '3', 52: '4', 53: '5', 54: '6', 55: '7',
	56: '8', 57: '9',
	58: ':', 59: ';', 60: '<', 61: '=', 62: '>', 63: '?',
}

var urxvtModifier = map[rune]ui.Mod{'$': ui.Shift, '^': ui.Ctrl, '@': ui.Shift | ui.Ctrl}

func parseCSI(nums []int, last rune) ui.Key {
	if k, ok := csiSeqByLast[last]; ok {
		switch {
		case len(nums) == 0:
			return k
		case len(nums) == 2 && nums[0] == 1:
			return xtermModify(k, nums[1])
		}
		return ui.Key{}
	}

	if last == '~' {
		switch {
		case len(nums) == 1 || len(nums) == 2:
			r, ok := csiSeqTilde[nums[0]]
			if !ok {
				break
			}
			if len(nums) == 1 {
				return ui.K(r)
			}
			return xtermModify(ui.K(r), nums[1])
		case len(nums) == 3 && nums[0] == 27:
			if r, ok := csiSeqTilde27[nums[2]]; ok {
				return xtermModify(ui.K(r), nums[1])
			}
		}
		return ui.Key{}
	}

	if mod, ok := urxvtModifier[last]; ok && len(nums) == 1 {
		if r, ok := csiSeqTilde[nums[0]]; ok {
			return ui.K(r, mod)
		}
	}
	return ui.Key{}
}

func xtermModify(k ui.Key, mod int) ui.Key {
	if mod < 0 || mod > 16 {
		return ui.Key{}
	}
	if mod == 0 {
		return k
	}
	bits := mod - 1
	if bits&0x1 != 0 {
		k.Mod |= ui.Shift
	}
	// Meta (0x8) is treated as Alt.
	if bits&0xa != 0 {
		k.Mod |= ui.Alt
	}
	if bits&0x4 != 0 {
		k.Mod |= ui.Ctrl
	}
	return k
}

func mouseModify(n int) ui.Mod {
	var mod ui.Mod
	if n&4 != 0 {
		mod |= ui.Shift
	}
	if n&8 != 0 {
		mod |= ui.Alt
	}
	if n&16 != 0 {
		mod |= ui.Ctrl
	}
	return mod
}
