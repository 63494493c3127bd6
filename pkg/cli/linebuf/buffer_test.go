package linebuf

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/elves/edline/pkg/tt"
)

// Builds a Buffer from a string where "|" marks the dot.
func parse(s string) *Buffer {
	i := strings.IndexByte(s, '|')
	if i < 0 {
		return New(s, len(s))
	}
	return New(s[:i]+s[i+1:], i)
}

// The inverse of parse.
func show(b *Buffer) string {
	return b.Content()[:b.Dot()] + "|" + b.Content()[b.Dot():]
}

func op(f func(b *Buffer)) func(string) string {
	return func(s string) string {
		b := parse(s)
		f(b)
		return show(b)
	}
}

func TestNew_SnapsDot(t *testing.T) {
	// "e" followed by a combining acute accent is one cluster.
	b := New("éx", 1)
	if b.Dot() != 0 {
		t.Errorf("dot inside a cluster snapped to %d, want 0", b.Dot())
	}
	b = New("abc", 10)
	if b.Dot() != 3 {
		t.Errorf("dot past the end clamped to %d, want 3", b.Dot())
	}
}

func TestCursor(t *testing.T) {
	tt.Test(t, tt.Fn("Cursor", func(s string) int { return parse(s).Cursor() }),
		tt.Args("|").Rets(0),
		tt.Args("ab|c").Rets(2),
		tt.Args("世界|").Rets(2),
		tt.Args("👨‍👩‍👧x|").Rets(2),
		tt.Args("🇯🇵🇺🇸|").Rets(2),
	)
}

func TestSetCursor(t *testing.T) {
	tt.Test(t, tt.Fn("SetCursor", func(s string, n int) string {
		b := parse(s)
		b.SetCursor(n)
		return show(b)
	}),
		tt.Args("abc", 1).Rets("a|bc"),
		tt.Args("世界你好", 2).Rets("世界|你好"),
		tt.Args("a👨‍👩‍👧b", 2).Rets("a👨‍👩‍👧|b"),
		tt.Args("abc", 10).Rets("abc|"),
		tt.Args("abc", -1).Rets("|abc"),
	)
}

func TestInsert(t *testing.T) {
	tt.Test(t, tt.Fn("Insert", func(s, text string) string {
		b := parse(s)
		b.Insert(text)
		return show(b)
	}),
		tt.Args("|", "abc").Rets("abc|"),
		tt.Args("a|c", "b").Rets("ab|c"),
		tt.Args("e|", "́").Rets("é|"),
		tt.Args("a|", "\n").Rets("a\n|"),
	)
}

func TestDeleteLeftRight(t *testing.T) {
	tt.Test(t, tt.Fn("DeleteLeft", op(func(b *Buffer) { b.DeleteLeft() })),
		tt.Args("|").Rets("|"),
		tt.Args("ab|").Rets("a|"),
		tt.Args("Emoji test 😊|").Rets("Emoji test |"),
		tt.Args("é|x").Rets("|x"),
		tt.Args("a\r\n|b").Rets("a|b"),
	)
	tt.Test(t, tt.Fn("DeleteRight", op(func(b *Buffer) { b.DeleteRight() })),
		tt.Args("|").Rets("|"),
		tt.Args("|ab").Rets("|b"),
		tt.Args("Emoji test |😊").Rets("Emoji test |"),
		tt.Args("|👨‍👩‍👧x").Rets("|x"),
	)
}

func TestDeleteRight_EmojiRemovesOneGrapheme(t *testing.T) {
	b := New("Emoji test 😊", len("Emoji test "))
	before := b.Len()
	b.DeleteRight()
	if b.Len() != before-1 {
		t.Errorf("Len went from %d to %d, want a decrease of 1", before, b.Len())
	}
}

func TestWordMotions(t *testing.T) {
	tt.Test(t, tt.Fn("MoveWordLeft", op((*Buffer).MoveWordLeft)),
		tt.Args("hello|").Rets("|hello"),
		tt.Args("hello world|").Rets("hello |world"),
		tt.Args("hello world  |").Rets("hello |world  "),
		tt.Args("hello wo|rld").Rets("hello |world"),
		tt.Args("foo\n  |").Rets("|foo\n  "),
		tt.Args("foo/bar|").Rets("foo/|bar"),
		tt.Args("|abc").Rets("|abc"),
	)
	tt.Test(t, tt.Fn("MoveBigWordLeft", op((*Buffer).MoveBigWordLeft)),
		tt.Args("foo/bar|").Rets("|foo/bar"),
		tt.Args("a foo.bar  |").Rets("a |foo.bar  "),
		tt.Args("  |").Rets("|  "),
	)
	tt.Test(t, tt.Fn("MoveWordRight", op((*Buffer).MoveWordRight)),
		tt.Args("|hello world").Rets("hello| world"),
		tt.Args("hello| world").Rets("hello world|"),
		tt.Args("he|llo").Rets("hello|"),
		tt.Args("abc|").Rets("abc|"),
	)
	tt.Test(t, tt.Fn("MoveBigWordRight", op((*Buffer).MoveBigWordRight)),
		tt.Args("|foo.bar baz").Rets("foo.bar baz|"),
	)
	tt.Test(t, tt.Fn("MoveWordRightStart", op((*Buffer).MoveWordRightStart)),
		tt.Args("|hello world").Rets("hello |world"),
		tt.Args("|foo/bar").Rets("foo|/bar"),
		tt.Args("|hello").Rets("hello|"),
	)
	tt.Test(t, tt.Fn("MoveBigWordRightStart", op((*Buffer).MoveBigWordRightStart)),
		tt.Args("|foo.bar baz").Rets("foo.bar |baz"),
	)
	tt.Test(t, tt.Fn("MoveWordRightEnd", op((*Buffer).MoveWordRightEnd)),
		tt.Args("|hello world").Rets("hell|o world"),
		tt.Args("hell|o world").Rets("hello worl|d"),
		tt.Args("|a").Rets("|a"),
	)
	tt.Test(t, tt.Fn("MoveBigWordRightEnd", op((*Buffer).MoveBigWordRightEnd)),
		tt.Args("|foo.bar baz").Rets("foo.ba|r baz"),
	)
}

func TestLineMotions(t *testing.T) {
	tt.Test(t, tt.Fn("MoveToLineStart", op((*Buffer).MoveToLineStart)),
		tt.Args("ab\ncd|").Rets("ab\n|cd"),
		tt.Args("a|b\ncd").Rets("|ab\ncd"),
	)
	tt.Test(t, tt.Fn("MoveToLineEnd", op((*Buffer).MoveToLineEnd)),
		tt.Args("|ab\ncd").Rets("ab|\ncd"),
		tt.Args("|ab\r\ncd").Rets("ab|\r\ncd"),
		tt.Args("ab\n|cd").Rets("ab\ncd|"),
	)
	tt.Test(t, tt.Fn("MoveLineUp", op((*Buffer).MoveLineUp)),
		tt.Args("abc\nde|f").Rets("ab|c\ndef"),
		tt.Args("a\ndef|").Rets("a|\ndef"),
		tt.Args("世界\nab|").Rets("世界|\nab"),
		tt.Args("ab|c").Rets("ab|c"),
	)
	tt.Test(t, tt.Fn("MoveLineDown", op((*Buffer).MoveLineDown)),
		tt.Args("ab|c\ndef").Rets("abc\nde|f"),
		tt.Args("abc|\nd").Rets("abc\nd|"),
		tt.Args("a|b\n世界\n").Rets("ab\n世|界\n"),
		tt.Args("ab|c").Rets("ab|c"),
	)
}

func TestCharSearch(t *testing.T) {
	tt.Test(t, tt.Fn("MoveRightUntil", func(s string, r rune) string {
		return op(func(b *Buffer) { b.MoveRightUntil(r, true) })(s)
	}),
		tt.Args("|abcabc", 'c').Rets("ab|cabc"),
		// The cluster under the cursor is skipped.
		tt.Args("|aba", 'a').Rets("ab|a"),
		tt.Args("|ab\nc", 'c').Rets("|ab\nc"),
	)
	tt.Test(t, tt.Fn("MoveRightBefore", func(s string, r rune) string {
		return op(func(b *Buffer) { b.MoveRightBefore(r, true) })(s)
	}),
		tt.Args("|abcabc", 'c').Rets("a|bcabc"),
	)
	tt.Test(t, tt.Fn("MoveLeftUntil", func(s string, r rune) string {
		return op(func(b *Buffer) { b.MoveLeftUntil(r, true) })(s)
	}),
		tt.Args("abcabc|", 'b').Rets("abca|bc"),
		tt.Args("a\nbc|", 'a').Rets("a\nbc|"),
	)
	tt.Test(t, tt.Fn("MoveLeftBefore", func(s string, r rune) string {
		return op(func(b *Buffer) { b.MoveLeftBefore(r, true) })(s)
	}),
		tt.Args("abcabc|", 'b').Rets("abcab|c"),
	)
	tt.Test(t, tt.Fn("DeleteRightUntil", func(s string, r rune) string {
		return op(func(b *Buffer) { b.DeleteRightUntil(r, false) })(s)
	}),
		tt.Args("a|bcd", 'c').Rets("a|d"),
	)
	tt.Test(t, tt.Fn("DeleteRightBefore", func(s string, r rune) string {
		return op(func(b *Buffer) { b.DeleteRightBefore(r, false) })(s)
	}),
		tt.Args("a|bcd", 'c').Rets("a|cd"),
	)
	tt.Test(t, tt.Fn("DeleteLeftUntil", func(s string, r rune) string {
		return op(func(b *Buffer) { b.DeleteLeftUntil(r, false) })(s)
	}),
		tt.Args("abc|d", 'a').Rets("|d"),
	)
	tt.Test(t, tt.Fn("DeleteLeftBefore", func(s string, r rune) string {
		return op(func(b *Buffer) { b.DeleteLeftBefore(r, false) })(s)
	}),
		tt.Args("abc|d", 'a').Rets("a|d"),
	)
}

func TestCharSearch_MatchesWholeClusters(t *testing.T) {
	// "e\u0301" is a single cluster starting with 'e'.
	const s = "xe\u0301yz"
	tt.Test(t, tt.Fn("MoveRightUntil", func(s string, r rune) string {
		return op(func(b *Buffer) { b.MoveRightUntil(r, true) })(s)
	}),
		tt.Args("|"+s, 'e').Rets("x|e\u0301yz"),
		tt.Args("|"+s, '\u0301').Rets("|"+s),
	)
	tt.Test(t, tt.Fn("DeleteRightUntil", func(s string, r rune) string {
		return op(func(b *Buffer) { b.DeleteRightUntil(r, true) })(s)
	}),
		tt.Args("|"+s, 'e').Rets("|yz"),
	)
	tt.Test(t, tt.Fn("DeleteRightBefore", func(s string, r rune) string {
		return op(func(b *Buffer) { b.DeleteRightBefore(r, true) })(s)
	}),
		tt.Args("|"+s+"e\u0301", 'e').Rets("|e\u0301yze\u0301"),
	)
	tt.Test(t, tt.Fn("DeleteLeftBefore", func(s string, r rune) string {
		return op(func(b *Buffer) { b.DeleteLeftBefore(r, true) })(s)
	}),
		tt.Args(s+"|", 'e').Rets("xe\u0301|"),
	)
	tt.Test(t, tt.Fn("MoveLeftBefore", func(s string, r rune) string {
		return op(func(b *Buffer) { b.MoveLeftBefore(r, true) })(s)
	}),
		tt.Args(s+"|", 'e').Rets("xe\u0301|yz"),
	)
}

func TestDeletions(t *testing.T) {
	tt.Test(t, tt.Fn("DeleteWordLeft", op(func(b *Buffer) { b.DeleteWordLeft() })),
		tt.Args("foo bar|").Rets("foo |"),
		tt.Args("foo bar |").Rets("foo |"),
	)
	tt.Test(t, tt.Fn("DeleteBigWordLeft", op(func(b *Buffer) { b.DeleteBigWordLeft() })),
		tt.Args("foo a.b|").Rets("foo |"),
	)
	tt.Test(t, tt.Fn("DeleteWordRight", op(func(b *Buffer) { b.DeleteWordRight() })),
		tt.Args("|foo bar").Rets("| bar"),
		tt.Args("foo| bar").Rets("foo|"),
	)
	tt.Test(t, tt.Fn("ClearToLineEnd", op(func(b *Buffer) { b.ClearToLineEnd() })),
		tt.Args("a|bc\nd").Rets("a|\nd"),
	)
	tt.Test(t, tt.Fn("ClearToLineStart", op(func(b *Buffer) { b.ClearToLineStart() })),
		tt.Args("ab\ncd|e").Rets("ab\n|e"),
	)
	tt.Test(t, tt.Fn("ClearToEnd", op(func(b *Buffer) { b.ClearToEnd() })),
		tt.Args("a|b\nc").Rets("a|"),
	)
	tt.Test(t, tt.Fn("ClearToStart", op(func(b *Buffer) { b.ClearToStart() })),
		tt.Args("a\nb|c").Rets("|c"),
	)
	tt.Test(t, tt.Fn("DeleteCurrentLine", op(func(b *Buffer) { b.DeleteCurrentLine() })),
		tt.Args("ab\nc|d\nef").Rets("ab\n|ef"),
	)
}

func TestDeleteRange(t *testing.T) {
	tt.Test(t, tt.Fn("DeleteRange", func(s string, from, to int) (string, string) {
		b := parse(s)
		removed := b.DeleteRange(from, to)
		return show(b), removed
	}),
		tt.Args("abcdef|", 1, 3).Rets("adef|", "bc"),
		// Reversed and out-of-range bounds are normalized.
		tt.Args("ab|c", 10, -3).Rets("|", "abc"),
		// A cursor inside the range moves to its start.
		tt.Args("abc|def", 1, 5).Rets("a|f", "bcde"),
		// Bounds inside a cluster snap back to its start.
		tt.Args("|aéb", 2, 4).Rets("|ab", "é"),
	)
}

func TestTransformations(t *testing.T) {
	tt.Test(t, tt.Fn("UppercaseWord", op((*Buffer).UppercaseWord)),
		tt.Args("|hello world").Rets("HELLO| world"),
		tt.Args("hel|lo world").Rets("HELLO| world"),
	)
	tt.Test(t, tt.Fn("LowercaseWord", op((*Buffer).LowercaseWord)),
		tt.Args("|HELLO world").Rets("hello| world"),
	)
	tt.Test(t, tt.Fn("CapitalizeChar", op((*Buffer).CapitalizeChar)),
		tt.Args("|hello").Rets("H|ello"),
		tt.Args("a| hello").Rets("a H|ello"),
	)
	tt.Test(t, tt.Fn("SwitchcaseChar", op((*Buffer).SwitchcaseChar)),
		tt.Args("|aB").Rets("A|B"),
		tt.Args("a|B").Rets("ab|"),
		tt.Args("ab|").Rets("ab|"),
	)
	tt.Test(t, tt.Fn("ReplaceChar", func(s string, r rune) string {
		return op(func(b *Buffer) { b.ReplaceChar(r) })(s)
	}),
		tt.Args("a|bc", 'x').Rets("a|xc"),
		tt.Args("|😊!", 'x').Rets("|x!"),
		tt.Args("abc|", 'x').Rets("abc|"),
	)
	tt.Test(t, tt.Fn("ReplaceChars", func(s string, n int, text string) string {
		return op(func(b *Buffer) { b.ReplaceChars(n, text) })(s)
	}),
		tt.Args("a|bcd", 2, "XYZ").Rets("aXYZ|d"),
		tt.Args("a|bcd", 3, "XYZ").Rets("aXYZ|"),
		tt.Args("a|bcd", 4, "XYZW").Rets("a|bcd"),
	)
	tt.Test(t, tt.Fn("SwapGraphemes", op((*Buffer).SwapGraphemes)),
		tt.Args("ab|c").Rets("acb|"),
		tt.Args("|ab").Rets("ba|"),
		tt.Args("ab|").Rets("ba|"),
		tt.Args("a|😊").Rets("😊a|"),
		tt.Args("a|").Rets("|a"),
	)
	tt.Test(t, tt.Fn("SwapWords", op((*Buffer).SwapWords)),
		tt.Args("|hello world").Rets("world hello|"),
		tt.Args("on|e two three").Rets("two one| three"),
		tt.Args("only|").Rets("only|"),
		tt.Args("on|ly").Rets("on|ly"),
		// Punctuation is a word of its own.
		tt.Args("a|.b").Rets("ab.|"),
		tt.Args("a.|b").Rets("a.|b"),
		// At the end of the first word, the next word is the current one, and
		// there is nothing after it.
		tt.Args("ab| cd").Rets("ab| cd"),
		tt.Args("ab| cd ef").Rets("ab ef cd|"),
	)
}

func TestRanges(t *testing.T) {
	tt.Test(t, tt.Fn("CurrentWordRange", func(s string) (int, int) {
		return parse(s).CurrentWordRange()
	}),
		tt.Args("foo b|ar baz").Rets(4, 7),
		tt.Args("foo |bar").Rets(4, 7),
		tt.Args("|").Rets(0, 0),
	)
	tt.Test(t, tt.Fn("CurrentLineRange", func(s string) (int, int) {
		return parse(s).CurrentLineRange()
	}),
		tt.Args("ab\nc|d\nef").Rets(3, 6),
		tt.Args("ab\ncd|").Rets(3, 5),
	)
}

func TestSelection(t *testing.T) {
	b := parse("hello |world")
	if _, _, ok := b.Selection(); ok {
		t.Errorf("new buffer has a selection")
	}
	b.SetAnchor()
	b.MoveWordRight()
	from, to, ok := b.Selection()
	if !ok || from != 6 || to != 11 {
		t.Errorf("Selection() = (%d, %d, %v), want (6, 11, true)", from, to, ok)
	}
	b.SwapCursorAndAnchor()
	if b.Dot() != 6 || b.Anchor() != 11 {
		t.Errorf("after swap dot=%d anchor=%d, want 6 and 11", b.Dot(), b.Anchor())
	}
	b.SelectAll()
	from, to, _ = b.Selection()
	if from != 0 || to != len("hello world") {
		t.Errorf("SelectAll selects (%d, %d)", from, to)
	}
	b.ClearSelection()
	if b.HasAnchor() {
		t.Errorf("selection survives ClearSelection")
	}
}

func TestSelection_FollowsEdits(t *testing.T) {
	b := parse("ab|cd")
	b.SetAnchor()
	b.MoveToEnd()
	b.MoveToStart()
	b.Insert("xx")
	if b.Anchor() != 4 {
		t.Errorf("anchor after inserting before it = %d, want 4", b.Anchor())
	}
}

func TestQueries(t *testing.T) {
	tt.Test(t, tt.Fn("OnFirstLine", func(s string) bool { return parse(s).OnFirstLine() }),
		tt.Args("a|b\nc").Rets(true),
		tt.Args("ab\n|c").Rets(false),
	)
	tt.Test(t, tt.Fn("OnLastLine", func(s string) bool { return parse(s).OnLastLine() }),
		tt.Args("a|b\nc").Rets(false),
		tt.Args("ab\n|c").Rets(true),
	)
	tt.Test(t, tt.Fn("AtEnd", func(s string) bool { return parse(s).AtEnd() }),
		tt.Args("ab|").Rets(true),
		tt.Args("a|b").Rets(false),
	)
	tt.Test(t, tt.Fn("Len", func(s string) int { return parse(s).Len() }),
		tt.Args("Emoji test 😊").Rets(12),
		tt.Args("é").Rets(1),
	)
}

var fuzzPieces = []string{
	"a", "Z", " ", "\n", "\r\n", "世", "é", "́", "😊", "👨‍👩‍👧", "🇯", "🇵", ".",
}

// Random sequences of edits never leave the dot or the anchor off a cluster
// boundary or out of range.
func TestRandomEditsKeepInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	ops := []func(b *Buffer){
		func(b *Buffer) { b.Insert(fuzzPieces[r.Intn(len(fuzzPieces))]) },
		func(b *Buffer) { b.DeleteLeft() },
		func(b *Buffer) { b.DeleteRight() },
		func(b *Buffer) { b.DeleteWordLeft() },
		func(b *Buffer) { b.DeleteWordRight() },
		func(b *Buffer) { b.DeleteRange(r.Intn(40)-5, r.Intn(40)-5) },
		func(b *Buffer) { b.SetDot(r.Intn(40) - 5) },
		func(b *Buffer) { b.SetCursor(r.Intn(20) - 2) },
		(*Buffer).MoveLeft, (*Buffer).MoveRight,
		(*Buffer).MoveWordLeft, (*Buffer).MoveWordRightEnd,
		(*Buffer).MoveLineUp, (*Buffer).MoveLineDown,
		(*Buffer).SwapGraphemes, (*Buffer).SwapWords,
		(*Buffer).UppercaseWord, (*Buffer).CapitalizeChar,
		(*Buffer).SetAnchor, (*Buffer).SwapCursorAndAnchor,
		func(b *Buffer) { b.ReplaceChar('q') },
	}
	b := &Buffer{}
	for _, s := range []string{"a.b", "x, y", "a.b.c", "é.e"} {
		for dot := 0; dot <= len(s); dot++ {
			swapped := New(s, dot)
			swapped.SwapWords()
			checkBoundary(t, swapped, "dot after SwapWords", swapped.Dot())
		}
	}
	for i := 0; i < 5000; i++ {
		ops[r.Intn(len(ops))](b)
		checkBoundary(t, b, "dot", b.Dot())
		if b.HasAnchor() {
			checkBoundary(t, b, "anchor", b.Anchor())
		}
		if c := b.Cursor(); c < 0 || c > b.Len() {
			t.Fatalf("cursor %d out of [0, %d]", c, b.Len())
		}
	}
}

func checkBoundary(t *testing.T, b *Buffer, what string, i int) {
	t.Helper()
	if i < 0 || i > len(b.Content()) {
		t.Fatalf("%s %d out of range for %q", what, i, b.Content())
	}
	if snap(b.Content(), i) != i {
		t.Fatalf("%s %d not on a cluster boundary of %q", what, i, b.Content())
	}
}
