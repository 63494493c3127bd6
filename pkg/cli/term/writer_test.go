package term

import (
	"strings"
	"testing"

	"github.com/elves/edline/pkg/ui"
)

type countingWriter struct {
	strings.Builder
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Builder.Write(p)
}

func TestWriter(t *testing.T) {
	sb := &countingWriter{}
	testOutput := func(want string) {
		t.Helper()
		if sb.String() != want {
			t.Errorf("got %q, want %q", sb.String(), want)
		}
		sb.Reset()
	}

	w := NewWriter(sb)
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("line 1").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\rline 1\r\033[6C" + showCursor)

	// Appending to the line only writes the new cells.
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("line 12").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\r\033[6C2\r\033[7C" + showCursor)

	// A changed cell in the middle erases the rest of the line.
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("lane").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\r\033[1C\033[Kane\r\033[4C" + showCursor)
}

func TestWriter_UnchangedBufferWritesNothing(t *testing.T) {
	sb := &countingWriter{}
	w := NewWriter(sb)
	build := func() *Buffer {
		return NewBufferBuilder(10).Write("echo", ui.FgRed).Newline().
			Write("more").SetDotHere().Buffer()
	}
	w.UpdateBuffer(nil, build(), false)
	if sb.writes != 1 {
		t.Errorf("got %d writes for first update, want 1", sb.writes)
	}
	w.UpdateBuffer(nil, build(), false)
	if sb.writes != 1 {
		t.Errorf("got %d writes after repainting an unchanged frame, want 1", sb.writes)
	}
}

func TestWriter_Notes(t *testing.T) {
	sb := &countingWriter{}
	w := NewWriter(sb)
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("line 1").SetDotHere().Buffer(), false)
	sb.Reset()
	sb.writes = 0

	w.UpdateBuffer(
		NewBufferBuilder(10).Write("note 1").Buffer(),
		NewBufferBuilder(10).Write("line 1").SetDotHere().Buffer(),
		false)
	want := hideCursor + "\rnote 1\033[K\n\033[J" + "line 1\r\033[6C" + showCursor
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
	if sb.writes != 1 {
		t.Errorf("got %d writes, want 1", sb.writes)
	}
}

func TestWriter_WidthChangeForcesFullRefresh(t *testing.T) {
	sb := &countingWriter{}
	w := NewWriter(sb)
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("ab").SetDotHere().Buffer(), false)
	sb.Reset()

	w.UpdateBuffer(nil, NewBufferBuilder(5).Write("ab").SetDotHere().Buffer(), false)
	want := hideCursor + "\r \033[J\rab\r\033[2C" + showCursor
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWriter_ShrinkErasesStaleLines(t *testing.T) {
	sb := &countingWriter{}
	w := NewWriter(sb)
	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("a\nb").SetDotHere().Buffer(), false)
	sb.Reset()

	w.UpdateBuffer(nil, NewBufferBuilder(10).Write("a").SetDotHere().Buffer(), false)
	want := hideCursor + "\033[1A\r" + "\n\033[J\033[A" + "\r\033[1C" + showCursor
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}
