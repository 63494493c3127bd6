package term

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rivo/uniseg"

	"github.com/elves/edline/pkg/ui"
)

var bufferBuilderWritesTests = []struct {
	name  string
	bb    *BufferBuilder
	text  string
	style string
	want  *Buffer
}{
	{"empty", NewBufferBuilder(10), "", "",
		&Buffer{Width: 10, Lines: [][]Cell{{}}}},
	{"single rune", NewBufferBuilder(10), "a", "1",
		&Buffer{Width: 10, Lines: [][]Cell{{{"a", "1"}}}}},
	{"control character", NewBufferBuilder(10), "\033", "",
		&Buffer{Width: 10, Lines: [][]Cell{{{"^[", "7"}}}}},
	{"styled control character", NewBufferBuilder(10), "a\033b", "1",
		&Buffer{Width: 10, Lines: [][]Cell{{
			{"a", "1"},
			{"^[", "1;7"},
			{"b", "1"}}}}},
	{"newline", NewBufferBuilder(10), "a\nb", "1",
		&Buffer{Width: 10, Lines: [][]Cell{
			{{"a", "1"}}, {{"b", "1"}}}}},
	{"newline with indent", NewBufferBuilder(10).SetIndent(2), "a\nb", "1",
		&Buffer{Width: 10, Lines: [][]Cell{
			{{"a", "1"}},
			{{" ", ""}, {" ", ""}, {"b", "1"}},
		}}},
	{"wrapping", NewBufferBuilder(4), "aaaab", "1",
		&Buffer{Width: 4, Lines: [][]Cell{
			{{"a", "1"}, {"a", "1"}, {"a", "1"}, {"a", "1"}},
			{{"b", "1"}}}}},
	{"wrapping with indent", NewBufferBuilder(4).SetIndent(2), "aaaab", "1",
		&Buffer{Width: 4, Lines: [][]Cell{
			{{"a", "1"}, {"a", "1"}, {"a", "1"}, {"a", "1"}},
			{{" ", ""}, {" ", ""}, {"b", "1"}}}}},
	{"eager wrapping", NewBufferBuilder(4).SetIndent(2).SetEagerWrap(true), "aaaa", "1",
		&Buffer{Width: 4, Lines: [][]Cell{
			{{"a", "1"}, {"a", "1"}, {"a", "1"}, {"a", "1"}},
			{{" ", ""}, {" ", ""}}}}},
	{"wide character wraps early", NewBufferBuilder(3), "ab世", "",
		&Buffer{Width: 3, Lines: [][]Cell{
			{{"a", ""}, {"b", ""}},
			{{"世", ""}}}}},
	{"one cell per cluster", NewBufferBuilder(10), "é👍🏽", "",
		&Buffer{Width: 10, Lines: [][]Cell{{{"é", ""}, {"👍🏽", ""}}}}},
}

func TestBufferBuilder_WriteStringSGR(t *testing.T) {
	for _, test := range bufferBuilderWritesTests {
		t.Run(test.name, func(t *testing.T) {
			bb := cloneBufferBuilder(test.bb)
			bb.WriteStringSGR(test.text, test.style)
			if diff := cmp.Diff(test.want, bb.Buffer()); diff != "" {
				t.Errorf("WriteStringSGR(%q, %q) (-want +got):\n%s", test.text, test.style, diff)
			}
		})
	}
}

func TestBufferBuilder_DotAndStyles(t *testing.T) {
	buf := NewBufferBuilder(10).
		Write("foo", ui.Underlined).SetDotHere().
		WriteStyled(ui.T("x", ui.Bold)).
		Buffer()
	want := &Buffer{Width: 10, Dot: Pos{0, 3}, Lines: [][]Cell{
		{{"f", "4"}, {"o", "4"}, {"o", "4"}, {"x", "1"}},
	}}
	if diff := cmp.Diff(want, buf); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// Writing text and placing the dot after the first n clusters puts the dot at
// a position that maps back to n.
func TestBufferBuilder_CursorRoundTrip(t *testing.T) {
	texts := []string{
		"hello world",
		"世界你好，世界",
		"a👨‍👩‍👧b🇯🇵c",
		"long enough to wrap around the edge",
	}
	for _, text := range texts {
		clusters := splitClusters(text)
		for n := 0; n <= len(clusters); n++ {
			bb := NewBufferBuilder(8).SetEagerWrap(true)
			for _, c := range clusters[:n] {
				bb.WriteClusterSGR(c, "")
			}
			bb.SetDotHere()
			for _, c := range clusters[n:] {
				bb.WriteClusterSGR(c, "")
			}
			buf := bb.Buffer()
			if got := buf.CellsBefore(buf.Dot); got != n {
				t.Errorf("%q with dot after %d clusters: CellsBefore(%v) = %d",
					text, n, buf.Dot, got)
			}
		}
	}
}

func splitClusters(s string) []string {
	var clusters []string
	state := -1
	var c string
	for s != "" {
		c, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		clusters = append(clusters, c)
	}
	return clusters
}

func cloneBufferBuilder(bb *BufferBuilder) *BufferBuilder {
	return &BufferBuilder{
		bb.Width, bb.Col, bb.Indent,
		bb.EagerWrap, cloneLines(bb.Lines), bb.Dot}
}

func cloneLines(lines [][]Cell) [][]Cell {
	newLines := make([][]Cell, len(lines))
	for i, line := range lines {
		if line != nil {
			newLines[i] = make([]Cell, len(line))
			copy(newLines[i], line)
		}
	}
	return newLines
}
