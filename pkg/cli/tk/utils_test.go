package tk

import (
	"reflect"
	"testing"

	"github.com/elves/edline/pkg/cli/term"
	"github.com/elves/edline/pkg/ui"
)

var bb = term.NewBufferBuilder

// renderTest is a test case to be used in testRender.
type renderTest struct {
	Name   string
	Given  Renderer
	Width  int
	Height int
	Want   interface{ Buffer() *term.Buffer }
}

// testRender runs the given Renderer tests.
func testRender(t *testing.T, tests []renderTest) {
	t.Helper()
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			t.Helper()
			buf := test.Given.Render(test.Width, test.Height)
			wantBuf := test.Want.Buffer()
			if !reflect.DeepEqual(buf, wantBuf) {
				t.Errorf("Buffer mismatch")
				t.Logf("Got: %s", buf.TTYString())
				t.Logf("Want: %s", wantBuf.TTYString())
			}
		})
	}
}

func TestLabel(t *testing.T) {
	testRender(t, []renderTest{
		{
			Name:  "fits",
			Given: Label{Content: ui.T("label")},
			Width: 10, Height: 2,
			Want: bb(10).Write("label"),
		},
		{
			Name:  "cropped to height",
			Given: Label{Content: ui.T("a\nb\nc", ui.FgRed)},
			Width: 10, Height: 2,
			Want: bb(10).Write("a", ui.FgRed).Newline().Write("b", ui.FgRed),
		},
	})
	if h := (Label{Content: ui.T("a\nb\nc")}).MaxHeight(10, 1); h != 3 {
		t.Errorf("MaxHeight = %d, want 3", h)
	}
}

func TestHScrollbar(t *testing.T) {
	testRender(t, []renderTest{
		{
			Name:  "thumb in the middle",
			Given: HScrollbar{Total: 4, Low: 1, High: 3},
			Width: 4, Height: 1,
			Want: bb(4).
				Write("━", ui.FgMagenta).
				Write("  ", ui.FgMagenta, ui.Inverse).
				Write("━", ui.FgMagenta),
		},
	})
}
