package cli

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noRedraw(redrawFlag) {}

func TestLoop_HandlesEventsInOrder(t *testing.T) {
	var got []event
	var lp *loop
	lp = newLoop(func(e event) {
		got = append(got, e)
		if e == "^D" {
			lp.Return(Signal{Kind: CtrlD}, nil)
		}
	}, noRedraw)

	want := []event{"foo", "bar", "lorem", "ipsum", "^D"}
	for _, e := range want {
		lp.Input(e)
	}
	sig, err := lp.Run()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("handled events (-want +got):\n%s", diff)
	}
	if sig.Kind != CtrlD || err != nil {
		t.Errorf("Run -> (%v, %v), want CtrlD and nil error", sig, err)
	}
}

func TestLoop_StopsHandlingAfterReturn(t *testing.T) {
	var got []event
	var lp *loop
	lp = newLoop(func(e event) {
		got = append(got, e)
		lp.Return(SuccessSignal("buffer"), io.EOF)
	}, noRedraw)
	lp.Input("x")
	lp.Input("y")

	sig, err := lp.Run()
	if sig != SuccessSignal("buffer") || err != io.EOF {
		t.Errorf("Run -> (%v, %v), want (%v, %v)", sig, err, SuccessSignal("buffer"), io.EOF)
	}
	if len(got) != 1 {
		t.Errorf("handled %v, want only the first event", got)
	}
	// Run consumes the result.
	if lp.HasReturned() {
		t.Errorf("HasReturned -> true after Run returned")
	}
}

func TestLoop_ReturnBeforeRun(t *testing.T) {
	var flags []redrawFlag
	lp := newLoop(func(event) {}, func(f redrawFlag) { flags = append(flags, f) })
	lp.Return(Signal{Kind: CtrlC}, nil)
	if !lp.HasReturned() {
		t.Errorf("HasReturned -> false after Return")
	}
	// Only the first Return counts.
	lp.Return(Signal{Kind: CtrlD}, nil)

	sig, _ := lp.Run()
	if sig.Kind != CtrlC {
		t.Errorf("got signal %v, want CtrlC", sig)
	}
	if diff := cmp.Diff([]redrawFlag{0, finalRedraw}, flags); diff != "" {
		t.Errorf("redraw flags (-want +got):\n%s", diff)
	}
}

func TestLoop_RedrawRequests(t *testing.T) {
	for _, full := range []bool{true, false} {
		var got []redrawFlag
		var lp *loop
		lp = newLoop(func(e event) {
			if e == "quit" {
				lp.Return(Signal{}, nil)
			}
		}, func(f redrawFlag) {
			got = append(got, f)
			switch len(got) {
			case 1:
				go lp.Redraw(full)
			case 2:
				go lp.Input("quit")
			}
		})
		lp.Run()

		var want redrawFlag
		if full {
			want = fullRedraw
		}
		if len(got) < 2 || got[0] != 0 || got[1] != want {
			t.Errorf("Redraw(%v): got flags %v, want [0 %v ...]", full, got, want)
		}
	}
}

func TestLoop_RedrawBeforeRun(t *testing.T) {
	var got []redrawFlag
	var lp *loop
	lp = newLoop(func(event) { lp.Return(Signal{}, nil) },
		func(f redrawFlag) { got = append(got, f) })
	lp.Redraw(true)
	lp.Redraw(false)
	lp.Input("a")
	lp.Run()

	// The requests are merged into the first redraw. A stale wakeup may add
	// one more plain redraw.
	if len(got) < 2 || got[0] != fullRedraw || got[len(got)-1] != finalRedraw {
		t.Fatalf("got redraw flags %v, want [%v ... %v]", got, fullRedraw, finalRedraw)
	}
	for _, f := range got[1 : len(got)-1] {
		if f != 0 {
			t.Errorf("got redraw flags %v, want plain redraws in the middle", got)
		}
	}
}

func TestLoop_FinalRedrawSeesLastState(t *testing.T) {
	buffer := ""
	var first, final *string
	var lp *loop
	lp = newLoop(func(e event) {
		if e == '\n' {
			lp.Return(SuccessSignal(buffer), nil)
			return
		}
		buffer += string(e.(rune))
	}, func(f redrawFlag) {
		// Events are consumed in batches, so only the first and final
		// redraws are deterministic.
		s := buffer
		if first == nil {
			first = &s
		} else if f&finalRedraw != 0 {
			final = &s
		}
	})
	go func() {
		for _, r := range "echo\n" {
			lp.Input(r)
		}
	}()
	sig, err := lp.Run()

	if first == nil || *first != "" {
		t.Errorf("first redraw saw %v, want empty buffer", first)
	}
	if final == nil || *final != "echo" {
		t.Errorf("final redraw saw %v, want \"echo\"", final)
	}
	if sig != SuccessSignal("echo") || err != nil {
		t.Errorf("Run -> (%v, %v), want (%v, nil)", sig, err, SuccessSignal("echo"))
	}
}
