package cli

import "sync"

// Capacity of the event queue. Input blocks when the queue is full.
const eventQueueSize = 128

// Any value delivered to the loop: key events, signals, chord timeouts and so
// on. The loop itself only passes them to the handler.
type event any

// What the event loop reports when it finishes.
type loopResult struct {
	sig Signal
	err error
}

// Bits passed to the redraw callback.
type redrawFlag uint

const (
	// The whole UI should be redrawn, not just the part that has changed.
	// Set after Redraw(true).
	fullRedraw redrawFlag = 1 << iota
	// The loop is about to return; the UI is drawn for the last time.
	finalRedraw
)

// A serial event loop. Events and redraw requests may come from any
// goroutine, but handle and redraw are only ever called from the goroutine
// running run, one at a time.
type loop struct {
	handle func(event)
	redraw func(redrawFlag)

	events  chan event
	redraws chan struct{}
	results chan loopResult

	mu          sync.Mutex
	pendingFull bool
}

func newLoop(handle func(event), redraw func(redrawFlag)) *loop {
	return &loop{
		handle:  handle,
		redraw:  redraw,
		events:  make(chan event, eventQueueSize),
		redraws: make(chan struct{}, 1),
		results: make(chan loopResult, 1),
	}
}

// Input queues an event.
func (lp *loop) Input(ev event) { lp.events <- ev }

// Redraw requests a redraw without blocking. Requests made before the loop
// gets to them are merged, and a full request wins.
func (lp *loop) Redraw(full bool) {
	lp.mu.Lock()
	lp.pendingFull = lp.pendingFull || full
	lp.mu.Unlock()
	select {
	case lp.redraws <- struct{}{}:
	default:
	}
}

// Return makes Run return after the current event. Only the first call
// before Run returns takes effect.
func (lp *loop) Return(sig Signal, err error) {
	select {
	case lp.results <- loopResult{sig, err}:
	default:
	}
}

// HasReturned reports whether Return has been called and not yet consumed by
// Run.
func (lp *loop) HasReturned() bool { return len(lp.results) > 0 }

// Run draws, then handles events until Return is called. Events that are
// already queued are handled in a batch before the next redraw.
func (lp *loop) Run() (Signal, error) {
	for {
		lp.redraw(lp.takeFlag())
		select {
		case ev := <-lp.events:
			if res, done := lp.drain(ev); done {
				return lp.finish(res)
			}
		case res := <-lp.results:
			return lp.finish(res)
		case <-lp.redraws:
		}
	}
}

// Handles ev and then every queued event, stopping early if the handler
// calls Return.
func (lp *loop) drain(ev event) (loopResult, bool) {
	for {
		lp.handle(ev)
		select {
		case res := <-lp.results:
			return res, true
		default:
		}
		select {
		case ev = <-lp.events:
		default:
			return loopResult{}, false
		}
	}
}

func (lp *loop) finish(res loopResult) (Signal, error) {
	lp.redraw(finalRedraw)
	return res.sig, res.err
}

func (lp *loop) takeFlag() redrawFlag {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	var flag redrawFlag
	if lp.pendingFull {
		flag = fullRedraw
		lp.pendingFull = false
	}
	return flag
}
