package prompt

import (
	"os"
	"sync"
	"time"

	"github.com/elves/edline/pkg/ui"
)

// Async is a Segment that is computed in the background. While a computation
// takes longer than the stale threshold, the previous content is shown with
// the stale transform applied.
type Async struct {
	config Config

	// Working directory when the segment was last updated.
	lastWd string
	// Channel for update requests.
	updateReq chan struct{}
	// Channel on which late updates are signaled.
	ch chan struct{}
	// Last computed content.
	last ui.Text
	// Mutex for guarding access to the last field.
	lastMutex sync.RWMutex
}

// Config keeps configurations for an Async segment.
type Config struct {
	// The function that computes the segment.
	Compute func() ui.Text
	// Function to transform stale content.
	StaleTransform func(ui.Text) ui.Text
	// Threshold for content to be considered as stale.
	StaleThreshold func() time.Duration
	// How eager the segment should be updated. When >= 5, updated when the
	// working directory has changed. When >= 10, always updated. Default is 5.
	Eagerness func() int
}

func defaultStaleTransform(t ui.Text) ui.Text {
	return ui.StyleText(t, ui.Inverse)
}

const defaultStaleThreshold = 200 * time.Millisecond

const defaultEagerness = 5

var unknownContent = ui.T("???")

// NewAsync makes a new Async segment. Its content is unknown until the first
// Trigger.
func NewAsync(cfg Config) *Async {
	if cfg.Compute == nil {
		cfg.Compute = func() ui.Text { return unknownContent }
	}
	if cfg.StaleTransform == nil {
		cfg.StaleTransform = defaultStaleTransform
	}
	if cfg.StaleThreshold == nil {
		cfg.StaleThreshold = func() time.Duration { return defaultStaleThreshold }
	}
	if cfg.Eagerness == nil {
		cfg.Eagerness = func() int { return defaultEagerness }
	}
	a := &Async{
		config:    cfg,
		updateReq: make(chan struct{}, 1),
		ch:        make(chan struct{}, 1),
		last:      unknownContent,
	}
	// TODO: Stop the goroutine when the segment is no longer used.
	go a.loop()
	return a
}

func (a *Async) loop() {
	content := unknownContent
	ch := make(chan ui.Text)
	for range a.updateReq {
		go func() {
			ch <- a.config.Compute()
		}()

		select {
		case <-time.After(a.config.StaleThreshold()):
			// The computation did not finish within the threshold. Show the
			// previous content, marked as stale.
			a.update(a.config.StaleTransform(content))
			content = <-ch

			select {
			case <-a.updateReq:
				// Another update was requested meanwhile; keep the content
				// marked as stale to reduce flickering.
				a.update(a.config.StaleTransform(content))
				a.queueUpdate()
			default:
				a.update(content)
			}
		case content = <-ch:
			a.update(content)
		}
	}
}

// Trigger requests an update. Unforced requests are subject to the eagerness.
func (a *Async) Trigger(force bool) {
	if force || a.shouldUpdate() {
		a.queueUpdate()
	}
}

// Get returns the current content.
func (a *Async) Get() ui.Text {
	a.lastMutex.RLock()
	defer a.lastMutex.RUnlock()
	return a.last
}

// LateUpdates returns a channel on which late updates are signaled.
func (a *Async) LateUpdates() <-chan struct{} {
	return a.ch
}

func (a *Async) queueUpdate() {
	select {
	case a.updateReq <- struct{}{}:
	default:
	}
}

func (a *Async) update(content ui.Text) {
	a.lastMutex.Lock()
	a.last = content
	a.lastMutex.Unlock()
	a.ch <- struct{}{}
}

func (a *Async) shouldUpdate() bool {
	eagerness := a.config.Eagerness()
	if eagerness >= 10 {
		return true
	}
	if eagerness >= 5 {
		wd, err := os.Getwd()
		if err != nil {
			wd = "error"
		}
		oldWd := a.lastWd
		a.lastWd = wd
		return wd != oldWd
	}
	return false
}
