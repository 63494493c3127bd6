package keymap

import "github.com/elves/edline/pkg/ui"

// Sequencer accumulates the keys of a partially typed chord. The zero value
// has nothing pending.
type Sequencer struct {
	pending []ui.Key
}

// Fallback resolves a key that has no binding of its own.
type Fallback func(ui.Key) Event

// Pending returns whether keys are waiting for the rest of a chord.
func (s *Sequencer) Pending() bool { return len(s.pending) > 0 }

// PendingKeys returns a copy of the pending keys.
func (s *Sequencer) PendingKeys() []ui.Key { return append([]ui.Key(nil), s.pending...) }

// Reset drops pending keys without resolving them.
func (s *Sequencer) Reset() { s.pending = nil }

// Feed adds a key. It returns None while a chord is incomplete. A key that
// cannot continue the pending chord first flushes it, and the result of the
// flush precedes the resolution of the key itself.
func (s *Sequencer) Feed(kb *Keybindings, k ui.Key, fallback Fallback) Event {
	k = Normalize(k)
	seq := append(s.PendingKeys(), k)
	ev, bound, prefix := kb.Lookup(seq)
	switch {
	case prefix:
		s.pending = seq
		return Event{}
	case bound:
		s.pending = nil
		return ev
	case len(s.pending) == 0:
		return fallback(k)
	}
	flushed := s.Flush(kb, fallback)
	return Combine(flushed, s.Feed(kb, k, fallback))
}

// Flush resolves the pending keys as if no more keys were coming. A bound
// pending sequence fires its own event. Otherwise the first key acts on its
// own and the remaining keys are fed again.
func (s *Sequencer) Flush(kb *Keybindings, fallback Fallback) Event {
	keys := s.pending
	s.pending = nil
	if len(keys) == 0 {
		return Event{}
	}
	if ev, bound, _ := kb.Lookup(keys); bound {
		return ev
	}
	first, ok := kb.Find(keys[0])
	if !ok {
		first = fallback(keys[0])
	}
	evs := []Event{first}
	for _, k := range keys[1:] {
		evs = append(evs, s.Feed(kb, k, fallback))
	}
	if s.Pending() {
		// The replayed keys started a chord of their own.
		evs = append(evs, s.Flush(kb, fallback))
	}
	return Combine(evs...)
}
