// Package undo implements the undo history of the line editor.
//
// The history is a stack of snapshots with a pointer to the current one. Edit
// commands are recorded through a Manager, which decides from the kind of the
// previous and the current edit whether the new state extends the current
// snapshot or becomes a new one.
package undo

// Stack is a non-empty list of snapshots with an index to the current one.
type Stack[T any] struct {
	entries []T
	index   int
}

// NewStack creates a Stack whose only entry is base.
func NewStack[T any](base T) *Stack[T] {
	return &Stack[T]{entries: []T{base}}
}

// Current returns the current entry.
func (s *Stack[T]) Current() T { return s.entries[s.index] }

// Push adds v after the current entry, discarding any entries that could have
// been redone.
func (s *Stack[T]) Push(v T) {
	s.entries = append(s.entries[:s.index+1], v)
	s.index++
}

// Replace overwrites the current entry, keeping the entries after it. The base
// entry is never overwritten; replacing it pushes instead.
func (s *Stack[T]) Replace(v T) {
	if s.index == 0 {
		s.Push(v)
		return
	}
	s.entries[s.index] = v
}

// SetCurrent overwrites the current entry, the base entry included. It is
// meant for changes that leave the content alone, such as cursor moves.
func (s *Stack[T]) SetCurrent(v T) { s.entries[s.index] = v }

// Undo moves to the previous entry and returns it. It stays at the base entry.
func (s *Stack[T]) Undo() T {
	if s.index > 0 {
		s.index--
	}
	return s.Current()
}

// Redo moves to the next entry and returns it. It stays at the newest entry.
func (s *Stack[T]) Redo() T {
	if s.index < len(s.entries)-1 {
		s.index++
	}
	return s.Current()
}

// Reset drops every entry and starts again from base.
func (s *Stack[T]) Reset(base T) {
	clear(s.entries)
	s.entries = append(s.entries[:0], base)
	s.index = 0
}

// Len returns the number of entries, including the base entry.
func (s *Stack[T]) Len() int { return len(s.entries) }

// Index returns the index of the current entry.
func (s *Stack[T]) Index() int { return s.index }

// Entries returns a copy of all entries.
func (s *Stack[T]) Entries() []T { return append([]T(nil), s.entries...) }
