package undo

// Manager records edits into a Stack, grouping them into units.
type Manager[T any] struct {
	stack *Stack[T]
	last  Behavior
}

// NewManager creates a Manager whose history starts at base.
func NewManager[T any](base T) *Manager[T] {
	return &Manager[T]{stack: NewStack(base), last: Checkpoint}
}

// Record records the state after an edit described by b. Moves only update the
// current entry in place and never drop entries that can be redone; undo and
// redo only remember that they happened.
func (m *Manager[T]) Record(state T, b Behavior) {
	switch {
	case b.Kind == UndoRedo:
	case b.Kind == MoveCursor:
		m.stack.SetCurrent(state)
	case b.CreatesCheckpointAfter(m.last):
		m.stack.Push(state)
	default:
		m.stack.Replace(state)
	}
	m.last = b
}

// Checkpoint ends the current unit, so that the next edit starts a new one.
func (m *Manager[T]) Checkpoint() { m.last = Checkpoint }

// Undo returns the state before the current unit.
func (m *Manager[T]) Undo() T {
	m.last = B(UndoRedo)
	return m.stack.Undo()
}

// Redo returns the state after the next unit.
func (m *Manager[T]) Redo() T {
	m.last = B(UndoRedo)
	return m.stack.Redo()
}

// Reset drops the history and starts again from base.
func (m *Manager[T]) Reset(base T) {
	m.stack.Reset(base)
	m.last = Checkpoint
}

// Stack returns the underlying stack.
func (m *Manager[T]) Stack() *Stack[T] { return m.stack }
