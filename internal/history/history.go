// Package history keeps full-buffer snapshots for undo and redo.
//
// A snapshot is a deep copy, so later edits to the live buffer never reach a
// stored entry. Snapshots are whole buffers rather than inverse commands:
// canvases are at most 1024x1024 and a copy cannot get out of sync.
package history

import "github.com/ha1tch/pixelpad/internal/pixbuf"

// Store holds the undo and redo stacks. The zero value is ready to use and
// unbounded.
type Store struct {
	undo  []*pixbuf.Buffer
	redo  []*pixbuf.Buffer
	limit int
}

// Option configures a Store.
type Option func(*Store)

// WithLimit caps the undo stack at n entries, dropping the oldest first.
// n <= 0 means no limit.
func WithLimit(n int) Option {
	return func(s *Store) {
		s.limit = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save records buf as the state before an edit and clears the redo stack.
func (s *Store) Save(buf *pixbuf.Buffer) {
	s.undo = append(s.undo, buf.Clone())
	s.redo = nil
	if s.limit > 0 && len(s.undo) > s.limit {
		s.undo[0] = nil
		s.undo = s.undo[1:]
	}
}

// Undo returns the state to restore, after saving live for Redo.
// It reports false and leaves both stacks alone when there is nothing to undo.
func (s *Store) Undo(live *pixbuf.Buffer) (*pixbuf.Buffer, bool) {
	prev, ok := pop(&s.undo)
	if !ok {
		return nil, false
	}
	s.redo = append(s.redo, live.Clone())
	return prev, true
}

// Redo is the mirror of Undo.
func (s *Store) Redo(live *pixbuf.Buffer) (*pixbuf.Buffer, bool) {
	next, ok := pop(&s.redo)
	if !ok {
		return nil, false
	}
	s.undo = append(s.undo, live.Clone())
	return next, true
}

// Drop removes the newest undo entry without restoring it. The redo stack is
// left alone. It reports false when there is nothing to drop.
func (s *Store) Drop() bool {
	_, ok := pop(&s.undo)
	return ok
}

// Reset drops every snapshot.
func (s *Store) Reset() {
	s.undo = nil
	s.redo = nil
}

// CanUndo reports whether Undo would change anything.
func (s *Store) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (s *Store) CanRedo() bool { return len(s.redo) > 0 }

// Len returns the depth of both stacks.
func (s *Store) Len() (undo, redo int) {
	return len(s.undo), len(s.redo)
}

func pop(stack *[]*pixbuf.Buffer) (*pixbuf.Buffer, bool) {
	n := len(*stack)
	if n == 0 {
		return nil, false
	}
	top := (*stack)[n-1]
	(*stack)[n-1] = nil
	*stack = (*stack)[:n-1]
	return top, true
}
