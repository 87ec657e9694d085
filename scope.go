// SPDX-License-Identifier: Apache-2.0

package region

// Scope rewinds an arena to the position it had when the scope was opened.
//
//	s := region.NewScope(tmp)
//	defer s.Close()
//
// Scopes nest like stack frames and must be closed in reverse order of creation.
// No pointer into memory allocated inside the scope may outlive it.
type Scope struct {
	arena  Arena
	cursor Cursor
	closed bool
}

// NewScope snapshots the current cursor of a.
func NewScope(a Arena) Scope {
	return Scope{arena: a, cursor: a.Cursor()}
}

// Close rewinds the arena to the snapshot. Calling Close more than once is a no-op.
// It returns ErrStaleCursor when an enclosing scope was closed first.
func (s *Scope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.arena.Rewind(s.cursor)
}

// WithScope runs fn with a scope opened on a. The arena is rewound on every exit
// path out of fn, including a panic.
func WithScope(a Arena, fn func(Arena) error) (err error) {
	s := NewScope(a)
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(a)
}
