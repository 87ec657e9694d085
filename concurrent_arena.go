// SPDX-License-Identifier: Apache-2.0

package region

import (
	"sync"
	"unsafe"
)

type concurrentArena struct {
	mtx sync.Mutex
	a   Arena
}

// NewConcurrentArena returns an arena that is safe to be accessed concurrently
// from multiple goroutines. Cursors and rewinds are serialized with allocations, but
// scopes opened from different goroutines still have to close in LIFO order overall.
func NewConcurrentArena(a Arena) Arena {
	return &concurrentArena{a: a}
}

// Alloc satisfies the Arena interface.
func (a *concurrentArena) Alloc(size, alignment uintptr) (unsafe.Pointer, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.a == nil {
		return nil, ErrNilArena
	}
	return a.a.Alloc(size, alignment)
}

// Cursor satisfies the Arena interface.
func (a *concurrentArena) Cursor() Cursor {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.a == nil {
		return Cursor{}
	}
	return a.a.Cursor()
}

// Rewind satisfies the Arena interface.
func (a *concurrentArena) Rewind(c Cursor) error {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.a == nil {
		return ErrNilArena
	}
	return a.a.Rewind(c)
}

// Reset satisfies the Arena interface.
func (a *concurrentArena) Reset() {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.a == nil {
		return
	}
	a.a.Reset()
}

// Release satisfies the Arena interface.
func (a *concurrentArena) Release() {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.a == nil {
		return
	}
	a.a.Release()
}

// Len returns the total number of bytes currently allocated in the arena.
func (a *concurrentArena) Len() int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.a == nil {
		return 0
	}
	return a.a.Len()
}

// Cap returns the total capacity (maximum bytes) that can be allocated in the arena.
func (a *concurrentArena) Cap() int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.a == nil {
		return 0
	}
	return a.a.Cap()
}

// Peak returns the peak number of bytes that have been allocated in the arena.
func (a *concurrentArena) Peak() int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.a == nil {
		return 0
	}
	return a.a.Peak()
}

// Stats returns a snapshot of the wrapped region's statistics. Arenas other than
// *Region only report Len, Cap and Peak.
func (a *concurrentArena) Stats() Stats {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	switch inner := a.a.(type) {
	case nil:
		return Stats{}
	case *Region:
		return inner.Stats()
	default:
		return Stats{Len: inner.Len(), Cap: inner.Cap(), Peak: inner.Peak()}
	}
}
