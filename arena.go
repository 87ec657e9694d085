// SPDX-License-Identifier: Apache-2.0

package region

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrOutOfMemory is returned when a fixed-capacity region cannot satisfy an allocation.
	ErrOutOfMemory = errors.New("region: out of memory")
	// ErrInvalidSize is returned for negative counts, overflowing sizes and bad alignments.
	ErrInvalidSize = errors.New("region: invalid allocation size")
	// ErrInvalidCursor is returned when rewinding to the zero Cursor.
	ErrInvalidCursor = errors.New("region: invalid cursor")
	// ErrForeignCursor is returned when rewinding to a cursor taken from another region.
	ErrForeignCursor = errors.New("region: cursor belongs to a different region")
	// ErrStaleCursor is returned when a cursor was invalidated by a rewind to an earlier position.
	ErrStaleCursor = errors.New("region: stale cursor")
	// ErrNilArena is returned by wrappers that were constructed without an arena.
	ErrNilArena = errors.New("region: nil arena")
)

// Arena is an interface that describes a stack-discipline memory allocation arena.
type Arena interface {
	// Alloc allocates zeroed memory of the given size and returns a pointer to it.
	// The alignment parameter specifies the alignment of the allocated memory and must be a power of two.
	Alloc(size, alignment uintptr) (unsafe.Pointer, error)

	// Cursor captures the current allocation position.
	Cursor() Cursor

	// Rewind resets the allocation position to a previously captured cursor.
	// Every pointer returned by Alloc after the cursor was captured becomes invalid.
	Rewind(c Cursor) error

	// Reset resets the arena's state without releasing the underlying memory.
	// After invoking this method any pointer previously returned by Alloc becomes immediately invalid.
	Reset()

	// Release releases the arena's underlying memory back to the system.
	// The arena lazily reacquires memory on the next allocation.
	Release()

	// Len returns the total number of bytes currently allocated in the arena.
	Len() int

	// Cap returns the total capacity (maximum bytes) that can be allocated in the arena
	// without acquiring more memory.
	Cap() int

	// Peak returns the peak number of bytes that have been allocated in the arena.
	// This value is not reset by Reset, Rewind or Release.
	Peak() int
}

// zeroAlloc is the address handed out for zero-sized allocations.
var zeroAlloc struct{}

// Allocate allocates a zeroed value of type T using the provided Arena.
// If passed arena is nil, it allocates memory using Go's built-in new function.
//
// Memory handed out by an arena is not scanned by the garbage collector, so T must not
// hold the only reference to a Go heap object.
func Allocate[T any](a Arena) (*T, error) {
	if a == nil {
		return new(T), nil
	}
	var x T
	ptr, err := a.Alloc(unsafe.Sizeof(x), unsafe.Alignof(x))
	if err != nil {
		return nil, err
	}
	return (*T)(ptr), nil
}

// MustAllocate is like Allocate but panics when the arena is exhausted.
func MustAllocate[T any](a Arena) *T {
	v, err := Allocate[T](a)
	if err != nil {
		panic(err)
	}
	return v
}

// AllocateArray allocates a zeroed array of count values of type T.
// A count of zero yields a non-nil empty slice and consumes no arena memory.
func AllocateArray[T any](a Arena, count int) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrInvalidSize, count)
	}
	if count == 0 {
		return []T{}, nil
	}
	if a == nil {
		return make([]T, count), nil
	}
	var x T
	size := unsafe.Sizeof(x)
	if size != 0 && uintptr(count) > maxAllocSize/size {
		return nil, fmt.Errorf("%w: %d elements of %d bytes overflow", ErrInvalidSize, count, size)
	}
	ptr, err := a.Alloc(size*uintptr(count), unsafe.Alignof(x))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(ptr), count), nil
}

// maxAllocSize bounds a single allocation so that offsets never wrap.
const maxAllocSize = uintptr(1<<(unsafe.Sizeof(uintptr(0))*8-1) - 1)
