// SPDX-License-Identifier: Apache-2.0

package region

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Region is a bump-pointer allocator over a chain of buffers.
//
// Allocation is strictly sequential through the chain: once a buffer cannot satisfy a
// request the region moves on to the next one and never returns to an earlier buffer
// until a Rewind. This keeps allocation positions totally ordered so that cursors can
// be compared and validated.
//
// A Region is not safe for concurrent use. Wrap it with NewConcurrentArena or hand out
// one region per goroutine via a Pool.
type Region struct {
	id                 uint64
	buffers            []*buffer
	current            int     // index of the buffer receiving allocations
	peak               uintptr // tracks peak allocated space
	minBufferSize      uintptr // minimum size for new buffers
	initialBufferCount int     // number of initial buffers to create
	fixed              bool    // never grow beyond the initial buffers

	epoch   uint64  // incremented by every rewind
	rewinds uint64  // number of rewinds, including resets
	floors  []floor // rewind history, see Valid
}

type buffer struct {
	ptr    unsafe.Pointer
	offset uintptr
	size   uintptr
}

var regionIDs atomic.Uint64

func newBuffer(size uintptr) *buffer {
	return &buffer{size: size}
}

func (s *buffer) alloc(size, alignment uintptr) (unsafe.Pointer, bool) {
	if s.ptr == nil {
		if s.size == 0 {
			return nil, false
		}
		buf := make([]byte, s.size) // allocate buffer lazily
		s.ptr = unsafe.Pointer(unsafe.SliceData(buf))
	}
	base := uintptr(s.ptr)
	aligned := (base + s.offset + alignment - 1) &^ (alignment - 1)
	start := aligned - base
	if start > s.size || s.size-start < size {
		return nil, false
	}
	ptr := unsafe.Add(s.ptr, start)
	s.offset = start + size

	// Compiled into a runtime.memclrNoHeapPointers call.
	b := unsafe.Slice((*byte)(ptr), size)
	for i := range b {
		b[i] = 0
	}

	return ptr, true
}

func (s *buffer) release() {
	s.offset = 0
	s.ptr = nil
}

// NewRegion creates a new region with optional configuration.
// If no options are provided, it uses minBufferSize (32KB) as the default buffer size,
// creates 1 initial buffer and grows on demand.
func NewRegion(opts ...Option) *Region {
	r := &Region{
		id:                 regionIDs.Add(1),
		minBufferSize:      minBufferSize,
		initialBufferCount: 1,
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.fixed {
		// a fixed region is exactly one buffer, whatever order the options came in
		r.initialBufferCount = 1
	}

	for i := 0; i < r.initialBufferCount; i++ {
		r.buffers = append(r.buffers, newBuffer(r.minBufferSize))
	}
	return r
}

const (
	minBufferSize = 1024 * 32 // 32KB
)

// Option represents a configuration option for a Region.
type Option func(*Region)

// WithMinBufferSize sets the minimum buffer size for new buffers created by the region.
func WithMinBufferSize(size int) Option {
	return func(r *Region) {
		r.minBufferSize = uintptr(size)
	}
}

// WithInitialBufferCount sets the number of initial buffers to create.
func WithInitialBufferCount(count int) Option {
	return func(r *Region) {
		r.initialBufferCount = count
	}
}

// WithFixedCapacity turns the region into a single buffer of exactly size bytes.
// Allocations that do not fit fail with ErrOutOfMemory instead of growing the region.
func WithFixedCapacity(size int) Option {
	return func(r *Region) {
		r.fixed = true
		r.minBufferSize = uintptr(size)
		r.initialBufferCount = 1
	}
}

// Alloc satisfies the Arena interface.
func (r *Region) Alloc(size, alignment uintptr) (unsafe.Pointer, error) {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		return nil, fmt.Errorf("%w: alignment %d is not a power of two", ErrInvalidSize, alignment)
	}
	if size > maxAllocSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, size)
	}
	if size == 0 {
		return unsafe.Pointer(&zeroAlloc), nil
	}

	for r.current < len(r.buffers) {
		if ptr, ok := r.buffers[r.current].alloc(size, alignment); ok {
			r.updatePeak()
			return ptr, nil
		}
		if r.current+1 == len(r.buffers) {
			break
		}
		r.current++
	}

	if r.fixed {
		return nil, fmt.Errorf("%w: requested %d bytes with %d of %d in use", ErrOutOfMemory, size, r.len(), r.capacity())
	}

	// New buffer should be at least minBufferSize, but large enough for the
	// allocation plus worst-case alignment padding.
	newBufferSize := size + alignment - 1
	if newBufferSize < r.minBufferSize {
		newBufferSize = r.minBufferSize
	}
	r.buffers = append(r.buffers, newBuffer(newBufferSize))
	r.current = len(r.buffers) - 1

	ptr, ok := r.buffers[r.current].alloc(size, alignment)
	if !ok {
		// This should never happen since we just created a buffer large enough
		panic("region: failed to allocate on newly created buffer")
	}
	r.updatePeak()
	return ptr, nil
}

func (r *Region) updatePeak() {
	if l := r.len(); l > r.peak {
		r.peak = l
	}
}

// Reset satisfies the Arena interface. It is equivalent to rewinding to the
// position of a freshly created region.
func (r *Region) Reset() {
	r.rewindTo(position{})
}

// Release satisfies the Arena interface.
func (r *Region) Release() {
	r.rewindTo(position{})
	for _, s := range r.buffers {
		s.release()
	}
}

func (r *Region) len() uintptr {
	var total uintptr
	for _, s := range r.buffers {
		total += s.offset
	}
	return total
}

func (r *Region) capacity() uintptr {
	var total uintptr
	for _, s := range r.buffers {
		total += s.size
	}
	return total
}

// Len returns the total number of bytes currently allocated in the region,
// including alignment padding.
func (r *Region) Len() int {
	return int(r.len())
}

// Cap returns the total capacity of all buffers in the region.
func (r *Region) Cap() int {
	return int(r.capacity())
}

// Peak returns the peak number of bytes that have been allocated in the region.
func (r *Region) Peak() int {
	return int(r.peak)
}

// Fixed reports whether the region was created with WithFixedCapacity.
func (r *Region) Fixed() bool {
	return r.fixed
}

// Stats is a snapshot of region statistics.
type Stats struct {
	Len     int    // Bytes currently allocated
	Cap     int    // Total capacity in bytes
	Peak    int    // High-water mark of Len
	Buffers int    // Number of buffers in the chain
	Rewinds uint64 // Number of rewinds, resets and releases
	Epoch   uint64 // Current rewind epoch
}

// Stats returns a snapshot of region statistics.
func (r *Region) Stats() Stats {
	return Stats{
		Len:     r.Len(),
		Cap:     r.Cap(),
		Peak:    r.Peak(),
		Buffers: len(r.buffers),
		Rewinds: r.rewinds,
		Epoch:   r.epoch,
	}
}
