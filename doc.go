// SPDX-License-Identifier: Apache-2.0

// Package region implements stack-discipline arena allocation.
//
// A Region is a bump-pointer allocator. Memory is reclaimed in bulk, either by
// rewinding to a previously captured Cursor or by resetting the whole region:
//
//	r := region.NewRegion(region.WithFixedCapacity(64 << 10))
//
//	s := region.NewScope(r)
//	defer s.Close() // rewinds everything allocated below
//
//	p, err := region.Allocate[Point](r)
//
// Rewinds are checked. Rewinding to a cursor of another region, or to a cursor that an
// earlier rewind already invalidated, fails with ErrForeignCursor or ErrStaleCursor
// instead of corrupting the region.
//
// RetirementList recycles fixed-shape values on top of an arena. Pool and
// NewConcurrentArena cover the cases where more than one goroutine needs
// memory; a bare Region is single-threaded.
//
// Arena memory is plain bytes to the garbage collector. Values stored in it may point
// into the same arena but must not be the only reference to Go heap objects.
package region
