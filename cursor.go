// SPDX-License-Identifier: Apache-2.0

package region

import "sort"

// Cursor is a saved allocation position of a Region.
// The zero Cursor is never valid.
type Cursor struct {
	region uint64
	epoch  uint64
	pos    position
}

// position orders allocations lexicographically by buffer and offset.
type position struct {
	buffer int
	offset uintptr
}

func (p position) less(q position) bool {
	if p.buffer != q.buffer {
		return p.buffer < q.buffer
	}
	return p.offset < q.offset
}

// floor records the target of a rewind performed at epoch.
type floor struct {
	epoch uint64
	pos   position
}

func (r *Region) position() position {
	if r.current < len(r.buffers) {
		return position{buffer: r.current, offset: r.buffers[r.current].offset}
	}
	return position{buffer: r.current}
}

// Cursor satisfies the Arena interface.
func (r *Region) Cursor() Cursor {
	return Cursor{region: r.id, epoch: r.epoch, pos: r.position()}
}

// Rewind satisfies the Arena interface. It fails without modifying the region when
// the cursor is the zero value, belongs to another region or is stale.
func (r *Region) Rewind(c Cursor) error {
	if err := r.check(c); err != nil {
		return err
	}
	r.rewindTo(c.pos)
	return nil
}

// Valid reports whether c can still be rewound to.
//
// A cursor captured right after an allocation doubles as a liveness stamp for that
// allocation: the memory is still owned by the caller exactly as long as Valid
// returns true.
func (r *Region) Valid(c Cursor) bool {
	return r.check(c) == nil
}

func (r *Region) check(c Cursor) error {
	if c.region == 0 {
		return ErrInvalidCursor
	}
	if c.region != r.id {
		return ErrForeignCursor
	}
	if r.position().less(c.pos) {
		return ErrStaleCursor
	}
	// floors holds strictly increasing epochs and positions, so the first floor
	// recorded after the cursor was captured is the lowest rewind target since.
	i := sort.Search(len(r.floors), func(i int) bool { return r.floors[i].epoch > c.epoch })
	if i < len(r.floors) && r.floors[i].pos.less(c.pos) {
		return ErrStaleCursor
	}
	return nil
}

func (r *Region) rewindTo(p position) {
	for i := p.buffer + 1; i < len(r.buffers); i++ {
		r.buffers[i].offset = 0
	}
	if p.buffer < len(r.buffers) {
		r.buffers[p.buffer].offset = p.offset
	}
	r.current = p.buffer

	r.epoch++
	r.rewinds++
	n := len(r.floors)
	for n > 0 && !r.floors[n-1].pos.less(p) {
		n--
	}
	r.floors = append(r.floors[:n], floor{epoch: r.epoch, pos: p})
}
