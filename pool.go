// SPDX-License-Identifier: Apache-2.0

package region

import (
	"sync"
	"weak"
)

// Pool hands out one Region per worker so that goroutines never share an
// allocator. Released regions are kept as weak pointers: the GC may reclaim idle
// regions at any time, which lets the pool shrink under memory pressure.
//
// New regions are sized from the average peak usage recorded for their key.
type Pool struct {
	pool  []weak.Pointer[PoolItem]
	sizes map[uint64]*poolItemSize
	mu    sync.Mutex
}

// poolItemSize tracks the peak usage across the last sizeWindow releases of a key.
type poolItemSize struct {
	count      int
	totalBytes int
}

const (
	sizeWindow         = 50
	defaultPoolRegion  = 1024 * 1024 // 1MB
	minPoolRegionBytes = 1024
)

// PoolItem is a region checked out of a Pool.
type PoolItem struct {
	Region *Region
	Key    uint64
}

// NewPool creates a new Pool instance.
func NewPool() *Pool {
	return &Pool{
		sizes: make(map[uint64]*poolItemSize),
	}
}

// Acquire gets a region from the pool or creates a new one if none are available.
// The key identifies the use case and drives the size of newly created regions.
func (p *Pool) Acquire(key uint64) *PoolItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.pool) > 0 {
		lastIdx := len(p.pool) - 1
		wp := p.pool[lastIdx]
		p.pool = p.pool[:lastIdx]

		if v := wp.Value(); v != nil {
			v.Key = key
			return v
		}
		// collected by the GC, try the next one
	}

	return &PoolItem{
		Region: NewRegion(WithMinBufferSize(p.regionSize(key))),
		Key:    key,
	}
}

// Release resets the item's region and returns it to the pool.
// The item must not be used after Release.
func (p *Pool) Release(item *PoolItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release(item)
}

// ReleaseMany releases several items under a single lock acquisition.
func (p *Pool) ReleaseMany(items []*PoolItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range items {
		p.release(item)
	}
}

// Len returns the number of released items that have not been collected yet.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, wp := range p.pool {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

func (p *Pool) release(item *PoolItem) {
	peak := item.Region.Peak()
	item.Region.Reset()

	if size, ok := p.sizes[item.Key]; ok {
		if size.count == sizeWindow {
			size.count = 1
			size.totalBytes = size.totalBytes / sizeWindow
		}
		size.count++
		size.totalBytes += peak
	} else {
		p.sizes[item.Key] = &poolItemSize{
			count:      1,
			totalBytes: peak,
		}
	}

	item.Key = 0
	p.pool = append(p.pool, weak.Make(item))
}

// regionSize returns the buffer size for a new region of the given key.
func (p *Pool) regionSize(key uint64) int {
	size, ok := p.sizes[key]
	if !ok {
		return defaultPoolRegion
	}
	if avg := size.totalBytes / size.count; avg > minPoolRegionBytes {
		return avg
	}
	return minPoolRegionBytes
}
