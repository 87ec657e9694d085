// SPDX-License-Identifier: Apache-2.0

package region

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAcquireCreatesRegion(t *testing.T) {
	p := NewPool()
	item := p.Acquire(1)
	require.NotNil(t, item.Region)
	require.Equal(t, uint64(1), item.Key)
	require.Equal(t, defaultPoolRegion, item.Region.Cap())
}

func TestPoolReleaseResetsAndReuses(t *testing.T) {
	p := NewPool()
	item := p.Acquire(1)
	mustAlloc(t, item.Region, 512, 1)

	p.Release(item)
	require.Equal(t, 0, item.Region.Len())
	require.Equal(t, uint64(0), item.Key)

	again := p.Acquire(2)
	// the weak pointer is still live because item is referenced here
	require.Same(t, item, again)
	require.Equal(t, uint64(2), again.Key)
	runtime.KeepAlive(item)
}

func TestPoolSizesNewRegionsFromPeak(t *testing.T) {
	p := NewPool()

	items := []*PoolItem{p.Acquire(7), p.Acquire(7)}
	mustAlloc(t, items[0].Region, 4096, 1)
	mustAlloc(t, items[1].Region, 8192, 1)
	p.ReleaseMany(items)

	require.Equal(t, 6144, p.regionSize(7))
	require.Equal(t, defaultPoolRegion, p.regionSize(8))
}

func TestPoolRegionSizeHasFloor(t *testing.T) {
	p := NewPool()
	item := p.Acquire(3)
	p.Release(item)
	require.Equal(t, minPoolRegionBytes, p.regionSize(3))
}

func TestPoolConcurrentWorkers(t *testing.T) {
	p := NewPool()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				item := p.Acquire(1)
				_, err := AllocateArray[int64](item.Region, 16)
				require.NoError(t, err)
				p.Release(item)
			}
		}()
	}
	wg.Wait()
	require.True(t, p.Len() <= 8)
}
