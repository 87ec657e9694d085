// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/go-region"
)

func TestSnapshot(t *testing.T) {
	var s Snapshot
	require.Equal(t, region.Stats{}, s.Stats())

	r := region.NewRegion(region.WithMinBufferSize(1024))
	_, err := r.Alloc(100, 1)
	require.NoError(t, err)
	s.Publish(r.Stats())

	_, err = r.Alloc(100, 1)
	require.NoError(t, err)
	require.Equal(t, 100, s.Stats().Len)
}

func TestRegionCollectorExportsStats(t *testing.T) {
	r := region.NewRegion(region.WithMinBufferSize(1024))
	_, err := r.Alloc(300, 1)
	require.NoError(t, err)
	r.Reset()
	_, err = r.Alloc(100, 1)
	require.NoError(t, err)

	var snap Snapshot
	snap.Publish(r.Stats())

	c := NewRegionCollector("app")
	c.Track("scratch", &snap)

	expected := `
# HELP app_region_cap_bytes Bytes of backing memory held by the region.
# TYPE app_region_cap_bytes gauge
app_region_cap_bytes{region="scratch"} 1024
# HELP app_region_len_bytes Bytes currently allocated from the region.
# TYPE app_region_len_bytes gauge
app_region_len_bytes{region="scratch"} 100
# HELP app_region_peak_bytes High-water mark of allocated bytes.
# TYPE app_region_peak_bytes gauge
app_region_peak_bytes{region="scratch"} 300
# HELP app_region_rewinds_total Rewinds, resets and releases of the region.
# TYPE app_region_rewinds_total counter
app_region_rewinds_total{region="scratch"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"app_region_cap_bytes", "app_region_len_bytes", "app_region_peak_bytes", "app_region_rewinds_total"))
}

func TestRegionCollectorTrackUntrack(t *testing.T) {
	c := NewRegionCollector("app")
	require.Equal(t, 0, testutil.CollectAndCount(c))

	c.Track("a", region.NewConcurrentArena(region.NewRegion()).(StatsSource))
	c.Track("b", &Snapshot{})
	require.Equal(t, 10, testutil.CollectAndCount(c))
	require.Equal(t, 2, testutil.CollectAndCount(c, "app_region_len_bytes"))

	c.Untrack("a")
	require.Equal(t, 5, testutil.CollectAndCount(c))
	c.Untrack("missing")
	require.Equal(t, 5, testutil.CollectAndCount(c))
}

func TestRegionCollectorRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewRegionCollector("app")
	require.NoError(t, reg.Register(c))
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader("")))

	c.Track("tmp", &Snapshot{})
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 5)
}
