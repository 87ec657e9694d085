// SPDX-License-Identifier: Apache-2.0

// Package telemetry exports region statistics to Prometheus.
package telemetry

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wundergraph/go-region"
)

// StatsSource reports region statistics. Collect may call Stats from any goroutine,
// so implementations must be safe for concurrent use. A bare *region.Region is not;
// wrap it with region.NewConcurrentArena or publish through a Snapshot.
type StatsSource interface {
	Stats() region.Stats
}

// Snapshot holds the most recently published statistics of a region.
type Snapshot struct {
	v atomic.Pointer[region.Stats]
}

// Publish replaces the held statistics.
func (s *Snapshot) Publish(st region.Stats) {
	s.v.Store(&st)
}

// Stats returns the last published statistics, or zero values before the first Publish.
func (s *Snapshot) Stats() region.Stats {
	if st := s.v.Load(); st != nil {
		return *st
	}
	return region.Stats{}
}

// RegionCollector is a prometheus.Collector over a set of named regions.
type RegionCollector struct {
	mu      sync.Mutex
	sources map[string]StatsSource

	lenDesc     *prometheus.Desc
	capDesc     *prometheus.Desc
	peakDesc    *prometheus.Desc
	buffersDesc *prometheus.Desc
	rewindsDesc *prometheus.Desc
}

// NewRegionCollector creates a collector whose metrics are prefixed with namespace.
func NewRegionCollector(namespace string) *RegionCollector {
	labels := []string{"region"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "region", name), help, labels, nil)
	}
	return &RegionCollector{
		sources:     make(map[string]StatsSource),
		lenDesc:     desc("len_bytes", "Bytes currently allocated from the region."),
		capDesc:     desc("cap_bytes", "Bytes of backing memory held by the region."),
		peakDesc:    desc("peak_bytes", "High-water mark of allocated bytes."),
		buffersDesc: desc("buffers", "Number of backing buffers in the region."),
		rewindsDesc: desc("rewinds_total", "Rewinds, resets and releases of the region."),
	}
}

// Track adds or replaces the source reported under name.
func (c *RegionCollector) Track(name string, src StatsSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = src
}

// Untrack stops reporting name.
func (c *RegionCollector) Untrack(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

// Describe implements prometheus.Collector.
func (c *RegionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.lenDesc
	ch <- c.capDesc
	ch <- c.peakDesc
	ch <- c.buffersDesc
	ch <- c.rewindsDesc
}

// Collect implements prometheus.Collector.
func (c *RegionCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, src := range c.sources {
		st := src.Stats()
		ch <- prometheus.MustNewConstMetric(c.lenDesc, prometheus.GaugeValue, float64(st.Len), name)
		ch <- prometheus.MustNewConstMetric(c.capDesc, prometheus.GaugeValue, float64(st.Cap), name)
		ch <- prometheus.MustNewConstMetric(c.peakDesc, prometheus.GaugeValue, float64(st.Peak), name)
		ch <- prometheus.MustNewConstMetric(c.buffersDesc, prometheus.GaugeValue, float64(st.Buffers), name)
		ch <- prometheus.MustNewConstMetric(c.rewindsDesc, prometheus.CounterValue, float64(st.Rewinds), name)
	}
}
