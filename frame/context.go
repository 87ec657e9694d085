// SPDX-License-Identifier: Apache-2.0

// Package frame drives a host loop over two regions: a persistent region for state
// that lives across iterations, and a temporary region that is rewound to empty at
// the end of every iteration.
//
//	ctx, err := frame.New(cfg, frame.WithLogger(logger))
//	defer ctx.Close()
//
//	for running {
//		err := ctx.Run(func(f *frame.Frame) error {
//			label, err := f.Sprintf("frame %d", f.Index())
//			...
//		})
//	}
//
// A Context is not safe for concurrent use. Its metrics may be scraped from any
// goroutine.
package frame

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/wundergraph/go-region"
	"github.com/wundergraph/go-region/str"
	"github.com/wundergraph/go-region/telemetry"
)

var (
	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("frame: context is closed")
	// ErrNested is returned when Run or Close is called from inside a running frame.
	ErrNested = errors.New("frame: called from inside a running frame")
)

// Context owns the regions of a host loop.
type Context struct {
	persistent *region.Region
	temporary  *region.Region

	log        zerolog.Logger
	registerer prometheus.Registerer
	registered []prometheus.Collector
	frames     prometheus.Counter
	failures   prometheus.Counter
	collector  *telemetry.RegionCollector

	persistentStats telemetry.Snapshot
	temporaryStats  telemetry.Snapshot

	index   uint64
	running bool
	closed  bool
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Context) {
		c.log = l
	}
}

// WithRegisterer registers the frame counters and region statistics with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *Context) {
		c.registerer = r
	}
}

// New creates a Context sized by cfg.
func New(cfg *Config, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Context{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	c.persistent = region.NewRegion(region.WithMinBufferSize(cfg.PersistentMinBufferKB * 1024))
	tmpSize := cfg.TemporaryCapacityKB * 1024
	if cfg.TemporaryGrowable {
		c.temporary = region.NewRegion(region.WithMinBufferSize(tmpSize))
	} else {
		c.temporary = region.NewRegion(region.WithFixedCapacity(tmpSize))
	}

	ns := cfg.Metrics.Namespace
	c.frames = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "frames_total",
		Help:      "Frames run to completion or failure.",
	})
	c.failures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "frame_errors_total",
		Help:      "Frames that returned an error or panicked.",
	})
	c.collector = telemetry.NewRegionCollector(ns)
	c.collector.Track("persistent", &c.persistentStats)
	c.collector.Track("temporary", &c.temporaryStats)
	c.publish()

	if c.registerer != nil {
		for _, col := range []prometheus.Collector{c.frames, c.failures, c.collector} {
			if err := c.registerer.Register(col); err != nil {
				c.unregister()
				return nil, fmt.Errorf("failed to register frame metrics: %w", err)
			}
			c.registered = append(c.registered, col)
		}
	}

	c.log.Debug().
		Int("persistent_min_buffer_kb", cfg.PersistentMinBufferKB).
		Int("temporary_capacity_kb", cfg.TemporaryCapacityKB).
		Bool("temporary_growable", cfg.TemporaryGrowable).
		Msg("Frame context created")
	return c, nil
}

// Run executes one iteration of the host loop. Everything fn allocates from the
// temporary region is rewound when Run returns, whether fn returns normally, returns
// an error or panics. Panics are re-raised after the rewind.
func (c *Context) Run(fn func(*Frame) error) (err error) {
	if c.closed {
		return ErrClosed
	}
	if c.running {
		return ErrNested
	}

	c.running = true
	c.index++
	f := &Frame{ctx: c, index: c.index}
	scope := region.NewScope(c.temporary)

	defer func() {
		used := c.temporary.Len()
		f.done = true
		c.running = false
		if cerr := scope.Close(); cerr != nil && err == nil {
			err = cerr
		}
		c.frames.Inc()
		c.publish()

		if r := recover(); r != nil {
			c.failures.Inc()
			c.log.Error().Uint64("frame", f.index).Interface("panic", r).Msg("Frame panicked")
			panic(r)
		}
		if err != nil {
			c.failures.Inc()
			c.log.Debug().Err(err).Uint64("frame", f.index).Msg("Frame failed")
			return
		}
		c.log.Debug().
			Uint64("frame", f.index).
			Int("temporary_bytes", used).
			Int("persistent_bytes", c.persistent.Len()).
			Msg("Frame done")
	}()

	return fn(f)
}

// Frames returns the number of frames started so far.
func (c *Context) Frames() uint64 {
	return c.index
}

// Stats returns the statistics of both regions as of the end of the last frame.
func (c *Context) Stats() (persistent, temporary region.Stats) {
	return c.persistentStats.Stats(), c.temporaryStats.Stats()
}

// Close releases both regions and unregisters the metrics. Calling Close more than
// once is a no-op.
func (c *Context) Close() error {
	if c.running {
		return ErrNested
	}
	if c.closed {
		return nil
	}
	c.closed = true
	c.persistent.Release()
	c.temporary.Release()
	c.publish()
	c.unregister()
	c.log.Debug().Uint64("frames", c.index).Msg("Frame context closed")
	return nil
}

func (c *Context) publish() {
	c.persistentStats.Publish(c.persistent.Stats())
	c.temporaryStats.Publish(c.temporary.Stats())
}

// unregister removes the collectors this context registered, and no others.
func (c *Context) unregister() {
	for _, col := range c.registered {
		c.registerer.Unregister(col)
	}
	c.registered = nil
}

// Frame is the handle passed to the function run by Context.Run. It must not be
// retained after that function returns.
type Frame struct {
	ctx   *Context
	index uint64
	done  bool
}

func (f *Frame) context() *Context {
	if f.done {
		panic("frame: use of a finished frame")
	}
	return f.ctx
}

// Index returns the 1-based sequence number of the frame.
func (f *Frame) Index() uint64 {
	return f.index
}

// Temporary returns the region that is rewound when the frame ends.
func (f *Frame) Temporary() *region.Region {
	return f.context().temporary
}

// Persistent returns the region that lives as long as the Context.
func (f *Frame) Persistent() *region.Region {
	return f.context().persistent
}

// Sprintf formats into temporary memory.
func (f *Frame) Sprintf(format string, args ...any) (str.String, error) {
	buf := region.NewBuffer(f.Temporary())
	if _, err := fmt.Fprintf(buf, format, args...); err != nil {
		return nil, err
	}
	return str.Wrap(buf.Bytes()), nil
}

// CString copies s into temporary memory followed by a NUL byte.
func (f *Frame) CString(s str.String) ([]byte, error) {
	out, err := region.AllocateSlice[byte](f.Temporary(), s.Len()+1, s.Len()+1)
	if err != nil {
		return nil, err
	}
	copy(out, s)
	return out, nil
}

// Persist copies s into the persistent region so that it outlives the frame.
func (f *Frame) Persist(s str.String) (str.String, error) {
	return str.Allocate(f.Persistent(), s)
}
