// Package worker provides a generic worker pool for concurrent record
// processing. Submission blocks when the queue is full, so a fast reader
// feeding slow workers applies backpressure instead of dropping work.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/obokit/gafcheck/metric"
)

// Pool processes work items of type T on a fixed set of goroutines.
type Pool[T any] struct {
	workers   int
	queueSize int
	processor func(context.Context, T) error

	workChan chan T
	metrics  *poolMetrics
	wg       *sync.WaitGroup

	lifecycleMu sync.Mutex
	started     bool
	stopped     bool

	submitted int64
	processed int64
	failed    int64
}

type poolMetrics struct {
	queueDepth prometheus.Gauge
	processed  prometheus.Counter
	failed     prometheus.Counter
	duration   prometheus.Histogram
}

// Option configures a Pool.
type Option[T any] func(*Pool[T])

// WithMetrics registers queue and throughput metrics for the pool under
// the given component name.
func WithMetrics[T any](registry *metric.Registry, component string) Option[T] {
	return func(p *Pool[T]) {
		m := &poolMetrics{
			queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: component + "_queue_depth",
				Help: "Current worker pool queue depth",
			}),
			processed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: component + "_processed_total",
				Help: "Work items processed",
			}),
			failed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: component + "_failed_total",
				Help: "Work items whose processor returned an error",
			}),
			duration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    component + "_duration_seconds",
				Help:    "Time spent processing one work item",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			}),
		}

		// A name collision means two pools share a component name; the
		// second pool runs without metrics.
		if registry.Register(component, "queue_depth", m.queueDepth) != nil ||
			registry.Register(component, "processed_total", m.processed) != nil ||
			registry.Register(component, "failed_total", m.failed) != nil ||
			registry.Register(component, "duration_seconds", m.duration) != nil {
			return
		}
		p.metrics = m
	}
}

// NewPool creates a pool of the given size. Workers and queue size fall
// back to sensible defaults when non-positive.
func NewPool[T any](workers, queueSize int, processor func(context.Context, T) error, opts ...Option[T]) *Pool[T] {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	if processor == nil {
		panic(ErrNilProcessor)
	}

	pool := &Pool[T]{
		workers:   workers,
		queueSize: queueSize,
		processor: processor,
		workChan:  make(chan T, queueSize),
	}
	for _, opt := range opts {
		opt(pool)
	}
	return pool
}

// Start launches the workers. The context bounds the life of the pool;
// cancelling it stops the workers even with work queued.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.started {
		return nil
	}

	p.wg = &sync.WaitGroup{}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
	p.started = true
	return nil
}

// Submit enqueues one work item, blocking while the queue is full. It
// returns the context error when ctx is cancelled first.
func (p *Pool[T]) Submit(ctx context.Context, work T) error {
	p.lifecycleMu.Lock()
	if !p.started {
		p.lifecycleMu.Unlock()
		return ErrPoolNotStarted
	}
	if p.stopped {
		p.lifecycleMu.Unlock()
		return ErrPoolStopped
	}
	p.lifecycleMu.Unlock()

	select {
	case p.workChan <- work:
		atomic.AddInt64(&p.submitted, 1)
		if p.metrics != nil {
			p.metrics.queueDepth.Set(float64(len(p.workChan)))
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the queue and waits for the workers to drain what remains,
// up to the timeout.
func (p *Pool[T]) Stop(timeout time.Duration) error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if !p.started || p.stopped {
		return nil
	}
	p.stopped = true
	close(p.workChan)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return ErrStopTimeout
	}
}

// Stats is a point-in-time snapshot of pool counters.
type Stats struct {
	Workers    int   `json:"workers"`
	QueueDepth int   `json:"queue_depth"`
	Submitted  int64 `json:"submitted"`
	Processed  int64 `json:"processed"`
	Failed     int64 `json:"failed"`
}

// Stats returns current pool counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Workers:    p.workers,
		QueueDepth: len(p.workChan),
		Submitted:  atomic.LoadInt64(&p.submitted),
		Processed:  atomic.LoadInt64(&p.processed),
		Failed:     atomic.LoadInt64(&p.failed),
	}
}

func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case work, ok := <-p.workChan:
			if !ok {
				return
			}

			start := time.Now()
			err := p.processor(ctx, work)
			elapsed := time.Since(start)

			atomic.AddInt64(&p.processed, 1)
			if err != nil {
				atomic.AddInt64(&p.failed, 1)
			}

			if p.metrics != nil {
				p.metrics.processed.Inc()
				if err != nil {
					p.metrics.failed.Inc()
				}
				p.metrics.duration.Observe(elapsed.Seconds())
				p.metrics.queueDepth.Set(float64(len(p.workChan)))
			}
		}
	}
}
