package workerpool

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jamesp/lambdas/pkg/metrics"
)

// MetricsPool wraps a worker Pool with Prometheus metrics collection.
type MetricsPool struct {
	pool     Pool
	name     string
	registry atomic.Pointer[metrics.Registry] // nil while disabled
}

// NewWithMetrics creates a new worker pool with metrics recorded in a
// private Prometheus registry.
func NewWithMetrics(workerCount int, name string) *MetricsPool {
	return NewWithConfigAndMetrics(Config{
		WorkerCount: workerCount,
	}, name, metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
}

// NewWithConfigAndMetrics creates a new worker pool with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) *MetricsPool {
	return Instrument(NewWithConfig(config), name, metrics.NewFromConfig(metricsConfig))
}

// Instrument wraps pool so that its tasks and state are recorded in
// registry under name. A nil registry leaves metrics disabled.
func Instrument(pool Pool, name string, registry *metrics.Registry) *MetricsPool {
	mp := &MetricsPool{pool: pool, name: name}
	if registry != nil {
		mp.registry.Store(registry)
		mp.updateMetrics()
	}
	return mp
}

// updateMetrics updates the current state metrics.
func (mp *MetricsPool) updateMetrics() {
	r := mp.registry.Load()
	if r == nil {
		return
	}

	r.WorkerPoolSize.WithLabelValues(mp.name).Set(float64(mp.pool.Size()))
	r.WorkerPoolActive.WithLabelValues(mp.name).Set(float64(mp.pool.ActiveWorkers()))
	r.WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(mp.pool.QueueSize()))
}

// Submit adds a task to the pool for execution.
func (mp *MetricsPool) Submit(task Task) error {
	return mp.SubmitWithContext(context.Background(), task)
}

// SubmitWithTimeout submits a task with a timeout for queuing.
func (mp *MetricsPool) SubmitWithTimeout(task Task, timeout time.Duration) error {
	err := mp.pool.SubmitWithTimeout(mp.wrap(task), timeout)
	mp.updateMetrics()
	return err
}

// SubmitWithContext submits a task with a context for cancellation.
func (mp *MetricsPool) SubmitWithContext(ctx context.Context, task Task) error {
	err := mp.pool.SubmitWithContext(ctx, mp.wrap(task))
	mp.updateMetrics()
	return err
}

func (mp *MetricsPool) wrap(task Task) Task {
	if task == nil {
		return nil
	}
	return &metricsTask{
		original:   task,
		pool:       mp,
		submitTime: time.Now(),
	}
}

// metricsTask wraps a Task to collect execution metrics.
type metricsTask struct {
	original   Task
	pool       *MetricsPool
	submitTime time.Time
}

func (mt *metricsTask) unwrap() Task {
	return mt.original
}

// Execute runs the original task and records metrics.
func (mt *metricsTask) Execute(ctx context.Context) error {
	start := time.Now()
	name := mt.pool.name

	if r := mt.pool.registry.Load(); r != nil {
		r.TaskQueueDuration.WithLabelValues(name).Observe(start.Sub(mt.submitTime).Seconds())
		mt.pool.updateMetrics()
	}

	err := mt.original.Execute(ctx)

	if r := mt.pool.registry.Load(); r != nil {
		r.TaskExecutionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		r.TasksExecuted.WithLabelValues(name).Inc()

		if err != nil {
			r.TasksFailed.WithLabelValues(name).Inc()
		} else {
			r.TasksCompleted.WithLabelValues(name).Inc()
		}
	}

	return err
}

// Results returns a channel of task results. Result.Task is the task that
// was submitted, not the internal wrapper.
func (mp *MetricsPool) Results() <-chan Result {
	return mp.pool.Results()
}

// Shutdown initiates graceful shutdown of the pool.
func (mp *MetricsPool) Shutdown() <-chan struct{} {
	return mp.pool.Shutdown()
}

// ShutdownWithTimeout shuts down the pool with a timeout.
func (mp *MetricsPool) ShutdownWithTimeout(timeout time.Duration) <-chan struct{} {
	return mp.pool.ShutdownWithTimeout(timeout)
}

// Size returns the current number of workers.
func (mp *MetricsPool) Size() int {
	return mp.pool.Size()
}

// QueueSize returns the current number of queued tasks.
func (mp *MetricsPool) QueueSize() int {
	queueSize := mp.pool.QueueSize()
	if r := mp.registry.Load(); r != nil {
		r.WorkerPoolQueued.WithLabelValues(mp.name).Set(float64(queueSize))
	}
	return queueSize
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (mp *MetricsPool) ActiveWorkers() int {
	activeWorkers := mp.pool.ActiveWorkers()
	if r := mp.registry.Load(); r != nil {
		r.WorkerPoolActive.WithLabelValues(mp.name).Set(float64(activeWorkers))
	}
	return activeWorkers
}

// TotalSubmitted returns the total number of tasks submitted.
func (mp *MetricsPool) TotalSubmitted() int64 {
	return mp.pool.TotalSubmitted()
}

// TotalCompleted returns the total number of tasks completed.
func (mp *MetricsPool) TotalCompleted() int64 {
	return mp.pool.TotalCompleted()
}

// EnableMetrics enables metrics collection.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	mp.registry.Store(metrics.NewFromConfig(config))
	mp.updateMetrics()
	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.registry.Store(nil)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.registry.Load() != nil
}

var (
	_ Pool                   = (*MetricsPool)(nil)
	_ metrics.Instrumentable = (*MetricsPool)(nil)
)
