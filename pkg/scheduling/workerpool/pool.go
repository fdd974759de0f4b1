package workerpool

import (
	"context"
	"sync"
	"time"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
	"github.com/jamesp/lambdas/pkg/common/validation"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// It should respect context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result represents the result of a task execution.
type Result struct {
	// Task is the original task that was executed
	Task Task

	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Pool represents a worker pool that can execute tasks concurrently.
type Pool interface {
	// Submit adds a task to the pool for execution.
	// Returns an error if the pool is shut down or if the task cannot be queued.
	Submit(task Task) error

	// SubmitWithTimeout submits a task with a timeout for queuing.
	// If the task cannot be queued within the timeout, it returns an error.
	SubmitWithTimeout(task Task, timeout time.Duration) error

	// SubmitWithContext submits a task with a context for cancellation.
	// The context bounds the queuing and is passed to the task's Execute.
	SubmitWithContext(ctx context.Context, task Task) error

	// Results returns a channel of task results.
	// The channel is closed when the pool is shut down and all tasks are complete.
	// Pools created with DiscardResults never send on it.
	Results() <-chan Result

	// Shutdown initiates a graceful shutdown of the pool.
	// No new tasks will be accepted, but queued tasks will be completed.
	// Returns a channel that closes when shutdown is complete.
	Shutdown() <-chan struct{}

	// ShutdownWithTimeout shuts down the pool with a timeout.
	// If shutdown doesn't complete within the timeout, the contexts of
	// running and remaining tasks are canceled.
	ShutdownWithTimeout(timeout time.Duration) <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// QueueSize returns the current number of queued tasks waiting for execution.
	QueueSize() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int

	// TotalSubmitted returns the total number of tasks submitted to the pool.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of tasks completed by the pool.
	TotalCompleted() int64
}

// FixedQueueSize is the queue capacity of pools created with NewFixed.
const FixedQueueSize = 1024

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// QueueSize is the maximum number of tasks that can be queued.
	// If 0 or -1, submission hands the task directly to an idle worker
	// and blocks until one is free.
	QueueSize int

	// TaskTimeout is the default timeout for individual task execution.
	// Zero means no timeout.
	TaskTimeout time.Duration

	// BufferedResults determines if results should be buffered.
	// Buffer size equals worker count.
	BufferedResults bool

	// DiscardResults drops results instead of delivering them on Results.
	// Use it when tasks report their outcome themselves, as futures do.
	DiscardResults bool

	// PanicHandler is called when a task panics. If nil, the panic is
	// reported as the result error.
	PanicHandler func(task Task, recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func(workerID int, task Task)

	// OnTaskComplete is called after a task completes (success or failure).
	OnTaskComplete func(workerID int, result Result)
}

// Validate checks config and returns a ValidationError for the first
// invalid field.
func (c Config) Validate() error {
	if err := validation.ValidatePositive("workerpool", "WorkerCount", c.WorkerCount); err != nil {
		return err
	}
	if c.QueueSize < -1 {
		return lerrors.NewValidationError("workerpool", "QueueSize", c.QueueSize, "must be >= -1").
			WithHint("use a positive size for a bounded queue, or 0 for direct hand-off")
	}
	return validation.ValidateNonNegativeDuration("workerpool", "TaskTimeout", c.TaskTimeout)
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	// Core pool state
	taskQueue    chan taskWithContext
	resultQueue  chan Result
	shutdownCh   chan struct{} // closed when Shutdown starts
	drainCh      chan struct{} // closed once no submission is in flight
	done         chan struct{}
	shutdownOnce sync.Once

	// forced is canceled when ShutdownWithTimeout gives up waiting.
	forced      context.Context
	forceCancel context.CancelFunc

	// State tracking
	mu             sync.RWMutex
	isShutdown     bool
	activeWorkers  int32 // atomic
	totalSubmitted int64 // atomic
	totalCompleted int64 // atomic

	// Worker management
	workerWg sync.WaitGroup
	submitWg sync.WaitGroup
}

// taskWithContext carries the submitter's context to the worker.
type taskWithContext struct {
	task Task
	ctx  context.Context
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *workerPool
}

// New creates a new worker pool with the specified number of workers and queue size.
func New(workerCount, queueSize int) Pool {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewFixed creates a pool of workerCount workers whose results are
// discarded, with a FixedQueueSize queue. Callers observe task outcomes
// through the tasks themselves.
func NewFixed(workerCount int) Pool {
	return NewWithConfig(Config{
		WorkerCount:    workerCount,
		QueueSize:      FixedQueueSize,
		DiscardResults: true,
	})
}

// NewWithConfig creates a new worker pool with the specified configuration.
// It panics if config is invalid; use NewSafe to get an error instead.
func NewWithConfig(config Config) Pool {
	pool, err := NewSafe(config)
	if err != nil {
		panic(err)
	}
	return pool
}

// NewSafe creates a new worker pool, returning a ValidationError for an
// invalid config.
func NewSafe(config Config) (Pool, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var taskQueue chan taskWithContext
	if config.QueueSize > 0 {
		taskQueue = make(chan taskWithContext, config.QueueSize)
	} else {
		taskQueue = make(chan taskWithContext)
	}

	var resultQueue chan Result
	if config.BufferedResults {
		resultQueue = make(chan Result, config.WorkerCount)
	} else {
		resultQueue = make(chan Result)
	}

	forced, forceCancel := context.WithCancel(context.Background())

	pool := &workerPool{
		config:      config,
		taskQueue:   taskQueue,
		resultQueue: resultQueue,
		shutdownCh:  make(chan struct{}),
		drainCh:     make(chan struct{}),
		done:        make(chan struct{}),
		forced:      forced,
		forceCancel: forceCancel,
	}

	for i := 0; i < config.WorkerCount; i++ {
		w := &worker{id: i, pool: pool}
		pool.workerWg.Add(1)
		go w.run()
	}

	return pool, nil
}
