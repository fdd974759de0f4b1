package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
)

// Submit adds a task to the pool for execution.
// The task will be executed with context.Background().
// Use SubmitWithContext to provide a custom context.
func (p *workerPool) Submit(task Task) error {
	return p.SubmitWithContext(context.Background(), task)
}

// SubmitWithTimeout gives up queuing task after timeout. The timeout does
// not apply to the task's execution.
func (p *workerPool) SubmitWithTimeout(task Task, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := p.enqueue(ctx, task)
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("cannot submit task within %v: %w", timeout, lerrors.ErrTimeout)
	}
	return err
}

// SubmitWithContext adds a task to the pool for execution with the given context.
// The context is passed to the task's Execute method, enabling timeout and
// cancellation propagation. If the pool has a TaskTimeout configured, the
// effective timeout will be the minimum of the context deadline and TaskTimeout.
func (p *workerPool) SubmitWithContext(ctx context.Context, task Task) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.enqueueWith(ctx, ctx, task)
}

func (p *workerPool) enqueue(queueCtx context.Context, task Task) error {
	return p.enqueueWith(queueCtx, context.Background(), task)
}

// enqueueWith waits on queueCtx for room in the queue and runs task with taskCtx.
func (p *workerPool) enqueueWith(queueCtx, taskCtx context.Context, task Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}

	p.mu.RLock()
	if p.isShutdown {
		p.mu.RUnlock()
		return fmt.Errorf("cannot submit task: %w", lerrors.ErrClosed)
	}
	p.submitWg.Add(1)
	p.mu.RUnlock()
	defer p.submitWg.Done()

	// A pre-canceled context never queues.
	if err := queueCtx.Err(); err != nil {
		return err
	}

	select {
	case p.taskQueue <- taskWithContext{task: task, ctx: taskCtx}:
		atomic.AddInt64(&p.totalSubmitted, 1)
		return nil
	case <-p.shutdownCh:
		return fmt.Errorf("cannot submit task: %w", lerrors.ErrClosed)
	case <-queueCtx.Done():
		return queueCtx.Err()
	}
}

// Results returns a channel of task results.
func (p *workerPool) Results() <-chan Result {
	return p.resultQueue
}

// Shutdown initiates a graceful shutdown of the pool. Calling it again
// returns the same channel.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		p.mu.Unlock()

		close(p.shutdownCh)

		go func() {
			// Once in-flight submissions settle, the queue only shrinks.
			p.submitWg.Wait()
			close(p.drainCh)

			p.workerWg.Wait()
			p.forceCancel()
			close(p.resultQueue)
			close(p.done)
		}()
	})

	return p.done
}

// ShutdownWithTimeout shuts down the pool and cancels task contexts if the
// shutdown takes longer than timeout.
func (p *workerPool) ShutdownWithTimeout(timeout time.Duration) <-chan struct{} {
	done := p.Shutdown()

	go func() {
		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case <-done:
		case <-timer.C:
			p.forceCancel()
		}
	}()

	return done
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *workerPool) QueueSize() int {
	return len(p.taskQueue)
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *workerPool) ActiveWorkers() int {
	return int(atomic.LoadInt32(&p.activeWorkers))
}

// TotalSubmitted returns the total number of tasks submitted to the pool.
func (p *workerPool) TotalSubmitted() int64 {
	return atomic.LoadInt64(&p.totalSubmitted)
}

// TotalCompleted returns the total number of tasks completed by the pool.
func (p *workerPool) TotalCompleted() int64 {
	return atomic.LoadInt64(&p.totalCompleted)
}

// run is the main loop for a worker.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	if w.pool.config.OnWorkerStart != nil {
		w.pool.config.OnWorkerStart(w.id)
	}
	if w.pool.config.OnWorkerStop != nil {
		defer w.pool.config.OnWorkerStop(w.id)
	}

	for {
		select {
		case twc := <-w.pool.taskQueue:
			w.executeTask(twc)
		case <-w.pool.drainCh:
			w.drain()
			return
		}
	}
}

// drain runs whatever is left in the queue after shutdown.
func (w *worker) drain() {
	for {
		select {
		case twc := <-w.pool.taskQueue:
			w.executeTask(twc)
		default:
			return
		}
	}
}

// sendResult delivers result unless results are discarded. After
// shutdown, results nobody is waiting for are dropped.
func (w *worker) sendResult(result Result) {
	if w.pool.config.DiscardResults {
		return
	}

	select {
	case w.pool.resultQueue <- result:
		return
	default:
	}

	select {
	case w.pool.resultQueue <- result:
	case <-w.pool.shutdownCh:
	}
}

// executeTask executes a single task with the provided context.
func (w *worker) executeTask(twc taskWithContext) {
	p := w.pool
	atomic.AddInt32(&p.activeWorkers, 1)

	submitted := twc.task
	if wrapped, ok := submitted.(interface{ unwrap() Task }); ok {
		submitted = wrapped.unwrap()
	}

	if p.config.OnTaskStart != nil {
		p.config.OnTaskStart(w.id, submitted)
	}

	start := time.Now()
	err := w.runTask(twc)

	result := Result{
		Task:     submitted,
		Error:    err,
		Duration: time.Since(start),
		WorkerID: w.id,
	}

	atomic.AddInt64(&p.totalCompleted, 1)
	atomic.AddInt32(&p.activeWorkers, -1)

	if p.config.OnTaskComplete != nil {
		p.config.OnTaskComplete(w.id, result)
	}

	w.sendResult(result)
}

// runTask runs the task, turning a panic into an error or handing it to
// the configured PanicHandler.
func (w *worker) runTask(twc taskWithContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if w.pool.config.PanicHandler != nil {
				w.pool.config.PanicHandler(twc.task, r)
				err = nil
				return
			}
			err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(twc.ctx)
	defer cancel()
	stop := context.AfterFunc(w.pool.forced, cancel)
	defer stop()

	// The effective timeout is the minimum of the context deadline and TaskTimeout.
	if w.pool.config.TaskTimeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, w.pool.config.TaskTimeout)
		defer cancelTimeout()
	}

	return twc.task.Execute(ctx)
}
