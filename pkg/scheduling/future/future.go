package future

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jamesp/lambdas/pkg/scheduling/workerpool"
)

var (
	// ErrPanic is wrapped by the error of a future whose supplier or
	// callback panicked.
	ErrPanic = errors.New("future: panic in supplier")

	// ErrNoFutures fails AnyOf when it is given nothing to wait for.
	ErrNoFutures = errors.New("future: no futures given")
)

// Future is the eventual result of an asynchronous computation.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	value     T
	err       error
	callbacks []func()
}

// New returns an incomplete future.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed returns a future already completed with v.
func Completed[T any](v T) *Future[T] {
	f := New[T]()
	f.Complete(v)
	return f
}

// Failed returns a future already failed with err.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.CompleteExceptionally(err)
	return f
}

// SupplyAsync runs supplier in a new goroutine and completes the returned
// future with its result.
func SupplyAsync[T any](ctx context.Context, supplier func(context.Context) (T, error)) *Future[T] {
	f := New[T]()
	go func() {
		f.complete(call(ctx, supplier))
	}()
	return f
}

// SupplyAsyncOn runs supplier as a task on pool. If the task cannot be
// submitted, the future fails with the submission error.
func SupplyAsyncOn[T any](ctx context.Context, pool workerpool.Pool, supplier func(context.Context) (T, error)) *Future[T] {
	f := New[T]()
	task := workerpool.TaskFunc(func(taskCtx context.Context) error {
		v, err := call(taskCtx, supplier)
		f.complete(v, err)
		return err
	})
	if err := pool.SubmitWithContext(ctx, task); err != nil {
		f.CompleteExceptionally(fmt.Errorf("submit to pool: %w", err))
	}
	return f
}

// call runs supplier, turning a panic into an error.
func call[T any](ctx context.Context, supplier func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return supplier(ctx)
}

// Complete completes f with v. It reports false if f was already complete.
func (f *Future[T]) Complete(v T) bool {
	return f.complete(v, nil)
}

// CompleteExceptionally fails f with err. It reports false if f was
// already complete.
func (f *Future[T]) CompleteExceptionally(err error) bool {
	var zero T
	return f.complete(zero, err)
}

func (f *Future[T]) complete(v T, err error) bool {
	f.mu.Lock()
	if f.IsDone() {
		f.mu.Unlock()
		return false
	}
	f.value, f.err = v, err
	close(f.done)
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
	return true
}

// Done returns a channel that is closed when f completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsDone reports whether f has completed.
func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get waits for f to complete and returns its result, or ctx.Err() if ctx
// ends first.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Join waits for f to complete and returns its result.
func (f *Future[T]) Join() (T, error) {
	<-f.done
	return f.value, f.err
}

// WhenComplete calls fn with the result once f completes. fn runs in the
// completing goroutine, or immediately if f is already complete.
func (f *Future[T]) WhenComplete(fn func(T, error)) {
	f.onDone(func() { fn(f.value, f.err) })
}

func (f *Future[T]) onDone(cb func()) {
	f.mu.Lock()
	if f.IsDone() {
		f.mu.Unlock()
		cb()
		return
	}
	f.callbacks = append(f.callbacks, cb)
	f.mu.Unlock()
}
