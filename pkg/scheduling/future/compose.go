package future

import (
	"context"
	"fmt"
	"sync"
)

// ThenApply returns a future completed with fn applied to f's value. If f
// fails, the returned future fails with the same error.
func ThenApply[T, R any](f *Future[T], fn func(T) R) *Future[R] {
	next := New[R]()
	f.onDone(func() {
		if f.err != nil {
			next.CompleteExceptionally(f.err)
			return
		}
		next.complete(apply(fn, f.value))
	})
	return next
}

// ThenCompose chains f into the future returned by fn.
func ThenCompose[T, R any](f *Future[T], fn func(T) *Future[R]) *Future[R] {
	next := New[R]()
	f.onDone(func() {
		if f.err != nil {
			next.CompleteExceptionally(f.err)
			return
		}
		inner, err := apply(fn, f.value)
		if err != nil {
			next.CompleteExceptionally(err)
			return
		}
		inner.WhenComplete(func(v R, err error) { next.complete(v, err) })
	})
	return next
}

// ThenCombine completes with fn applied to the values of a and b once both
// complete. The first error, in argument order, fails the result.
func ThenCombine[A, B, R any](a *Future[A], b *Future[B], fn func(A, B) R) *Future[R] {
	return ThenCompose(a, func(va A) *Future[R] {
		return ThenApply(b, func(vb B) R { return fn(va, vb) })
	})
}

// AllOf completes with every value, in argument order, once all futures
// complete. If any failed, it fails with the error of the first failed
// future in argument order.
func AllOf[T any](futures ...*Future[T]) *Future[[]T] {
	all := New[[]T]()
	if len(futures) == 0 {
		all.Complete([]T{})
		return all
	}

	var mu sync.Mutex
	remaining := len(futures)
	for _, f := range futures {
		f.onDone(func() {
			mu.Lock()
			remaining--
			last := remaining == 0
			mu.Unlock()

			if last {
				all.complete(JoinAll(futures))
			}
		})
	}
	return all
}

// JoinAll joins futures in order and returns their values. It stops at
// the first failed future.
func JoinAll[T any](futures []*Future[T]) ([]T, error) {
	values := make([]T, 0, len(futures))
	for i, f := range futures {
		v, err := f.Join()
		if err != nil {
			return nil, fmt.Errorf("future %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// GetAll is JoinAll bounded by ctx.
func GetAll[T any](ctx context.Context, futures []*Future[T]) ([]T, error) {
	values := make([]T, 0, len(futures))
	for i, f := range futures {
		v, err := f.Get(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("future %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// AnyOf completes with the result of whichever future completes first.
// With no futures it fails with ErrNoFutures.
func AnyOf[T any](futures ...*Future[T]) *Future[T] {
	if len(futures) == 0 {
		return Failed[T](ErrNoFutures)
	}

	first := New[T]()
	for _, f := range futures {
		f.WhenComplete(func(v T, err error) { first.complete(v, err) })
	}
	return first
}

// apply runs fn, turning a panic into an error.
func apply[T, R any](fn func(T) R, v T) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()
	return fn(v), nil
}
