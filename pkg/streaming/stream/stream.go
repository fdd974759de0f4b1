package stream

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrStreamClosed is returned when operating on a stream that was closed,
// already consumed by a terminal operation, or already linked to a
// downstream stage.
var ErrStreamClosed = errors.New("stream is closed")

// Stream represents a sequence of elements supporting sequential operations.
// Streams are lazy; computation on the source data is only performed when a terminal
// operation is initiated, and source elements are consumed only as needed.
//
// A Stream is single use: calling an intermediate operation links the
// receiver to the returned stream, and a terminal operation consumes it.
type Stream[T any] interface {
	// Intermediate operations (lazy, return new Stream)

	// Filter returns a stream consisting of elements that match the given predicate.
	Filter(predicate func(T) bool) Stream[T]

	// Map returns a stream consisting of the results of applying the given function to elements.
	// Use MapTo to change the element type.
	Map(mapper func(T) T) Stream[T]

	// FlatMap replaces each element with the contents of the stream produced
	// by mapper. Use FlatMapTo to change the element type.
	FlatMap(mapper func(T) Stream[T]) Stream[T]

	// Distinct returns a stream of distinct elements in encounter order.
	// The dynamic type of the elements must be comparable.
	Distinct() Stream[T]

	// Sorted returns a stream sorted by compare. The sort is stable.
	// The compare function should return negative if a < b, 0 if a == b, positive if a > b.
	Sorted(compare func(a, b T) int) Stream[T]

	// Skip returns a stream consisting of remaining elements after skipping n elements.
	Skip(n int64) Stream[T]

	// Limit returns a stream consisting of elements truncated to be no longer than maxSize.
	Limit(maxSize int64) Stream[T]

	// Peek returns a stream consisting of elements, additionally performing the provided
	// action on each element as elements are consumed.
	Peek(action func(T)) Stream[T]

	// TakeWhile returns the longest prefix of elements matching predicate.
	TakeWhile(predicate func(T) bool) Stream[T]

	// DropWhile drops the longest prefix of elements matching predicate.
	DropWhile(predicate func(T) bool) Stream[T]

	// Terminal operations (eager, consume the stream)

	// ForEach performs an action for each element of the stream.
	ForEach(ctx context.Context, action func(T)) error

	// Reduce folds the elements into identity with accumulator.
	Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error)

	// ReduceOptional folds the elements with accumulator, starting from the
	// first element. It reports false for an empty stream.
	ReduceOptional(ctx context.Context, accumulator func(T, T) T) (T, bool, error)

	// ToSlice returns a slice containing all elements.
	ToSlice(ctx context.Context) ([]T, error)

	// Count returns the count of elements.
	Count(ctx context.Context) (int64, error)

	// AnyMatch returns whether any elements match the given predicate.
	AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// AllMatch returns whether all elements match the given predicate.
	AllMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// NoneMatch returns whether no elements match the given predicate.
	NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// FindFirst returns the first element, if present.
	FindFirst(ctx context.Context) (T, bool, error)

	// FindAny returns any element, if present.
	FindAny(ctx context.Context) (T, bool, error)

	// Min returns the minimum element according to the provided comparator.
	Min(ctx context.Context, compare func(a, b T) int) (T, bool, error)

	// Max returns the maximum element according to the provided comparator.
	Max(ctx context.Context, compare func(a, b T) int) (T, bool, error)

	// Stream control

	// Close closes the stream and releases resources.
	Close() error

	// IsClosed returns true if the stream is closed.
	IsClosed() bool
}

// Source represents a data source for streams.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if no more elements.
	Next(ctx context.Context) (T, bool, error)
	// Close closes the source and releases resources.
	Close() error
}

const (
	stateOpen int32 = iota
	stateLinked
	stateRunning
)

// stream is the default implementation of Stream.
type stream[T any] struct {
	source   Source[T]
	pipeline []operation[T]
	state    int32 // atomic
	closed   int32 // atomic

	mu         sync.Mutex
	cancelExec context.CancelFunc // stops the running pipeline when the stream is closed
}

// operation represents a stream stage. apply pulls from input only after
// output has been asked for an element; the caller closes output when apply
// returns.
type operation[T any] interface {
	apply(ctx context.Context, input, output *pipe[T]) error
}

// execution is one run of a pipeline.
type execution[T any] struct {
	out    *pipe[T]
	ctx    context.Context // canceled when a stage fails or the run finishes
	group  *errgroup.Group
	cancel context.CancelFunc
}

// errStop ends a terminal operation early without reporting an error.
var errStop = errors.New("stream: stop")

// New creates a new Stream from a Source.
func New[T any](source Source[T]) Stream[T] {
	return &stream[T]{source: source}
}

// then links s to a new stream with op appended to the pipeline.
func (s *stream[T]) then(op operation[T]) Stream[T] {
	if s.IsClosed() || !atomic.CompareAndSwapInt32(&s.state, stateOpen, stateLinked) {
		return New[T](&errSource[T]{err: ErrStreamClosed})
	}

	pipeline := make([]operation[T], len(s.pipeline)+1)
	copy(pipeline, s.pipeline)
	pipeline[len(s.pipeline)] = op

	return &stream[T]{
		source:   s.source,
		pipeline: pipeline,
	}
}

func (s *stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return s.then(&filterOperation[T]{predicate: predicate})
}

func (s *stream[T]) Map(mapper func(T) T) Stream[T] {
	return s.then(&mapOperation[T]{mapper: mapper})
}

func (s *stream[T]) FlatMap(mapper func(T) Stream[T]) Stream[T] {
	return s.then(&flatMapOperation[T]{mapper: mapper})
}

func (s *stream[T]) Distinct() Stream[T] {
	return s.then(&distinctOperation[T]{})
}

func (s *stream[T]) Sorted(compare func(a, b T) int) Stream[T] {
	return s.then(&sortOperation[T]{compare: compare})
}

func (s *stream[T]) Skip(n int64) Stream[T] {
	return s.then(&skipOperation[T]{count: n})
}

func (s *stream[T]) Limit(maxSize int64) Stream[T] {
	return s.then(&limitOperation[T]{maxSize: maxSize})
}

func (s *stream[T]) Peek(action func(T)) Stream[T] {
	return s.then(&peekOperation[T]{action: action})
}

func (s *stream[T]) TakeWhile(predicate func(T) bool) Stream[T] {
	return s.then(&takeWhileOperation[T]{predicate: predicate})
}

func (s *stream[T]) DropWhile(predicate func(T) bool) Stream[T] {
	return s.then(&dropWhileOperation[T]{predicate: predicate})
}

func (s *stream[T]) ForEach(ctx context.Context, action func(T)) error {
	return s.each(ctx, func(v T) bool {
		action(v)
		return true
	})
}

func (s *stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	var result []T
	err := s.each(ctx, func(v T) bool {
		result = append(result, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *stream[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.each(ctx, func(T) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *stream[T]) Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error) {
	result := identity
	err := s.each(ctx, func(v T) bool {
		result = accumulator(result, v)
		return true
	})
	if err != nil {
		return identity, err
	}
	return result, nil
}

func (s *stream[T]) ReduceOptional(ctx context.Context, accumulator func(T, T) T) (T, bool, error) {
	var result T
	found := false
	err := s.each(ctx, func(v T) bool {
		if !found {
			result, found = v, true
			return true
		}
		result = accumulator(result, v)
		return true
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return result, found, nil
}

func (s *stream[T]) FindFirst(ctx context.Context) (T, bool, error) {
	var first T
	found := false
	err := s.each(ctx, func(v T) bool {
		first, found = v, true
		return false
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return first, found, nil
}

// FindAny is FindFirst: a sequential stream has only one candidate.
func (s *stream[T]) FindAny(ctx context.Context) (T, bool, error) {
	return s.FindFirst(ctx)
}

func (s *stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	matched := false
	err := s.each(ctx, func(v T) bool {
		matched = predicate(v)
		return !matched
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}

func (s *stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	all := true
	err := s.each(ctx, func(v T) bool {
		all = predicate(v)
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

func (s *stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	result, err := s.AnyMatch(ctx, predicate)
	if err != nil {
		return false, err
	}
	return !result, nil
}

func (s *stream[T]) Min(ctx context.Context, compare func(a, b T) int) (T, bool, error) {
	return s.ReduceOptional(ctx, func(a, b T) T {
		if compare(b, a) < 0 {
			return b
		}
		return a
	})
}

func (s *stream[T]) Max(ctx context.Context, compare func(a, b T) int) (T, bool, error) {
	return s.ReduceOptional(ctx, func(a, b T) T {
		if compare(b, a) > 0 {
			return b
		}
		return a
	})
}

func (s *stream[T]) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}

	// A linked stream handed its source to the downstream stage.
	if atomic.LoadInt32(&s.state) == stateLinked {
		return nil
	}

	s.mu.Lock()
	if s.cancelExec != nil {
		s.cancelExec()
		s.cancelExec = nil
	}
	s.mu.Unlock()

	if s.source != nil {
		return s.source.Close()
	}
	return nil
}

func (s *stream[T]) IsClosed() bool {
	return atomic.LoadInt32(&s.closed) != 0
}

// each runs the pipeline and feeds every element to yield until yield
// returns false. The stream is closed afterwards.
func (s *stream[T]) each(ctx context.Context, yield func(T) bool) error {
	err := s.drain(ctx, func(v T) error {
		if !yield(v) {
			return errStop
		}
		return nil
	})
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}

// drain is each with an error-returning callback; a callback error stops
// the pipeline and is returned as is.
func (s *stream[T]) drain(ctx context.Context, yield func(T) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() { _ = s.Close() }()

	exec, err := s.execute(ctx)
	if err != nil {
		return err
	}

	var yieldErr error
	for {
		v, ok, err := exec.out.recv(exec.ctx)
		if err != nil || !ok {
			break
		}
		if yieldErr = yield(v); yieldErr != nil {
			break
		}
	}

	err = exec.finish(ctx)
	if yieldErr != nil {
		return yieldErr
	}
	return err
}

// execute starts the source goroutine and one goroutine per operation.
// Every goroutine waits for demand from its consumer, so nothing is pulled
// from the source until the terminal operation asks for it.
func (s *stream[T]) execute(ctx context.Context) (*execution[T], error) {
	if s.IsClosed() || !atomic.CompareAndSwapInt32(&s.state, stateOpen, stateRunning) {
		return nil, ErrStreamClosed
	}

	execCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancelExec = cancel
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(execCtx)

	sourceOut := newPipe[T]()
	g.Go(func() error {
		defer sourceOut.close()

		for {
			if err := sourceOut.ready(gctx); err != nil {
				return err
			}
			value, hasMore, err := s.source.Next(gctx)
			if err != nil {
				return err
			}
			if !hasMore {
				return nil
			}
			if err := sourceOut.send(gctx, value); err != nil {
				return err
			}
		}
	})

	current := sourceOut
	for _, op := range s.pipeline {
		op := op
		input := current
		output := newPipe[T]()

		g.Go(func() error {
			defer output.close()
			return op.apply(gctx, input, output)
		})

		current = output
	}

	return &execution[T]{out: current, ctx: gctx, group: g, cancel: cancel}, nil
}

// finish stops every stage and reports the first real failure. Cancellation
// caused by the consumer stopping early is not a failure; cancellation of
// the caller's context is.
func (e *execution[T]) finish(ctx context.Context) error {
	e.cancel()
	err := e.group.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// drain consumes any Stream implementation with yield.
func drain[T any](ctx context.Context, s Stream[T], yield func(T) error) error {
	if impl, ok := s.(*stream[T]); ok {
		return impl.drain(ctx, yield)
	}

	items, err := s.ToSlice(ctx)
	if err != nil {
		return err
	}
	for _, v := range items {
		if err := yield(v); err != nil {
			return err
		}
	}
	return nil
}
