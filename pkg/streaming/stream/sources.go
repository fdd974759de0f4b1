package stream

import (
	"context"
	"errors"
	"sync"
)

// Integer is the set of integer types accepted by the range sources.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// FromSlice creates a Stream from a slice.
func FromSlice[T any](slice []T) Stream[T] {
	return New[T](&sliceSource[T]{slice: slice})
}

// Of creates a Stream of the given values.
func Of[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// FromChannel creates a Stream from a channel. The stream ends when the
// channel is closed.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return New[T](&channelSource[T]{ch: ch})
}

// Generate creates an infinite Stream from a generator function.
// The generator is called from a single goroutine, so it may keep state.
func Generate[T any](generator func() T) Stream[T] {
	return New[T](&generatorSource[T]{generator: generator})
}

// Iterate creates an infinite Stream of seed, next(seed), next(next(seed)), ...
func Iterate[T any](seed T, next func(T) T) Stream[T] {
	return IterateWhile(seed, func(T) bool { return true }, next)
}

// IterateWhile is Iterate that stops at the first value failing hasNext.
func IterateWhile[T any](seed T, hasNext func(T) bool, next func(T) T) Stream[T] {
	return New[T](&iterateSource[T]{current: seed, hasNext: hasNext, next: next})
}

// Range creates a Stream of from, from+1, ..., to-1.
func Range[N Integer](from, to N) Stream[N] {
	if from >= to {
		return Empty[N]()
	}
	return RangeClosed(from, to-1)
}

// RangeClosed creates a Stream of from, from+1, ..., to.
func RangeClosed[N Integer](from, to N) Stream[N] {
	if from > to {
		return Empty[N]()
	}
	return New[N](&rangeSource[N]{next: from, last: to})
}

// Empty creates an empty Stream.
func Empty[T any]() Stream[T] {
	return New[T](&emptySource[T]{})
}

// Concat creates a Stream of every element of a followed by every element of b.
func Concat[T any](a, b Stream[T]) Stream[T] {
	return New[T](&concatSource[T]{
		parts: []Source[T]{AsSource(a), AsSource(b)},
	})
}

// AsSource exposes a stream as a Source so it can feed another stream.
// The stream starts running on the first call to Next.
func AsSource[T any](s Stream[T]) Source[T] {
	return &linkedSource[T, T]{
		upstream: s,
		transform: func(_ context.Context, v T, emit func(T) error) error {
			return emit(v)
		},
	}
}

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	slice []T
	index int
}

func (s *sliceSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if s.index >= len(s.slice) {
		return zero, false, nil
	}
	value := s.slice[s.index]
	s.index++
	return value, true, nil
}

func (s *sliceSource[T]) Close() error {
	return nil
}

// channelSource implements Source for channels.
type channelSource[T any] struct {
	ch <-chan T
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *channelSource[T]) Close() error {
	return nil
}

// generatorSource implements Source for generator functions.
type generatorSource[T any] struct {
	generator func() T
}

func (s *generatorSource[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	return s.generator(), true, nil
}

func (s *generatorSource[T]) Close() error {
	return nil
}

type iterateSource[T any] struct {
	current T
	started bool
	done    bool
	hasNext func(T) bool
	next    func(T) T
}

func (s *iterateSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.done {
		return zero, false, nil
	}

	if s.started {
		s.current = s.next(s.current)
	}
	s.started = true

	if !s.hasNext(s.current) {
		s.done = true
		return zero, false, nil
	}
	return s.current, true, nil
}

func (s *iterateSource[T]) Close() error {
	return nil
}

type rangeSource[N Integer] struct {
	next N
	last N
	done bool
}

func (s *rangeSource[N]) Next(_ context.Context) (N, bool, error) {
	if s.done {
		return 0, false, nil
	}
	value := s.next
	// Stepping past last could overflow when last is the type's maximum.
	if value == s.last {
		s.done = true
	} else {
		s.next++
	}
	return value, true, nil
}

func (s *rangeSource[N]) Close() error {
	return nil
}

// emptySource implements Source for empty streams.
type emptySource[T any] struct{}

func (s *emptySource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (s *emptySource[T]) Close() error {
	return nil
}

// errSource fails on the first Next; used for streams that can't run.
type errSource[T any] struct {
	err error
}

func (s *errSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, s.err
}

func (s *errSource[T]) Close() error {
	return nil
}

type concatSource[T any] struct {
	parts []Source[T]
}

func (s *concatSource[T]) Next(ctx context.Context) (T, bool, error) {
	for len(s.parts) > 0 {
		value, ok, err := s.parts[0].Next(ctx)
		if err != nil || ok {
			return value, ok, err
		}
		if err := s.parts[0].Close(); err != nil {
			return value, false, err
		}
		s.parts = s.parts[1:]
	}
	var zero T
	return zero, false, nil
}

func (s *concatSource[T]) Close() error {
	var errs []error
	for _, part := range s.parts {
		errs = append(errs, part.Close())
	}
	s.parts = nil
	return errors.Join(errs...)
}

// linkedSource runs an upstream stream in its own goroutine and feeds each
// of its elements through transform, which may emit any number of values.
// The upstream is pulled only when Next asks for a value.
type linkedSource[T, R any] struct {
	upstream  Stream[T]
	transform func(ctx context.Context, v T, emit func(R) error) error

	once   sync.Once
	out    *pipe[R]
	done   chan struct{}
	cancel context.CancelFunc
	err    error // written before out is closed
}

func (l *linkedSource[T, R]) start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	l.out = newPipe[R]()
	l.done = make(chan struct{})

	go func() {
		defer close(l.done)
		defer l.out.close()

		if l.err = l.out.ready(ctx); l.err != nil {
			_ = l.upstream.Close()
			return
		}
		emit := func(r R) error { return l.out.forward(ctx, r) }
		l.err = drain(ctx, l.upstream, func(v T) error {
			return l.transform(ctx, v, emit)
		})
	}()
}

func (l *linkedSource[T, R]) Next(ctx context.Context) (R, bool, error) {
	l.once.Do(func() { l.start(ctx) })

	value, ok, err := l.out.recv(ctx)
	if err != nil {
		return value, false, err
	}
	if !ok {
		return value, false, l.err
	}
	return value, true, nil
}

func (l *linkedSource[T, R]) Close() error {
	started := true
	l.once.Do(func() { started = false })

	if !started {
		return l.upstream.Close()
	}

	l.cancel()
	<-l.done
	return nil
}
