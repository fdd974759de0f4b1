package stream

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MapTo returns a stream of mapper applied to each element of s, changing
// the element type. s is linked to the returned stream.
func MapTo[T, R any](s Stream[T], mapper func(T) R) Stream[R] {
	return New[R](&linkedSource[T, R]{
		upstream: s,
		transform: func(_ context.Context, v T, emit func(R) error) error {
			return emit(mapper(v))
		},
	})
}

// FlatMapTo replaces each element of s with the contents of the stream
// produced by mapper, changing the element type.
func FlatMapTo[T, R any](s Stream[T], mapper func(T) Stream[R]) Stream[R] {
	return New[R](&linkedSource[T, R]{
		upstream: s,
		transform: func(ctx context.Context, v T, emit func(R) error) error {
			return drain(ctx, mapper(v), emit)
		},
	})
}

// FlatMapSlice is FlatMapTo for mappers that already hold their results in
// a slice.
func FlatMapSlice[T, R any](s Stream[T], mapper func(T) []R) Stream[R] {
	return New[R](&linkedSource[T, R]{
		upstream: s,
		transform: func(_ context.Context, v T, emit func(R) error) error {
			for _, r := range mapper(v) {
				if err := emit(r); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// DistinctBy keeps the first element for each key, in encounter order.
// Use it instead of Distinct for element types that are not comparable.
func DistinctBy[T any, K comparable](s Stream[T], key func(T) K) Stream[T] {
	seen := make(map[K]struct{})
	return New[T](&linkedSource[T, T]{
		upstream: s,
		transform: func(_ context.Context, v T, emit func(T) error) error {
			k := key(v)
			if _, dup := seen[k]; dup {
				return nil
			}
			seen[k] = struct{}{}
			return emit(v)
		},
	})
}

// Chunk splits items into at most parts contiguous, non-empty chunks of
// nearly equal size, preserving order.
func Chunk[T any](items []T, parts int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > len(items) {
		parts = len(items)
	}

	chunks := make([][]T, 0, parts)
	size, extra := len(items)/parts, len(items)%parts
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < extra {
			end++
		}
		chunks = append(chunks, items[start:end])
		start = end
	}
	return chunks
}

// ParallelReduce drains s, then folds contiguous chunks of its elements
// concurrently and combines the partial results in encounter order.
// identity must be an identity for accumulator and accumulator must be
// associative, otherwise the result depends on parallelism.
// A parallelism of 0 or less uses GOMAXPROCS.
func ParallelReduce[T any](ctx context.Context, s Stream[T], identity T, accumulator func(T, T) T, parallelism int) (T, error) {
	items, err := s.ToSlice(ctx)
	if err != nil {
		return identity, err
	}

	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	chunks := Chunk(items, parallelism)
	partials := make([]T, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			acc := identity
			for _, v := range chunk {
				acc = accumulator(acc, v)
			}
			partials[i] = acc
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return identity, err
	}

	result := identity
	for _, partial := range partials {
		result = accumulator(result, partial)
	}
	return result, nil
}
