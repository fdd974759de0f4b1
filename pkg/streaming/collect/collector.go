package collect

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jamesp/lambdas/pkg/streaming/stream"
)

// Characteristics are hints about how a collector may be run.
type Characteristics uint8

const (
	// Concurrent means the accumulator tolerates being fed from several
	// goroutines, each with its own accumulation.
	Concurrent Characteristics = 1 << iota
	// Unordered means the result does not depend on encounter order.
	Unordered
	// IdentityFinish means the finisher returns its argument unchanged
	// and may be skipped.
	IdentityFinish
)

// Has reports whether every flag in flags is set.
func (c Characteristics) Has(flags Characteristics) bool {
	return c&flags == flags
}

// Collector is a mutable reduction of T elements into an R result through an
// intermediate accumulation of type A.
type Collector[T, A, R any] interface {
	// Supplier returns a new, empty accumulation.
	Supplier() A
	// Accumulator folds v into acc and returns the accumulation.
	Accumulator(acc A, v T) A
	// Combiner merges two accumulations; b holds elements after a's.
	Combiner(a, b A) A
	// Finisher converts the accumulation into the result.
	Finisher(acc A) R
	// Characteristics returns the collector's flags.
	Characteristics() Characteristics
}

type funcCollector[T, A, R any] struct {
	supplier        func() A
	accumulator     func(A, T) A
	combiner        func(A, A) A
	finisher        func(A) R
	characteristics Characteristics
}

// Of builds a Collector from its functions.
func Of[T, A, R any](
	supplier func() A,
	accumulator func(A, T) A,
	combiner func(A, A) A,
	finisher func(A) R,
	characteristics Characteristics,
) Collector[T, A, R] {
	return &funcCollector[T, A, R]{
		supplier:        supplier,
		accumulator:     accumulator,
		combiner:        combiner,
		finisher:        finisher,
		characteristics: characteristics,
	}
}

func (c *funcCollector[T, A, R]) Supplier() A                      { return c.supplier() }
func (c *funcCollector[T, A, R]) Accumulator(acc A, v T) A         { return c.accumulator(acc, v) }
func (c *funcCollector[T, A, R]) Combiner(a, b A) A                { return c.combiner(a, b) }
func (c *funcCollector[T, A, R]) Finisher(acc A) R                 { return c.finisher(acc) }
func (c *funcCollector[T, A, R]) Characteristics() Characteristics { return c.characteristics }

func identity[A any](acc A) A { return acc }

// ToListCollector collects elements into a slice in encounter order. It is
// written out by hand as the reference implementation of the contract.
type ToListCollector[T any] struct{}

// Supplier returns an empty list.
func (ToListCollector[T]) Supplier() []T {
	return []T{}
}

// Accumulator appends v.
func (ToListCollector[T]) Accumulator(list []T, v T) []T {
	return append(list, v)
}

// Combiner appends b to a.
func (ToListCollector[T]) Combiner(a, b []T) []T {
	return append(a, b...)
}

// Finisher returns the list unchanged.
func (ToListCollector[T]) Finisher(list []T) []T {
	return list
}

// Characteristics reports Concurrent and IdentityFinish.
func (ToListCollector[T]) Characteristics() Characteristics {
	return Concurrent | IdentityFinish
}

// Collect runs c over every element of s.
func Collect[T, A, R any](ctx context.Context, s stream.Stream[T], c Collector[T, A, R]) (R, error) {
	acc := c.Supplier()
	err := s.ForEach(ctx, func(v T) {
		acc = c.Accumulator(acc, v)
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return finish(c, acc), nil
}

// CollectParallel drains s, accumulates contiguous chunks of its elements
// on up to parallelism goroutines and merges the chunks in encounter order.
// A parallelism of 0 or less uses GOMAXPROCS.
func CollectParallel[T, A, R any](ctx context.Context, s stream.Stream[T], c Collector[T, A, R], parallelism int) (R, error) {
	var zero R

	items, err := s.ToSlice(ctx)
	if err != nil {
		return zero, err
	}

	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	chunks := stream.Chunk(items, parallelism)
	if len(chunks) == 0 {
		return finish(c, c.Supplier()), nil
	}

	partials := make([]A, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			acc := c.Supplier()
			for _, v := range chunk {
				acc = c.Accumulator(acc, v)
			}
			partials[i] = acc
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return zero, err
	}

	acc := partials[0]
	for _, partial := range partials[1:] {
		acc = c.Combiner(acc, partial)
	}
	return finish(c, acc), nil
}

// CollectSimple folds s into a container created by supplier.
func CollectSimple[T, A any](ctx context.Context, s stream.Stream[T], supplier func() A, accumulator func(A, T) A) (A, error) {
	return Collect(ctx, s, Of[T, A, A](supplier, accumulator, nil, identity[A], IdentityFinish))
}

func finish[T, A, R any](c Collector[T, A, R], acc A) R {
	if c.Characteristics().Has(IdentityFinish) {
		if r, ok := any(acc).(R); ok {
			return r
		}
	}
	return c.Finisher(acc)
}
