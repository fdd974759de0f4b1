// Package sum adds up 1..n in several ways so that their costs can be
// compared: a plain loop, boxed streams, range streams, and variants that
// pay a simulated round trip per addition.
package sum

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	lctx "github.com/jamesp/lambdas/pkg/common/context"
	"github.com/jamesp/lambdas/pkg/streaming/stream"
)

func plus(a, b int64) int64 { return a + b }
func next(i int64) int64    { return i + 1 }

// IterativeSum adds 1..n in a loop.
func IterativeSum(n int64) int64 {
	var result int64
	for i := int64(1); i <= n; i++ {
		result += i
	}
	return result
}

// SequentialSum adds the first n values of an infinite iterated stream.
func SequentialSum(ctx context.Context, n int64) (int64, error) {
	return stream.Iterate(1, next).Limit(n).Reduce(ctx, 0, plus)
}

// ParallelSum is SequentialSum folded on parallelism goroutines. The
// iterated source has to be drained first, which costs more than the
// parallel fold saves.
func ParallelSum(ctx context.Context, n int64, parallelism int) (int64, error) {
	return stream.ParallelReduce(ctx, stream.Iterate(1, next).Limit(n), 0, plus, parallelism)
}

// SequentialSumImproved adds a range stream, which needs no iteration state.
func SequentialSumImproved(ctx context.Context, n int64) (int64, error) {
	return stream.RangeClosed(1, n).Reduce(ctx, 0, plus)
}

// ParallelSumImproved splits 1..n into contiguous ranges, one per worker,
// and adds the partial sums. No element is materialised.
func ParallelSumImproved(ctx context.Context, n int64, parallelism int) (int64, error) {
	return parallelRangeSum(ctx, n, parallelism, plus)
}

// IterativeSumWithDelay is IterativeSum with a delay per addition.
func IterativeSumWithDelay(ctx context.Context, n int64, delay time.Duration) (int64, error) {
	var result int64
	for i := int64(1); i <= n; i++ {
		if err := lctx.Sleep(ctx, delay); err != nil {
			return 0, err
		}
		result += i
	}
	return result, nil
}

// SequentialSumWithDelay is SequentialSumImproved with a delay per addition.
func SequentialSumWithDelay(ctx context.Context, n int64, delay time.Duration) (int64, error) {
	result, err := stream.RangeClosed(1, n).Reduce(ctx, 0, slowPlus(ctx, delay))
	if err != nil {
		return 0, err
	}
	// The last addition may have been cut short.
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return result, nil
}

// ParallelSumWithDelay is ParallelSumImproved with a delay per addition,
// the case where parallelism pays off.
func ParallelSumWithDelay(ctx context.Context, n int64, delay time.Duration, parallelism int) (int64, error) {
	return parallelRangeSum(ctx, n, parallelism, slowPlus(ctx, delay))
}

// slowPlus simulates a round trip before each addition. A canceled ctx
// ends the sleep early; callers report ctx.Err().
func slowPlus(ctx context.Context, delay time.Duration) func(a, b int64) int64 {
	return func(a, b int64) int64 {
		_ = lctx.Sleep(ctx, delay)
		return a + b
	}
}

func parallelRangeSum(ctx context.Context, n int64, parallelism int, add func(a, b int64) int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	if int64(parallelism) > n {
		parallelism = int(n)
	}

	partials := make([]int64, parallelism)
	size, extra := n/int64(parallelism), n%int64(parallelism)

	g, gctx := errgroup.WithContext(ctx)
	from := int64(1)
	for i := 0; i < parallelism; i++ {
		to := from + size - 1
		if int64(i) < extra {
			to++
		}
		i, lo, hi := i, from, to
		g.Go(func() error {
			partial, err := stream.RangeClosed(lo, hi).Reduce(gctx, 0, add)
			partials[i] = partial
			if err != nil {
				return err
			}
			return gctx.Err()
		})
		from = to + 1
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total int64
	for _, p := range partials {
		total += p
	}
	return total, nil
}
