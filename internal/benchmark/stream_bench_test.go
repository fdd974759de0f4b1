package benchmark

import (
	"context"
	"strconv"
	"testing"

	"github.com/jamesp/lambdas/internal/practice/dishes"
	"github.com/jamesp/lambdas/pkg/streaming/collect"
	"github.com/jamesp/lambdas/pkg/streaming/stream"
)

func ints(size int) []int {
	data := make([]int, size)
	for i := range data {
		data[i] = i
	}
	return data
}

// BenchmarkFilter measures one pipeline stage.
func BenchmarkFilter(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		data := ints(size)
		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := stream.FromSlice(data).
					Filter(func(n int) bool { return n%2 == 0 })
				_, _ = s.ToSlice(context.Background())
			}
		})
	}
}

// BenchmarkChainedOperations measures the per-stage cost of a pipeline.
func BenchmarkChainedOperations(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		data := ints(size)
		b.Run(sizeLabel(size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := stream.FromSlice(data).
					Filter(func(n int) bool { return n%2 == 0 }).
					Map(func(n int) int { return n * 2 }).
					Skip(10).
					Limit(int64(size / 4))
				_, _ = s.ToSlice(context.Background())
			}
		})
	}
}

// BenchmarkLimitOnInfinite measures how quickly an infinite source is
// cut off.
func BenchmarkLimitOnInfinite(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = stream.Iterate(0, func(n int) int { return n + 1 }).Limit(100).Count(context.Background())
	}
}

// BenchmarkReduce compares the sequential and parallel folds.
func BenchmarkReduce(b *testing.B) {
	data := ints(100_000)
	add := func(a, b int) int { return a + b }

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = stream.FromSlice(data).Reduce(context.Background(), 0, add)
		}
	})
	for _, p := range []int{2, 4, 8} {
		b.Run("parallel_"+strconv.Itoa(p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = stream.ParallelReduce(context.Background(), stream.FromSlice(data), 0, add, p)
			}
		})
	}
}

// BenchmarkCollectors compares the hand-written list collector with the
// library one, sequentially and in parallel.
func BenchmarkCollectors(b *testing.B) {
	data := ints(10_000)
	ctx := context.Background()

	b.Run("to_list_by_hand", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = collect.Collect[int, []int, []int](ctx, stream.FromSlice(data), collect.ToListCollector[int]{})
		}
	})
	b.Run("to_list", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = collect.Collect(ctx, stream.FromSlice(data), collect.ToList[int]())
		}
	})
	b.Run("to_list_parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = collect.CollectParallel(ctx, stream.FromSlice(data), collect.ToList[int](), 4)
		}
	})
}

func BenchmarkDishGrouping(b *testing.B) {
	ctx := context.Background()
	menu := dishes.Menu()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = dishes.DishesByTypeCaloricLevel(ctx, menu)
	}
}

// sizeLabel returns a readable label for benchmark sizes.
func sizeLabel(size int) string {
	switch {
	case size >= 1_000_000:
		return strconv.Itoa(size/1_000_000) + "M"
	case size >= 1000:
		return strconv.Itoa(size/1000) + "K"
	default:
		return strconv.Itoa(size)
	}
}
