// Package mapping shows map and flat-map over small lists of numbers.
package mapping

import (
	"context"

	"github.com/jamesp/lambdas/pkg/streaming/stream"
)

// Pair is an ordered pair of numbers.
type Pair [2]int

// Squares returns the square of each number, in order.
func Squares(ctx context.Context, numbers []int) ([]int, error) {
	return stream.FromSlice(numbers).Map(func(n int) int { return n * n }).ToSlice(ctx)
}

// Pairs returns the cartesian product of a and b, in order.
func Pairs(ctx context.Context, a, b []int) ([]Pair, error) {
	return PairsWhere(ctx, a, b, func(int, int) bool { return true })
}

// PairsSumDivisibleByThree keeps the pairs whose sum is a multiple of three.
func PairsSumDivisibleByThree(ctx context.Context, a, b []int) ([]Pair, error) {
	return PairsWhere(ctx, a, b, func(x, y int) bool { return (x+y)%3 == 0 })
}

// PairsWhere returns the pairs of the cartesian product of a and b that
// satisfy keep.
func PairsWhere(ctx context.Context, a, b []int, keep func(x, y int) bool) ([]Pair, error) {
	return stream.FlatMapTo(stream.FromSlice(a), func(x int) stream.Stream[Pair] {
		matching := stream.FromSlice(b).Filter(func(y int) bool { return keep(x, y) })
		return stream.MapTo(matching, func(y int) Pair { return Pair{x, y} })
	}).ToSlice(ctx)
}
