// Package sequences builds number sequences from infinite streams.
package sequences

import (
	"context"
	"fmt"
	"math"

	"github.com/jamesp/lambdas/pkg/streaming/stream"
)

// FibPair is two consecutive Fibonacci numbers.
type FibPair [2]int

// String formats the pair as "(a, b)".
func (p FibPair) String() string {
	return fmt.Sprintf("(%d, %d)", p[0], p[1])
}

// FibonacciPairs returns the first n pairs (0, 1), (1, 1), (1, 2), ...
// by iterating from a seed.
func FibonacciPairs(ctx context.Context, n int64) ([]FibPair, error) {
	next := func(p FibPair) FibPair { return FibPair{p[1], p[0] + p[1]} }
	return stream.Iterate(FibPair{0, 1}, next).Limit(n).ToSlice(ctx)
}

// Fibonacci returns the first n Fibonacci numbers from a stateful
// generator.
func Fibonacci(ctx context.Context, n int64) ([]int, error) {
	return stream.Generate(fibonacciSupplier()).Limit(n).ToSlice(ctx)
}

func fibonacciSupplier() func() int {
	prev, curr := 0, 1
	return func() int {
		out := prev
		prev, curr = curr, prev+curr
		return out
	}
}

// Triple is a Pythagorean triple a² + b² = c².
type Triple struct {
	A, B, C int
}

// String formats the triple's sides separated by spaces.
func (t Triple) String() string {
	return fmt.Sprintf("%d  %d  %d", t.A, t.B, t.C)
}

// PythagoreanTriples returns every integral triple with a <= b <= limit,
// ordered by a then b.
func PythagoreanTriples(ctx context.Context, limit int) ([]Triple, error) {
	triples := stream.FlatMapTo(stream.RangeClosed(1, limit), func(a int) stream.Stream[Triple] {
		candidates := stream.MapTo(stream.RangeClosed(a, limit), func(b int) Triple {
			return Triple{A: a, B: b, C: hypotenuse(a, b)}
		})
		return candidates.Filter(Triple.integral)
	})
	return triples.ToSlice(ctx)
}

// hypotenuse returns the integer part of sqrt(a² + b²).
func hypotenuse(a, b int) int {
	return int(math.Sqrt(float64(a*a + b*b)))
}

func (t Triple) integral() bool {
	return t.A*t.A+t.B*t.B == t.C*t.C
}
