package sequences

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"go.uber.org/goleak"
)

func TestFibonacciPairs(t *testing.T) {
	defer goleak.VerifyNone(t)
	is := is.New(t)

	got, err := FibonacciPairs(context.Background(), 6)
	is.NoErr(err)
	is.Equal(got, []FibPair{{0, 1}, {1, 1}, {1, 2}, {2, 3}, {3, 5}, {5, 8}})
	is.Equal(got[2].String(), "(1, 2)")

	twenty, err := FibonacciPairs(context.Background(), 20)
	is.NoErr(err)
	is.Equal(twenty[19], FibPair{4181, 6765})
}

func TestFibonacci(t *testing.T) {
	defer goleak.VerifyNone(t)
	is := is.New(t)

	got, err := Fibonacci(context.Background(), 10)
	is.NoErr(err)
	is.Equal(got, []int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34})
}

func TestFibonacciCanceled(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fibonacci(ctx, 10)
	is.True(err != nil)
}

func TestPythagoreanTriples(t *testing.T) {
	defer goleak.VerifyNone(t)
	is := is.New(t)

	got, err := PythagoreanTriples(context.Background(), 20)
	is.NoErr(err)
	is.Equal(got, []Triple{
		{3, 4, 5}, {5, 12, 13}, {6, 8, 10}, {8, 15, 17},
		{9, 12, 15}, {12, 16, 20}, {15, 20, 25},
	})
	is.Equal(got[0].String(), "3  4  5")
}

func TestPythagoreanTriplesUpToHundred(t *testing.T) {
	is := is.New(t)

	got, err := PythagoreanTriples(context.Background(), 100)
	is.NoErr(err)
	for _, tr := range got {
		is.True(tr.A <= tr.B && tr.B <= 100)
		is.Equal(tr.A*tr.A+tr.B*tr.B, tr.C*tr.C)
	}
	is.Equal(len(got), 63)
}
