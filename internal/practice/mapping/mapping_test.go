package mapping

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

func TestSquares(t *testing.T) {
	is := is.New(t)

	got, err := Squares(context.Background(), []int{1, 2, 3})
	is.NoErr(err)
	is.Equal(got, []int{1, 4, 9})
}

func TestPairs(t *testing.T) {
	is := is.New(t)

	got, err := Pairs(context.Background(), []int{1, 2, 3}, []int{3, 4})
	is.NoErr(err)
	is.Equal(got, []Pair{{1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 3}, {3, 4}})
}

func TestPairsSumDivisibleByThree(t *testing.T) {
	is := is.New(t)

	got, err := PairsSumDivisibleByThree(context.Background(), []int{1, 2, 3}, []int{3, 4})
	is.NoErr(err)
	is.Equal(got, []Pair{{2, 4}, {3, 3}})
}

func TestPairsOfEmptyList(t *testing.T) {
	is := is.New(t)

	got, err := Pairs(context.Background(), nil, []int{1})
	is.NoErr(err)
	is.Equal(len(got), 0)
}
