package stream

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jamesp/lambdas/internal/testutil"
)

func TestFromSlice(t *testing.T) {
	stream := FromSlice([]int{1, 2, 3, 4, 5})
	defer stream.Close()

	result, err := stream.ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3, 4, 5})
}

func TestEmpty(t *testing.T) {
	result, err := Empty[int]().ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)

	count, err := Empty[string]().Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(0))
}

func TestFromChannel(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "hello"
	ch <- "world"
	ch <- "test"
	close(ch)

	result, err := FromChannel(ch).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []string{"hello", "world", "test"})
}

func TestRange(t *testing.T) {
	tests := []struct {
		name string
		s    Stream[int]
		want []int
	}{
		{"closed", RangeClosed(1, 5), []int{1, 2, 3, 4, 5}},
		{"half open", Range(1, 5), []int{1, 2, 3, 4}},
		{"single", RangeClosed(3, 3), []int{3}},
		{"empty closed", RangeClosed(5, 1), nil},
		{"empty half open", Range(2, 2), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.ToSlice(context.Background())
			testutil.AssertNoError(t, err)
			testutil.AssertSliceEqual(t, got, tt.want)
		})
	}
}

func TestRangeClosedAtTypeMaximum(t *testing.T) {
	got, err := RangeClosed[uint8](253, 255).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []uint8{253, 254, 255})
}

func TestIterate(t *testing.T) {
	got, err := Iterate(1, func(x int) int { return x * 2 }).
		Limit(5).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{1, 2, 4, 8, 16})

	got, err = IterateWhile(1, func(x int) bool { return x < 20 }, func(x int) int { return x * 3 }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{1, 3, 9})
}

func TestFilter(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}).
		Filter(func(x int) bool { return x%2 == 0 }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{2, 4, 6, 8, 10})
}

func TestMap(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3, 4, 5}).
		Map(func(x int) int { return x * x }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 4, 9, 16, 25})
}

func TestMapTo(t *testing.T) {
	result, err := MapTo(FromSlice([]int{1, 2, 3}), func(x int) string {
		return fmt.Sprintf("number-%d", x)
	}).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []string{"number-1", "number-2", "number-3"})
}

func TestMapToKeepsUpstreamOperations(t *testing.T) {
	upstream := FromSlice([]string{"pork", "beef", "rice", "prawns"}).
		Filter(func(s string) bool { return s != "beef" })

	lengths, err := MapTo(upstream, func(s string) int { return len(s) }).
		Filter(func(n int) bool { return n > 4 }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, lengths, []int{6})
}

func TestChainedOperations(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}).
		Filter(func(x int) bool { return x%2 == 0 }). // 2, 4, 6, 8, 10
		Map(func(x int) int { return x * 3 }).        // 6, 12, 18, 24, 30
		Skip(1).                                      // 12, 18, 24, 30
		Limit(2).                                     // 12, 18
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{12, 18})
}

func TestDistinct(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 2, 3, 3, 3, 4, 4, 5}).
		Distinct().
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3, 4, 5})
}

func TestDistinctBy(t *testing.T) {
	pairs := [][]int{{1, 3}, {1, 4}, {2, 3}}
	result, err := DistinctBy(FromSlice(pairs), func(p []int) int { return p[0] }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 2)
	testutil.AssertSliceEqual(t, result[1], []int{2, 3})
}

func TestSortedIsStable(t *testing.T) {
	type pair struct {
		key   int
		label string
	}
	input := []pair{{2, "a"}, {1, "b"}, {2, "c"}, {1, "d"}}

	result, err := FromSlice(input).
		Sorted(func(a, b pair) int { return cmp.Compare(a.key, b.key) }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []pair{{1, "b"}, {1, "d"}, {2, "a"}, {2, "c"}})
}

func TestSkipAndLimit(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3, 4, 5}).Skip(2).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{3, 4, 5})

	result, err = FromSlice([]int{1, 2, 3, 4, 5}).Limit(3).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})

	result, err = FromSlice([]int{1, 2, 3}).Limit(0).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)

	result, err = FromSlice([]int{1, 2, 3}).Skip(10).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)
}

func TestTakeWhileDropWhile(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 5, 1, 2}).
		TakeWhile(func(x int) bool { return x < 3 }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2})

	result, err = FromSlice([]int{1, 2, 5, 1, 2}).
		DropWhile(func(x int) bool { return x < 3 }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{5, 1, 2})
}

func TestPeek(t *testing.T) {
	var peeked []int
	result, err := FromSlice([]int{1, 2, 3}).
		Peek(func(x int) { peeked = append(peeked, x) }).
		Map(func(x int) int { return x * 10 }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{10, 20, 30})
	testutil.AssertSliceEqual(t, peeked, []int{1, 2, 3})
}

func TestLaziness(t *testing.T) {
	var pulled int64
	s := Generate(func() int {
		return int(atomic.AddInt64(&pulled, 1))
	}).Filter(func(x int) bool { return x%2 == 0 })

	// Building the pipeline must not touch the source.
	time.Sleep(10 * time.Millisecond)
	testutil.AssertEqual(t, atomic.LoadInt64(&pulled), int64(0))

	result, err := s.Limit(3).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{2, 4, 6})

	// Stages pull only on demand, so the source stops at the sixth value.
	testutil.AssertEqual(t, atomic.LoadInt64(&pulled), int64(6))
}

func TestShortCircuitPullsExactly(t *testing.T) {
	ctx := context.Background()

	var trace []string
	words := Of("pork", "beef", "chicken", "fries", "rice").
		Peek(func(w string) { trace = append(trace, "peek "+w) })
	lengths := MapTo(words, func(w string) int {
		trace = append(trace, "map "+w)
		return len(w)
	})

	got, err := lengths.Limit(2).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []int{4, 4})
	testutil.AssertSliceEqual(t, trace, []string{"peek pork", "map pork", "peek beef", "map beef"})

	var generated int64
	first, ok, err := Generate(func() int64 { return atomic.AddInt64(&generated, 1) }).
		Filter(func(x int64) bool { return x > 2 }).
		FindFirst(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, first, int64(3))
	testutil.AssertEqual(t, atomic.LoadInt64(&generated), int64(3))

	var expanded []int
	pairs, err := FlatMapTo(Of(1, 2, 3), func(x int) Stream[int] {
		expanded = append(expanded, x)
		return Of(x, x)
	}).Limit(3).ToSlice(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, pairs, []int{1, 1, 2})
	testutil.AssertSliceEqual(t, expanded, []int{1, 2})
}

func TestForEach(t *testing.T) {
	var sum int
	err := FromSlice([]int{1, 2, 3, 4}).ForEach(context.Background(), func(x int) { sum += x })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sum, 10)
}

func TestReduce(t *testing.T) {
	sum, err := RangeClosed(1, 100).Reduce(context.Background(), 0, func(a, b int) int { return a + b })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sum, 5050)

	maxValue, ok, err := FromSlice([]int{300, 1000, 400, 710}).
		ReduceOptional(context.Background(), func(a, b int) int { return max(a, b) })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, maxValue, 1000)

	_, ok, err = Empty[int]().ReduceOptional(context.Background(), func(a, b int) int { return a + b })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestCount(t *testing.T) {
	count, err := FromSlice([]string{"a", "b", "c"}).Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, int64(3))
}

func TestFindFirst(t *testing.T) {
	value, found, err := FromSlice([]int{5, 6, 7}).
		Filter(func(x int) bool { return x > 5 }).
		FindFirst(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, true)
	testutil.AssertEqual(t, value, 6)

	_, found, err = Empty[int]().FindAny(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, false)
}

func TestMatching(t *testing.T) {
	ctx := context.Background()
	isEven := func(x int) bool { return x%2 == 0 }

	someEven, err := FromSlice([]int{1, 3, 4}).AnyMatch(ctx, isEven)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, someEven, true)

	all, err := FromSlice([]int{2, 4, 5}).AllMatch(ctx, isEven)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, all, false)

	all, err = Empty[int]().AllMatch(ctx, isEven)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, all, true)

	none, err := FromSlice([]int{1, 3, 5}).NoneMatch(ctx, isEven)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, none, true)
}

func TestMatchingShortCircuitsInfiniteStream(t *testing.T) {
	found, err := Iterate(1, func(x int) int { return x + 1 }).
		AnyMatch(context.Background(), func(x int) bool { return x == 1000 })
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, found, true)
}

func TestMinMax(t *testing.T) {
	words := []string{"pear", "fig", "banana", "kiwi"}
	byLength := func(a, b string) int { return cmp.Compare(len(a), len(b)) }

	shortest, ok, err := FromSlice(words).Min(context.Background(), byLength)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, shortest, "fig")

	longest, ok, err := FromSlice(words).Max(context.Background(), byLength)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, longest, "banana")

	// Ties keep the first element in encounter order.
	first, _, err := FromSlice([]string{"pear", "kiwi"}).Max(context.Background(), byLength)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, first, "pear")
}

func TestFlatMap(t *testing.T) {
	result, err := FromSlice([]int{1, 2, 3}).
		FlatMap(func(x int) Stream[int] { return FromSlice([]int{x, x * 10}) }).
		ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 10, 2, 20, 3, 30})
}

func TestFlatMapTo(t *testing.T) {
	letters, err := FlatMapTo(FromSlice([]string{"ab", "ba", "c"}), func(w string) Stream[string] {
		return FromSlice(strings.Split(w, ""))
	}).Distinct().ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, letters, []string{"a", "b", "c"})

	pairs, err := FlatMapSlice(FromSlice([]int{1, 2}), func(a int) [][2]int {
		return [][2]int{{a, 3}, {a, 4}}
	}).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, pairs, [][2]int{{1, 3}, {1, 4}, {2, 3}, {2, 4}})
}

func TestConcat(t *testing.T) {
	result, err := Concat(Of(1, 2), RangeClosed(3, 4)).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3, 4})
}

func TestGenerateInfinite(t *testing.T) {
	counter := 0
	result, err := Generate(func() int {
		counter++
		return counter
	}).Limit(5).ToSlice(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3, 4, 5})
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Infinite stream without a limit only stops through the context.
	_, err := Generate(func() int { return 1 }).
		Map(func(x int) int { return x + 1 }).
		ToSlice(ctx)
	testutil.AssertErrorIs(t, err, context.DeadlineExceeded)
}

func TestPreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FromSlice([]int{1, 2, 3}).Count(ctx)
	testutil.AssertErrorIs(t, err, context.Canceled)
}

type failingSource struct {
	sent int
	err  error
}

func (f *failingSource) Next(_ context.Context) (int, bool, error) {
	if f.sent == 2 {
		return 0, false, f.err
	}
	f.sent++
	return f.sent, true, nil
}

func (f *failingSource) Close() error { return nil }

func TestSourceErrorPropagates(t *testing.T) {
	boom := errors.New("source failed")

	_, err := New[int](&failingSource{err: boom}).
		Map(func(x int) int { return x * 2 }).
		Sorted(cmp.Compare[int]).
		ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, boom)

	_, err = MapTo(New[int](&failingSource{err: boom}), func(x int) string { return "x" }).
		Count(context.Background())
	testutil.AssertErrorIs(t, err, boom)
}

func TestStreamIsSingleUse(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})

	_, err := s.Count(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, s.IsClosed(), true)

	_, err = s.Count(context.Background())
	testutil.AssertErrorIs(t, err, ErrStreamClosed)

	linked := FromSlice([]int{1, 2, 3})
	_ = linked.Filter(func(int) bool { return true })
	_, err = linked.Map(func(x int) int { return x }).ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, ErrStreamClosed)
}

func TestStreamClosing(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	testutil.AssertEqual(t, s.IsClosed(), false)

	testutil.AssertNoError(t, s.Close())
	testutil.AssertNoError(t, s.Close()) // idempotent
	testutil.AssertEqual(t, s.IsClosed(), true)

	_, err := s.ToSlice(context.Background())
	testutil.AssertErrorIs(t, err, ErrStreamClosed)
}

func TestCloseUnstartedMappedStream(t *testing.T) {
	s := MapTo(Generate(func() int { return 1 }), func(x int) int { return x })
	testutil.AssertNoError(t, s.Close())
}

func TestChunk(t *testing.T) {
	chunks := Chunk([]int{1, 2, 3, 4, 5, 6, 7}, 3)
	testutil.AssertEqual(t, len(chunks), 3)
	testutil.AssertSliceEqual(t, chunks[0], []int{1, 2, 3})
	testutil.AssertSliceEqual(t, chunks[1], []int{4, 5})
	testutil.AssertSliceEqual(t, chunks[2], []int{6, 7})

	testutil.AssertEqual(t, len(Chunk([]int{1, 2}, 8)), 2)
	testutil.AssertEqual(t, len(Chunk([]int{}, 4)), 0)
}

func TestParallelReduce(t *testing.T) {
	for _, parallelism := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("parallelism=%d", parallelism), func(t *testing.T) {
			sum, err := ParallelReduce(context.Background(), RangeClosed[int64](1, 1000), 0,
				func(a, b int64) int64 { return a + b }, parallelism)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, sum, int64(500500))
		})
	}

	// Combination keeps encounter order for associative, non-commutative ops.
	joined, err := ParallelReduce(context.Background(), FromSlice(strings.Split("abcdefg", "")), "",
		func(a, b string) string { return a + b }, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, joined, "abcdefg")
}
