package stream

import (
	"context"
	"fmt"
	"strings"
)

// Example demonstrates basic stream usage.
func Example() {
	result, err := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}).
		Filter(func(x int) bool { return x%2 == 0 }).
		Map(func(x int) int { return x * 2 }).
		Limit(3).
		ToSlice(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Result: %v\n", result)
	// Output: Result: [4 8 12]
}

// ExampleIterate prints the first Fibonacci pairs from an infinite stream.
func ExampleIterate() {
	pairs, err := Iterate([2]int{0, 1}, func(p [2]int) [2]int {
		return [2]int{p[1], p[0] + p[1]}
	}).Limit(6).ToSlice(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(pairs)
	// Output: [[0 1] [1 1] [1 2] [2 3] [3 5] [5 8]]
}

// ExampleGenerate uses a stateful supplier.
func ExampleGenerate() {
	prev, curr := 0, 1
	fib, err := Generate(func() int {
		oldPrev := prev
		prev, curr = curr, prev+curr
		return oldPrev
	}).Limit(10).ToSlice(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(fib)
	// Output: [0 1 1 2 3 5 8 13 21 34]
}

// ExampleFlatMapTo splits words into their distinct letters.
func ExampleFlatMapTo() {
	words := FromSlice([]string{"Hello", "World"})
	letters, err := FlatMapTo(words, func(w string) Stream[string] {
		return FromSlice(strings.Split(w, ""))
	}).Distinct().ToSlice(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(strings.Join(letters, ""))
	// Output: HeloWrd
}

// ExampleParallelReduce sums a range on four goroutines.
func ExampleParallelReduce() {
	sum, err := ParallelReduce(context.Background(), RangeClosed[int64](1, 10_000), 0,
		func(a, b int64) int64 { return a + b }, 4)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(sum)
	// Output: 50005000
}
