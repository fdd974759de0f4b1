/*
Package stream provides lazy, single-use pipelines over sequences of values.

A Stream is built from a Source, extended with intermediate operations and
consumed by exactly one terminal operation:

	names, err := stream.MapTo(
		stream.FromSlice(menu).Filter(func(d Dish) bool { return d.Calories > 300 }),
		func(d Dish) string { return d.Name },
	).Limit(3).ToSlice(ctx)

Nothing is read from the source until the terminal operation runs. Each stage
runs in its own goroutine and hands elements to the next stage over an
unbuffered channel, so at most one element per stage is in flight and a
short-circuiting stage such as Limit stops the source promptly, even when the
source is infinite:

	fib := stream.Iterate([2]int{0, 1}, func(p [2]int) [2]int {
		return [2]int{p[1], p[0] + p[1]}
	}).Limit(20)

Sources:

  - FromSlice, Of, FromChannel, Empty
  - Generate (stateful supplier), Iterate, IterateWhile
  - Range, RangeClosed over any Integer type
  - Concat, AsSource, or any custom Source

Intermediate operations return a new stream and link the receiver to it:
Filter, Map, FlatMap, Distinct, Sorted, Skip, Limit, Peek, TakeWhile,
DropWhile. MapTo, FlatMapTo, FlatMapSlice and DistinctBy are functions
because Go methods cannot introduce type parameters.

Terminal operations take a context and close the stream when they return:
ForEach, Reduce, ReduceOptional, ToSlice, Count, AnyMatch, AllMatch,
NoneMatch, FindFirst, FindAny, Min, Max. Cancelling the context makes them
return ctx.Err(). Calling a second terminal, or an intermediate operation on
a stream that was already linked, yields ErrStreamClosed.

ParallelReduce folds the elements of a stream on several goroutines with
errgroup; the collect package offers the same for collectors.
*/
package stream
