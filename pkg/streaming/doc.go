/*
Package streaming groups the sequence pipeline packages.

  - stream: lazy Stream[T] pipelines whose stages run as goroutines
  - collect: Collector recipes consumed by collect.Collect

A stream does nothing until a terminal operation runs, and can be consumed
only once:

	s := stream.Iterate(0, func(i int) int { return i + 2 }).Limit(5)
	evens, err := s.ToSlice(ctx) // [0 2 4 6 8]
*/
package streaming
