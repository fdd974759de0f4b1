/*
Package collect provides mutable reductions over streams.

A Collector describes a reduction in four functions: Supplier creates an
empty accumulation, Accumulator folds one element into it, Combiner merges
two accumulations built from adjacent parts of the input, and Finisher turns
the accumulation into the result. Characteristics tell the runner which
shortcuts are allowed.

	names, err := collect.Collect(ctx,
		stream.MapTo(stream.FromSlice(menu), Dish.Name),
		collect.JoiningWith(", ", "", ""))

Collectors compose: GroupingByWith, PartitioningByWith, Mapping and
CollectingAndThen take a downstream collector that is applied to each group.

	byType, err := collect.Collect(ctx, stream.FromSlice(menu),
		collect.GroupingByWith(Dish.Type, collect.Counting[Dish]()))

Collect runs a collector sequentially. CollectParallel splits the input into
contiguous chunks, accumulates them concurrently and merges the partial
results with the combiner in encounter order, so any collector whose
combiner is associative gives the same result both ways.

Group results are plain Go maps; PartitioningBy always holds both the true
and the false key.
*/
package collect
