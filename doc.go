/*
Package lambdas provides lazy functional pipelines, collectors and futures
for Go, plus the concurrency primitives they run on.

Streaming (pkg/streaming):
  - stream: lazy, single-use Stream[T] pipelines with finite and infinite sources
  - collect: Collector recipes for grouping, partitioning, joining and summarizing

Scheduling (pkg/scheduling):
  - workerpool: bounded pools that run tasks in the background
  - future: results of asynchronous computations, composable and joinable
  - scheduler: one-shot, repeating and cron tasks on a worker pool

Rate Limiting (pkg/ratelimit):
  - bucket: token bucket limiter with burst capacity

Supporting packages: functional (Predicate and Comparator combinators),
metrics (Prometheus instrumentation) and common/{errors,validation,context}.

Example usage:

	import (
		"github.com/jamesp/lambdas/pkg/streaming/collect"
		"github.com/jamesp/lambdas/pkg/streaming/stream"
	)

	names, err := stream.MapTo(
		stream.FromSlice(menu).Filter(func(d Dish) bool { return d.Calories > 300 }),
		func(d Dish) string { return d.Name },
	).Limit(3).ToSlice(ctx)

	byType, err := collect.Collect(ctx, stream.FromSlice(menu),
		collect.GroupingBy(func(d Dish) DishType { return d.Type }))

Runnable programs live under examples/, one per practice area.
*/
package lambdas
