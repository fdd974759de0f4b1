/*
Package scheduling groups the asynchronous execution primitives.

  - workerpool: fixed worker pools for concurrent task execution
  - future: single-assignment results that can be composed and joined
  - scheduler: time-based and cron scheduling on top of a worker pool

Worker Pool:

	pool := workerpool.NewFixed(4)
	defer func() { <-pool.Shutdown() }()

	price := future.SupplyAsyncOn(ctx, pool, func(ctx context.Context) (float64, error) {
		return shop.GetPrice(ctx, "my favorite product")
	})
	v, err := price.Get(ctx)

Task Scheduler:

	s := scheduler.New()
	_ = s.ScheduleCron("watch", "@every 10s", task)
	_ = s.Start()
	defer func() { <-s.Stop() }()

All scheduling components are safe for concurrent use and honor context
cancellation.
*/
package scheduling
