/*
Package future provides completable futures.

A Future holds the eventual result of an asynchronous computation: a value
or an error. It completes exactly once, either from the goroutine that runs
its supplier or explicitly through Complete and CompleteExceptionally.

	f := future.SupplyAsync(ctx, func(ctx context.Context) (float64, error) {
		return shop.GetPrice(ctx, "myPhone27S")
	})
	price, err := f.Get(ctx)

SupplyAsyncOn runs the supplier on a workerpool.Pool instead of a fresh
goroutine, which bounds how many suppliers run at once:

	pool := workerpool.NewFixed(4)
	defer pool.Shutdown()

	futures := make([]*future.Future[string], len(shops))
	for i, s := range shops {
		futures[i] = future.SupplyAsyncOn(ctx, pool, s.Quote)
	}
	quotes, err := future.JoinAll(futures)

Composition functions run their callback in the goroutine that completes the
source future, or immediately when it is already complete:

	formatted := future.ThenApply(f, func(p float64) string {
		return fmt.Sprintf("%.2f", p)
	})

A panicking supplier or callback fails its future with an error wrapping
ErrPanic instead of crashing the program.
*/
package future
