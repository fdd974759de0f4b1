/*
Package workerpool provides a fixed-size worker pool.

A worker pool manages a fixed number of worker goroutines that execute
tasks concurrently. It bounds how many blocking calls run at once, which is
what the price finder relies on to query every shop in parallel without
starting a goroutine per request.

Basic usage:

	pool := workerpool.New(4, 100) // 4 workers, queue size 100
	defer pool.Shutdown()

	task := workerpool.TaskFunc(func(ctx context.Context) error {
		// Do work
		return nil
	})

	if err := pool.Submit(task); err != nil {
		log.Printf("Failed to submit: %v", err)
	}

	result := <-pool.Results()
	if result.Error != nil {
		log.Printf("Task failed: %v", result.Error)
	}

Fixed pools:

NewFixed creates a pool whose results are discarded. Tasks report their own
outcome, which is how futures run on a pool:

	pool := workerpool.NewFixed(min(len(shops), 100))
	defer pool.Shutdown()

	f := future.SupplyAsyncOn(ctx, pool, func(ctx context.Context) (float64, error) {
		return shop.GetPrice(ctx, product)
	})

Configuration:

	config := workerpool.Config{
		WorkerCount:     8,
		QueueSize:       1000,
		TaskTimeout:     30 * time.Second,
		BufferedResults: true,
		PanicHandler: func(task workerpool.Task, recovered interface{}) {
			log.Printf("Task panicked: %v", recovered)
		},
		OnTaskComplete: func(workerID int, result workerpool.Result) {
			log.Printf("Worker %d completed task in %v", workerID, result.Duration)
		},
	}
	pool := workerpool.NewWithConfig(config)

NewWithConfig panics on an invalid Config; NewSafe returns a
ValidationError instead.

Submission:

	err := pool.Submit(task)
	err := pool.SubmitWithTimeout(task, time.Second)
	err := pool.SubmitWithContext(ctx, task)

The context given to SubmitWithContext bounds the wait for queue space and
is also the parent of the context the task runs with. TaskTimeout, when
set, further limits each execution.

Errors and panics:

Task errors are reported in Result.Error. A panicking task does not kill its
worker: the panic is recovered and reported as the result error, or passed
to PanicHandler when one is configured.

Shutdown:

Shutdown stops accepting tasks, lets queued tasks finish and returns a
channel that is closed once every worker has exited. After Shutdown,
results nobody is waiting for are dropped.

	<-pool.Shutdown()

	// Cancels the contexts of remaining tasks after 30s.
	<-pool.ShutdownWithTimeout(30 * time.Second)

Metrics:

MetricsPool decorates a Pool with Prometheus metrics from package metrics:

	pool := workerpool.Instrument(workerpool.NewFixed(4), "shops", metrics.DefaultRegistry)

All pool operations are safe for concurrent use from multiple goroutines.
*/
package workerpool
