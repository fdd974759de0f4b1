package scheduler_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jamesp/lambdas/pkg/scheduling/scheduler"
	"github.com/jamesp/lambdas/pkg/scheduling/workerpool"
)

func Example() {
	s := scheduler.NewWithConfig(scheduler.Config{TickInterval: 10 * time.Millisecond})
	if err := s.Start(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ran := make(chan string, 1)
	task := workerpool.TaskFunc(func(ctx context.Context) error {
		ran <- "quotes refreshed"
		return nil
	})

	if err := s.ScheduleAfter("refresh", task, 20*time.Millisecond); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(<-ran)
	<-s.Stop()
	// Output: quotes refreshed
}

func ExampleValidateCronExpression() {
	for _, expr := range []string{"*/10 * * * * *", "@every 1m", "* * *"} {
		fmt.Println(expr, scheduler.ValidateCronExpression(expr) == nil)
	}
	// Output:
	// */10 * * * * * true
	// @every 1m true
	// * * * false
}
