// Package scheduler runs workerpool tasks at given times, at fixed intervals
// or on cron schedules.
//
//	s := scheduler.New()
//	if err := s.ScheduleCron("quotes", "*/10 * * * * *", task); err != nil {
//		return err
//	}
//	if err := s.Start(); err != nil {
//		return err
//	}
//	defer func() { <-s.Stop() }()
//
// Cron expressions have six fields with seconds first and are parsed with
// github.com/robfig/cron/v3. Descriptors such as "@every 30s", "@hourly" and
// "@daily" are accepted too. ValidateCronExpression checks an expression
// without scheduling anything.
//
// The scheduler checks for due tasks every TickInterval (50ms by default)
// and submits them to its worker pool. Without a configured pool it creates a
// fixed pool of four workers and shuts it down on Stop. Task ids are unique;
// scheduling a taken id fails until the task is canceled.
//
// Invalid arguments return a *errors.ValidationError from pkg/common/errors.
package scheduler
