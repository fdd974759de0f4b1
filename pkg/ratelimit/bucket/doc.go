// Package bucket implements a token bucket rate limiter.
//
// Tokens refill continuously at the configured Limit up to Burst. Allow and
// AllowN never block; Wait and WaitN block until the tokens are due, and give
// up early with errors.ErrRateLimited when that would outlast the context
// deadline. Waiters take their tokens up front, so the bucket may go
// negative and later callers queue behind them.
//
//	limiter, err := bucket.NewSafe(bucket.Every(200*time.Millisecond), 2)
//	if err != nil {
//		return err
//	}
//	if err := limiter.Wait(ctx); err != nil {
//		return err
//	}
//
// MetricsLimiter records allowed and denied events and wait latency.
package bucket
