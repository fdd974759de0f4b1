package bucket

import (
	"context"
	"fmt"
	"math"
	"time"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
)

func (tb *tokenBucket) Allow() bool {
	return tb.AllowN(1)
}

func (tb *tokenBucket) AllowN(n int) bool {
	_, ok := tb.take(tb.clock.Now(), n, 0)
	return ok
}

func (tb *tokenBucket) Wait(ctx context.Context) error {
	return tb.WaitN(ctx, 1)
}

func (tb *tokenBucket) WaitN(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := tb.clock.Now()
	maxWait := time.Duration(math.MaxInt64)
	if deadline, ok := ctx.Deadline(); ok {
		maxWait = deadline.Sub(now)
	}

	delay, ok := tb.take(now, n, maxWait)
	if !ok {
		return fmt.Errorf("bucket: %d tokens not available in time: %w", n, lerrors.ErrRateLimited)
	}
	if delay <= 0 {
		return nil
	}

	var fire <-chan time.Time
	if tc, ok := tb.clock.(TimerClock); ok {
		fire = tc.After(delay)
	} else {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		fire = timer.C
	}

	select {
	case <-fire:
		return nil
	case <-ctx.Done():
		tb.refund(n)
		return ctx.Err()
	}
}

func (tb *tokenBucket) Limit() Limit {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.limit
}

func (tb *tokenBucket) Burst() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.burst
}

func (tb *tokenBucket) Tokens() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.advance(tb.clock.Now())
	return tb.tokens
}

// take removes n tokens if they are available within maxWait and returns
// how long the caller must wait for them. Tokens may go negative; the
// deficit is the queue of waiters ahead of the next caller.
func (tb *tokenBucket) take(now time.Time, n int, maxWait time.Duration) (time.Duration, bool) {
	if n <= 0 {
		return 0, true
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	if tb.limit == Inf {
		return 0, true
	}
	if n > tb.burst {
		return 0, false
	}

	tb.advance(now)
	need := float64(n) - tb.tokens
	if need <= 0 {
		tb.tokens -= float64(n)
		return 0, true
	}
	if tb.limit == 0 {
		return 0, false
	}

	wait := time.Duration(need / float64(tb.limit) * float64(time.Second))
	if wait > maxWait {
		return 0, false
	}
	tb.tokens -= float64(n)
	return wait, true
}

// refund returns tokens taken by a waiter that gave up.
func (tb *tokenBucket) refund(n int) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.advance(tb.clock.Now())
	tb.tokens = math.Min(tb.tokens+float64(n), float64(tb.burst))
}

// advance refills the bucket for the time elapsed since the last update.
func (tb *tokenBucket) advance(now time.Time) {
	switch {
	case tb.limit == Inf:
		tb.tokens = float64(tb.burst)
	case tb.limit > 0:
		if elapsed := now.Sub(tb.lastUpdate); elapsed > 0 {
			tb.tokens = math.Min(tb.tokens+elapsed.Seconds()*float64(tb.limit), float64(tb.burst))
		}
	}
	if now.After(tb.lastUpdate) {
		tb.lastUpdate = now
	}
}
