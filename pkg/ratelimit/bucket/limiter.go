package bucket

import (
	"context"
	"math"
	"sync"
	"time"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
)

// Limit is the number of tokens added to the bucket per second.
// A zero Limit never refills; Inf never limits.
type Limit float64

// Inf is the infinite rate limit; it allows all events.
var Inf = Limit(math.Inf(1))

// Every converts a minimum interval between events to a Limit.
func Every(interval time.Duration) Limit {
	if interval <= 0 {
		return Inf
	}
	return Limit(time.Second) / Limit(interval)
}

// Limiter throttles events with a token bucket: each event takes a token,
// tokens refill at Limit per second up to Burst.
type Limiter interface {
	// Allow reports whether one event may happen now. It does not block.
	Allow() bool

	// AllowN reports whether n events may happen now and takes their
	// tokens if so. It does not block.
	AllowN(n int) bool

	// Wait blocks until one event may happen.
	Wait(ctx context.Context) error

	// WaitN blocks until n events may happen. It fails with ErrRateLimited
	// when n can never be satisfied or when the wait would outlast the
	// context deadline, and with the context error on cancellation.
	WaitN(ctx context.Context, n int) error

	Limit() Limit
	Burst() int

	// Tokens returns the tokens available now. It is negative while
	// waiters hold tokens that have not refilled yet.
	Tokens() float64
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// TimerClock is a Clock that also drives the waits in Wait and WaitN.
// A Clock without After refills tokens on its own time but Wait sleeps
// on a real timer.
type TimerClock interface {
	Clock
	After(d time.Duration) <-chan time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Config holds configuration options for creating a new Limiter.
type Config struct {
	// Rate is the number of tokens added per second.
	Rate Limit

	// Burst is the maximum number of tokens that can be stored.
	Burst int

	// Clock provides the current time. If nil, SystemClock is used.
	// If it also implements TimerClock, Wait blocks on its After.
	Clock Clock

	// InitialTokens is the number of tokens to start with.
	// If negative, the bucket starts full.
	InitialTokens int
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Rate < 0 || math.IsNaN(float64(c.Rate)) {
		return lerrors.NewValidationError("bucket", "rate", c.Rate, "rate cannot be negative").
			WithHint("use 0 for a bucket that never refills or Inf for no limit")
	}
	if c.Burst <= 0 {
		return lerrors.NewValidationError("bucket", "burst", c.Burst, "burst must be positive").
			WithHint("burst is the number of events allowed back to back")
	}
	if c.InitialTokens > c.Burst {
		return lerrors.NewValidationError("bucket", "initial_tokens", c.InitialTokens, "cannot exceed burst")
	}
	return nil
}

type tokenBucket struct {
	mu         sync.Mutex
	limit      Limit
	burst      int
	tokens     float64
	lastUpdate time.Time
	clock      Clock
}

// NewSafe creates a full bucket refilling at rate tokens per second.
func NewSafe(rate Limit, burst int) (Limiter, error) {
	return NewWithConfigSafe(Config{
		Rate:          rate,
		Burst:         burst,
		InitialTokens: -1,
	})
}

// New is NewSafe that panics on invalid parameters.
func New(rate Limit, burst int) Limiter {
	l, err := NewSafe(rate, burst)
	if err != nil {
		panic(err)
	}
	return l
}

// NewWithConfigSafe creates a Limiter from config.
func NewWithConfigSafe(config Config) (Limiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}

	tokens := float64(config.InitialTokens)
	if config.InitialTokens < 0 {
		tokens = float64(config.Burst)
	}

	return &tokenBucket{
		limit:      config.Rate,
		burst:      config.Burst,
		tokens:     tokens,
		lastUpdate: config.Clock.Now(),
		clock:      config.Clock,
	}, nil
}
