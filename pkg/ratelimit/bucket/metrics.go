package bucket

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jamesp/lambdas/pkg/metrics"
)

// MetricsLimiter wraps a Limiter with Prometheus metrics collection.
type MetricsLimiter struct {
	limiter  Limiter
	name     string
	registry atomic.Pointer[metrics.Registry] // nil while disabled
}

// NewWithMetrics creates a full bucket limiter whose decisions are
// recorded in a private Prometheus registry.
func NewWithMetrics(rate Limit, burst int, name string) (*MetricsLimiter, error) {
	return NewWithConfigAndMetrics(Config{
		Rate:          rate,
		Burst:         burst,
		InitialTokens: -1,
	}, name, metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
}

// NewWithConfigAndMetrics creates a limiter from config with metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (*MetricsLimiter, error) {
	limiter, err := NewWithConfigSafe(config)
	if err != nil {
		return nil, err
	}
	return Instrument(limiter, name, metrics.NewFromConfig(metricsConfig)), nil
}

// Instrument wraps limiter so that its decisions are recorded in registry
// under name. A nil registry records nothing.
func Instrument(limiter Limiter, name string, registry *metrics.Registry) *MetricsLimiter {
	ml := &MetricsLimiter{limiter: limiter, name: name}
	if registry != nil {
		ml.registry.Store(registry)
	}
	return ml
}

func (ml *MetricsLimiter) record(n int, allowed bool) {
	r := ml.registry.Load()
	if r == nil {
		return
	}
	if allowed {
		r.RateLimitAllowed.WithLabelValues(ml.name).Add(float64(n))
	} else {
		r.RateLimitDenied.WithLabelValues(ml.name).Add(float64(n))
	}
}

// Allow reports whether an event may happen now.
func (ml *MetricsLimiter) Allow() bool {
	return ml.AllowN(1)
}

// AllowN reports whether n events may happen now.
func (ml *MetricsLimiter) AllowN(n int) bool {
	allowed := ml.limiter.AllowN(n)
	ml.record(n, allowed)
	return allowed
}

// Wait blocks until an event can happen.
func (ml *MetricsLimiter) Wait(ctx context.Context) error {
	return ml.WaitN(ctx, 1)
}

// WaitN blocks until n events can happen and records the time spent.
func (ml *MetricsLimiter) WaitN(ctx context.Context, n int) error {
	start := time.Now()
	err := ml.limiter.WaitN(ctx, n)

	if r := ml.registry.Load(); r != nil {
		r.RateLimitWaitTime.WithLabelValues(ml.name).Observe(time.Since(start).Seconds())
	}
	ml.record(n, err == nil)
	return err
}

func (ml *MetricsLimiter) Limit() Limit    { return ml.limiter.Limit() }
func (ml *MetricsLimiter) Burst() int      { return ml.limiter.Burst() }
func (ml *MetricsLimiter) Tokens() float64 { return ml.limiter.Tokens() }

// EnableMetrics records into the registry described by config, or
// disables recording when config is disabled.
func (ml *MetricsLimiter) EnableMetrics(config metrics.Config) error {
	ml.registry.Store(metrics.NewFromConfig(config))
	return nil
}

// DisableMetrics stops recording.
func (ml *MetricsLimiter) DisableMetrics() {
	ml.registry.Store(nil)
}

// MetricsEnabled reports whether decisions are being recorded.
func (ml *MetricsLimiter) MetricsEnabled() bool {
	return ml.registry.Load() != nil
}

var (
	_ Limiter                = (*MetricsLimiter)(nil)
	_ metrics.Instrumentable = (*MetricsLimiter)(nil)
)
