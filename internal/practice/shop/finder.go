package shop

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
	"github.com/jamesp/lambdas/pkg/metrics"
	"github.com/jamesp/lambdas/pkg/ratelimit/bucket"
	"github.com/jamesp/lambdas/pkg/scheduling/future"
	"github.com/jamesp/lambdas/pkg/scheduling/workerpool"
	"github.com/jamesp/lambdas/pkg/streaming/stream"
)

// MaxWorkers bounds the pool of a Finder however many shops it queries.
const MaxWorkers = 100

// FinderConfig configures a Finder.
type FinderConfig struct {
	// Shops to query, in result order. DefaultShops() when empty.
	Shops []*Shop

	// Workers caps the pool size, which is otherwise one worker per shop
	// up to MaxWorkers. Zero means no extra cap.
	Workers int

	// Limiter, when set, throttles every price lookup.
	Limiter bucket.Limiter

	// Metrics, when set, records quote outcomes and latency.
	Metrics *metrics.Registry
}

// Finder asks every shop for a price.
type Finder struct {
	shops   []*Shop
	pool    workerpool.Pool
	limiter bucket.Limiter
	metrics *metrics.Registry
}

// NewFinder creates a Finder with its own fixed worker pool. Close
// releases the pool.
func NewFinder(cfg FinderConfig) (*Finder, error) {
	if cfg.Workers < 0 {
		return nil, lerrors.NewValidationError("shop", "workers", cfg.Workers, "cannot be negative")
	}

	shops := cfg.Shops
	if len(shops) == 0 {
		shops = DefaultShops()
	}
	for i, s := range shops {
		if s == nil {
			return nil, lerrors.NewValidationError("shop", fmt.Sprintf("shops[%d]", i), nil, "cannot be nil")
		}
	}

	workers := min(len(shops), MaxWorkers)
	if cfg.Workers > 0 {
		workers = min(workers, cfg.Workers)
	}

	return &Finder{
		shops:   shops,
		pool:    workerpool.NewFixed(workers),
		limiter: cfg.Limiter,
		metrics: cfg.Metrics,
	}, nil
}

// Workers returns the size of the finder's pool.
func (f *Finder) Workers() int {
	return f.pool.Size()
}

// Close shuts down the worker pool and waits for running lookups.
func (f *Finder) Close() {
	<-f.pool.Shutdown()
}

// quote prices product at s, waiting for the limiter first.
func (f *Finder) quote(ctx context.Context, s *Shop, product string) (Quote, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			f.record(s, "throttled", 0)
			return Quote{}, lerrors.NewOperationError("shop", "quote", err).WithContext(s.Name())
		}
	}

	start := time.Now()
	price, err := s.GetPrice(ctx, product)
	if err != nil {
		f.record(s, "error", time.Since(start))
		return Quote{}, lerrors.NewOperationError("shop", "GetPrice", err).WithContext(s.Name())
	}
	f.record(s, "ok", time.Since(start))
	return Quote{Shop: s.Name(), Price: price}, nil
}

func (f *Finder) record(s *Shop, outcome string, elapsed time.Duration) {
	if f.metrics == nil {
		return
	}
	f.metrics.ShopQuotes.WithLabelValues(s.Name(), outcome).Inc()
	if elapsed > 0 {
		f.metrics.ShopQuoteDuration.WithLabelValues(s.Name()).Observe(elapsed.Seconds())
	}
}

// Quotes asks every shop for a price on the worker pool and returns the
// quotes in shop order once all have answered.
func (f *Finder) Quotes(ctx context.Context, product string) ([]Quote, error) {
	dispatch := func(s *Shop) *future.Future[Quote] {
		return future.SupplyAsyncOn(ctx, f.pool, func(ctx context.Context) (Quote, error) {
			return f.quote(ctx, s, product)
		})
	}

	// Every future is dispatched before the first is joined.
	futures, err := stream.MapTo(stream.FromSlice(f.shops), dispatch).ToSlice(ctx)
	if err != nil {
		return nil, err
	}
	return future.GetAll(ctx, futures)
}

// FindPrices is Quotes formatted as "<shop> price is <price>" lines.
func (f *Finder) FindPrices(ctx context.Context, product string) ([]string, error) {
	quotes, err := f.Quotes(ctx, product)
	if err != nil {
		return nil, err
	}
	return stream.MapTo(stream.FromSlice(quotes), Quote.String).ToSlice(ctx)
}

// FindPricesSequential asks one shop after another.
func (f *Finder) FindPricesSequential(ctx context.Context, product string) ([]string, error) {
	lines := make([]string, 0, len(f.shops))
	for _, s := range f.shops {
		q, err := f.quote(ctx, s, product)
		if err != nil {
			return nil, err
		}
		lines = append(lines, q.String())
	}
	return lines, nil
}

// FindPricesParallel asks every shop at once, one goroutine per shop,
// without the worker pool.
func (f *Finder) FindPricesParallel(ctx context.Context, product string) ([]string, error) {
	lines := make([]string, len(f.shops))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range f.shops {
		i, s := i, s
		g.Go(func() error {
			q, err := f.quote(gctx, s, product)
			if err != nil {
				return err
			}
			lines[i] = q.String()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}
