// Package shop simulates slow price lookups and finds the best price
// across several shops with futures on a fixed worker pool.
package shop

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	lctx "github.com/jamesp/lambdas/pkg/common/context"
	"github.com/jamesp/lambdas/pkg/common/validation"
	"github.com/jamesp/lambdas/pkg/scheduling/future"
)

// DefaultDelay is how long a shop takes to compute a price.
const DefaultDelay = time.Second

// Shop computes prices after a simulated remote call.
type Shop struct {
	name  string
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Shop created by New.
type Option func(*Shop)

// WithDelay sets the simulated latency of each price lookup.
func WithDelay(d time.Duration) Option {
	return func(s *Shop) { s.delay = d }
}

// WithSeed makes the shop's prices reproducible.
func WithSeed(seed int64) Option {
	return func(s *Shop) { s.rng = rand.New(rand.NewSource(seed)) }
}

// New creates a shop with the default delay and a time-seeded price source.
func New(name string, opts ...Option) *Shop {
	s := &Shop{
		name:  name,
		delay: DefaultDelay,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the shop's name.
func (s *Shop) Name() string {
	return s.name
}

// GetPrice blocks for the shop's delay, then prices product from its first
// two bytes. Products shorter than two bytes cannot be priced.
func (s *Shop) GetPrice(ctx context.Context, product string) (float64, error) {
	if err := validation.ValidateMinLength("shop", "product", product, 2); err != nil {
		return 0, err
	}
	if err := lctx.Sleep(ctx, s.delay); err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}

	s.mu.Lock()
	r := s.rng.Float64()
	s.mu.Unlock()

	return r*float64(product[0]) + float64(product[1]), nil
}

// GetPriceAsync starts GetPrice on its own goroutine and returns at once.
func (s *Shop) GetPriceAsync(ctx context.Context, product string) *future.Future[float64] {
	return future.SupplyAsync(ctx, func(ctx context.Context) (float64, error) {
		return s.GetPrice(ctx, product)
	})
}

// Quote is one shop's price for a product.
type Quote struct {
	Shop  string
	Price float64
}

// String formats the quote as "<shop> price is <price>".
func (q Quote) String() string {
	return fmt.Sprintf("%s price is %.2f", q.Shop, q.Price)
}

// DefaultShopNames are the shops a Finder queries by default.
var DefaultShopNames = []string{"BestPrice", "LetsSaveBig", "MyFavoriteShop", "BuyItAll"}

// DefaultShops creates the default shops with opts applied to each.
func DefaultShops(opts ...Option) []*Shop {
	shops := make([]*Shop, 0, len(DefaultShopNames))
	for _, name := range DefaultShopNames {
		shops = append(shops, New(name, opts...))
	}
	return shops
}
