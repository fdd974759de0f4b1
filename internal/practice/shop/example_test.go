package shop_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jamesp/lambdas/internal/practice/shop"
)

func ExampleFinder_FindPrices() {
	finder, err := shop.NewFinder(shop.FinderConfig{
		Shops: shop.DefaultShops(shop.WithDelay(10*time.Millisecond), shop.WithSeed(7)),
	})
	if err != nil {
		panic(err)
	}
	defer finder.Close()

	lines, err := finder.FindPrices(context.Background(), "my favorite product")
	if err != nil {
		panic(err)
	}
	fmt.Println(len(lines), "quotes, first from", lines[0][:len("BestPrice")])

	// Output: 4 quotes, first from BestPrice
}
