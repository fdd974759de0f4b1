/*
Package ratelimit holds the rate limiting primitives.

  - bucket: token bucket limiter allowing bursts up to its capacity

The price finder accepts any bucket.Limiter to throttle shop lookups:

	limiter := bucket.New(5, 5) // 5 lookups/sec, burst 5
	finder, err := shop.NewFinder(shop.FinderConfig{Limiter: limiter})
*/
package ratelimit
