package functional

import (
	"cmp"
	"slices"
)

// Comparator orders two values: negative when a < b, zero when equal,
// positive when a > b.
type Comparator[T any] func(a, b T) int

// NaturalOrder compares ordered values with cmp.Compare.
func NaturalOrder[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Comparing orders values by the natural order of key.
func Comparing[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// ComparingFunc orders values by key using keyCompare.
func ComparingFunc[T, K any](key func(T) K, keyCompare func(a, b K) int) Comparator[T] {
	return func(a, b T) int { return keyCompare(key(a), key(b)) }
}

// Compare evaluates c.
func (c Comparator[T]) Compare(a, b T) int {
	return c(a, b)
}

// Reversed returns the reverse ordering of c.
func (c Comparator[T]) Reversed() Comparator[T] {
	return func(a, b T) int { return c(b, a) }
}

// ThenComparing breaks ties of c with next.
func (c Comparator[T]) ThenComparing(next Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		if r := c(a, b); r != 0 {
			return r
		}
		return next(a, b)
	}
}

// SortBy sorts items in place by c. The sort is stable.
func SortBy[T any](items []T, c Comparator[T]) {
	slices.SortStableFunc(items, c)
}
