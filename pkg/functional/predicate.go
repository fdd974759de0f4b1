package functional

// Predicate reports whether a value satisfies a condition.
type Predicate[T any] func(T) bool

// Test evaluates p on v.
func (p Predicate[T]) Test(v T) bool {
	return p(v)
}

// And returns a predicate matching values that satisfy both p and other.
// other is not evaluated when p fails.
func (p Predicate[T]) And(other Predicate[T]) Predicate[T] {
	return func(v T) bool { return p(v) && other(v) }
}

// Or returns a predicate matching values that satisfy p or other.
// other is not evaluated when p holds.
func (p Predicate[T]) Or(other Predicate[T]) Predicate[T] {
	return func(v T) bool { return p(v) || other(v) }
}

// Negate returns the logical negation of p.
func (p Predicate[T]) Negate() Predicate[T] {
	return func(v T) bool { return !p(v) }
}

// Not returns the logical negation of p.
func Not[T any](p Predicate[T]) Predicate[T] {
	return p.Negate()
}

// Filter returns the elements of items matching p, in order.
func Filter[T any](items []T, p Predicate[T]) []T {
	var result []T
	for _, v := range items {
		if p(v) {
			result = append(result, v)
		}
	}
	return result
}
