package collect

import (
	"strings"
)

// ToList collects elements into a slice in encounter order.
func ToList[T any]() Collector[T, []T, []T] {
	return ToListCollector[T]{}
}

// ToSet collects elements into a set.
func ToSet[T comparable]() Collector[T, map[T]struct{}, map[T]struct{}] {
	return Of[T](
		func() map[T]struct{} { return make(map[T]struct{}) },
		func(set map[T]struct{}, v T) map[T]struct{} {
			set[v] = struct{}{}
			return set
		},
		func(a, b map[T]struct{}) map[T]struct{} {
			for v := range b {
				a[v] = struct{}{}
			}
			return a
		},
		identity[map[T]struct{}],
		Concurrent|Unordered|IdentityFinish,
	)
}

// ToMap collects elements into a map. When two elements share a key the
// later one wins.
func ToMap[T any, K comparable, V any](key func(T) K, value func(T) V) Collector[T, map[K]V, map[K]V] {
	return ToMapMerge(key, value, func(_, later V) V { return later })
}

// ToMapMerge is ToMap with merge deciding the value for duplicate keys.
func ToMapMerge[T any, K comparable, V any](key func(T) K, value func(T) V, merge func(V, V) V) Collector[T, map[K]V, map[K]V] {
	put := func(m map[K]V, k K, v V) {
		if old, ok := m[k]; ok {
			v = merge(old, v)
		}
		m[k] = v
	}
	return Of[T](
		func() map[K]V { return make(map[K]V) },
		func(m map[K]V, v T) map[K]V {
			put(m, key(v), value(v))
			return m
		},
		func(a, b map[K]V) map[K]V {
			for k, v := range b {
				put(a, k, v)
			}
			return a
		},
		identity[map[K]V],
		IdentityFinish,
	)
}

// Joining concatenates strings in encounter order.
func Joining() Collector[string, []string, string] {
	return JoiningWith("", "", "")
}

// JoiningWith concatenates strings separated by sep, between prefix and suffix.
func JoiningWith(sep, prefix, suffix string) Collector[string, []string, string] {
	return Of[string](
		func() []string { return []string{} },
		func(parts []string, v string) []string { return append(parts, v) },
		func(a, b []string) []string { return append(a, b...) },
		func(parts []string) string { return prefix + strings.Join(parts, sep) + suffix },
		0,
	)
}

// Counting counts the elements.
func Counting[T any]() Collector[T, int64, int64] {
	return Of[T](
		func() int64 { return 0 },
		func(n int64, _ T) int64 { return n + 1 },
		func(a, b int64) int64 { return a + b },
		identity[int64],
		Unordered|IdentityFinish,
	)
}

// SummingInt sums mapper over the elements.
func SummingInt[T any](mapper func(T) int) Collector[T, int, int] {
	return Of[T](
		func() int { return 0 },
		func(sum int, v T) int { return sum + mapper(v) },
		func(a, b int) int { return a + b },
		identity[int],
		Unordered|IdentityFinish,
	)
}

// AveragingInt averages mapper over the elements; it yields 0 when there
// are none.
func AveragingInt[T any](mapper func(T) int) Collector[T, IntSummaryStatistics, float64] {
	return CollectingAndThen(SummarizingInt(mapper), IntSummaryStatistics.Average)
}

// SummarizingInt gathers count, sum, min and max of mapper over the elements.
func SummarizingInt[T any](mapper func(T) int) Collector[T, IntSummaryStatistics, IntSummaryStatistics] {
	return Of[T](
		NewIntSummaryStatistics,
		func(stats IntSummaryStatistics, v T) IntSummaryStatistics {
			stats.Accept(mapper(v))
			return stats
		},
		func(a, b IntSummaryStatistics) IntSummaryStatistics {
			a.Combine(b)
			return a
		},
		identity[IntSummaryStatistics],
		Unordered|IdentityFinish,
	)
}

// MaxBy keeps the greatest element according to compare. Among equal
// elements the first one wins.
func MaxBy[T any](compare func(a, b T) int) Collector[T, Optional[T], Optional[T]] {
	return Reducing(func(a, b T) T {
		if compare(b, a) > 0 {
			return b
		}
		return a
	})
}

// MinBy keeps the least element according to compare. Among equal elements
// the first one wins.
func MinBy[T any](compare func(a, b T) int) Collector[T, Optional[T], Optional[T]] {
	return Reducing(func(a, b T) T {
		if compare(b, a) < 0 {
			return b
		}
		return a
	})
}

// Reducing folds the elements with op, starting from the first element.
func Reducing[T any](op func(T, T) T) Collector[T, Optional[T], Optional[T]] {
	return Of[T](
		None[T],
		func(acc Optional[T], v T) Optional[T] {
			if !acc.Present {
				return Some(v)
			}
			return Some(op(acc.Value, v))
		},
		func(a, b Optional[T]) Optional[T] {
			switch {
			case !a.Present:
				return b
			case !b.Present:
				return a
			}
			return Some(op(a.Value, b.Value))
		},
		identity[Optional[T]],
		IdentityFinish,
	)
}

// ReducingWith folds the elements into identity with op.
func ReducingWith[T any](identityValue T, op func(T, T) T) Collector[T, T, T] {
	return ReducingMapped(identityValue, identity[T], op)
}

// ReducingMapped folds mapper of each element into identity with op.
func ReducingMapped[T, U any](identityValue U, mapper func(T) U, op func(U, U) U) Collector[T, U, U] {
	return Of[T](
		func() U { return identityValue },
		func(acc U, v T) U { return op(acc, mapper(v)) },
		op,
		identity[U],
		IdentityFinish,
	)
}

// Mapping applies mapper to each element before handing it to downstream.
func Mapping[T, U, A, R any](mapper func(T) U, downstream Collector[U, A, R]) Collector[T, A, R] {
	return Of[T](
		downstream.Supplier,
		func(acc A, v T) A { return downstream.Accumulator(acc, mapper(v)) },
		downstream.Combiner,
		downstream.Finisher,
		downstream.Characteristics(),
	)
}

// Filtering hands downstream only the elements matching predicate.
func Filtering[T, A, R any](predicate func(T) bool, downstream Collector[T, A, R]) Collector[T, A, R] {
	return Of[T](
		downstream.Supplier,
		func(acc A, v T) A {
			if !predicate(v) {
				return acc
			}
			return downstream.Accumulator(acc, v)
		},
		downstream.Combiner,
		downstream.Finisher,
		downstream.Characteristics(),
	)
}

// CollectingAndThen applies finisher to the result of c.
func CollectingAndThen[T, A, R, RR any](c Collector[T, A, R], finisher func(R) RR) Collector[T, A, RR] {
	return Of[T](
		c.Supplier,
		c.Accumulator,
		c.Combiner,
		func(acc A) RR { return finisher(finish(c, acc)) },
		c.Characteristics()&^IdentityFinish,
	)
}

// GroupingBy groups elements by classifier into slices in encounter order.
func GroupingBy[T any, K comparable](classifier func(T) K) Collector[T, map[K][]T, map[K][]T] {
	return GroupingByWith(classifier, ToList[T]())
}

// GroupingByWith groups elements by classifier and reduces each group with
// downstream.
func GroupingByWith[T any, K comparable, A, R any](classifier func(T) K, downstream Collector[T, A, R]) Collector[T, map[K]A, map[K]R] {
	return Of[T](
		func() map[K]A { return make(map[K]A) },
		func(groups map[K]A, v T) map[K]A {
			k := classifier(v)
			acc, ok := groups[k]
			if !ok {
				acc = downstream.Supplier()
			}
			groups[k] = downstream.Accumulator(acc, v)
			return groups
		},
		func(a, b map[K]A) map[K]A {
			for k, accB := range b {
				if accA, ok := a[k]; ok {
					a[k] = downstream.Combiner(accA, accB)
				} else {
					a[k] = accB
				}
			}
			return a
		},
		func(groups map[K]A) map[K]R {
			result := make(map[K]R, len(groups))
			for k, acc := range groups {
				result[k] = finish(downstream, acc)
			}
			return result
		},
		0,
	)
}

// PartitioningBy splits elements by predicate. The result always holds
// both the true and the false key.
func PartitioningBy[T any](predicate func(T) bool) Collector[T, map[bool][]T, map[bool][]T] {
	return PartitioningByWith(predicate, ToList[T]())
}

// PartitioningByWith splits elements by predicate and reduces each part
// with downstream.
func PartitioningByWith[T, A, R any](predicate func(T) bool, downstream Collector[T, A, R]) Collector[T, map[bool]A, map[bool]R] {
	return Of[T](
		func() map[bool]A {
			return map[bool]A{false: downstream.Supplier(), true: downstream.Supplier()}
		},
		func(parts map[bool]A, v T) map[bool]A {
			k := predicate(v)
			parts[k] = downstream.Accumulator(parts[k], v)
			return parts
		},
		func(a, b map[bool]A) map[bool]A {
			a[false] = downstream.Combiner(a[false], b[false])
			a[true] = downstream.Combiner(a[true], b[true])
			return a
		},
		func(parts map[bool]A) map[bool]R {
			return map[bool]R{
				false: finish(downstream, parts[false]),
				true:  finish(downstream, parts[true]),
			}
		},
		0,
	)
}
