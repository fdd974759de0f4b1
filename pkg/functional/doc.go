// Package functional provides composable predicates and comparators.
//
// Predicates and comparators are plain function types, so any func literal
// of the right shape can be used directly; the methods combine them.
//
//	heavyGreen := functional.Predicate[Apple](IsGreen).And(IsHeavy)
//	byWeight := functional.Comparing(func(a Apple) float64 { return a.Weight })
//	functional.SortBy(inventory, byWeight.Reversed().ThenComparing(byColor))
package functional
