// Package apples passes behaviour as values: predicates pick apples and
// comparators order them.
package apples

import (
	"fmt"

	"github.com/jamesp/lambdas/pkg/functional"
)

// Apple is an apple with a color and a weight.
type Apple struct {
	Color  string
	Weight float64
}

// String formats the apple with its color and weight.
func (a Apple) String() string {
	return fmt.Sprintf("Apple{color=%s, weight=%.1f}", a.Color, a.Weight)
}

// Inventory returns the two-apple inventory.
func Inventory() []Apple {
	return []Apple{
		{Color: "red", Weight: 1.1},
		{Color: "green", Weight: 1.5},
	}
}

// HeavyWeight is the weight above which an apple counts as heavy.
const HeavyWeight = 150

// Predicates over apples.
var (
	IsGreen functional.Predicate[Apple] = func(a Apple) bool { return a.Color == "green" }
	IsHeavy functional.Predicate[Apple] = func(a Apple) bool { return a.Weight > HeavyWeight }
)

// ByWeight orders apples from lightest to heaviest.
var ByWeight = functional.Comparing(func(a Apple) float64 { return a.Weight })

// FilterApples returns the apples of inventory that satisfy p.
func FilterApples(inventory []Apple, p functional.Predicate[Apple]) []Apple {
	return functional.Filter(inventory, p)
}

// SortByWeight sorts inventory in place, lightest first.
func SortByWeight(inventory []Apple) {
	functional.SortBy(inventory, ByWeight)
}
