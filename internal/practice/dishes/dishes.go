// Package dishes answers questions about a restaurant menu, each with a
// single stream pipeline.
package dishes

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jamesp/lambdas/pkg/functional"
	"github.com/jamesp/lambdas/pkg/streaming/collect"
	"github.com/jamesp/lambdas/pkg/streaming/stream"
)

func name(d Dish) string                         { return d.Name }
func calories(d Dish) int                        { return d.Calories }
func dishType(d Dish) DishType                   { return d.Type }
func isVegetarian(d Dish) bool                   { return d.Vegetarian }
func add(a, b int) int                           { return a + b }
func split(word string) []string                 { return strings.Split(word, "") }
func length(word string) int                     { return len(word) }
func menuStream(menu []Dish) stream.Stream[Dish] { return stream.FromSlice(menu) }

var byCalories = functional.Comparing(calories)

// ThreeHighCaloricDishNames returns the names of the first three dishes above 300 calories.
func ThreeHighCaloricDishNames(ctx context.Context, menu []Dish) ([]string, error) {
	high := menuStream(menu).Filter(func(d Dish) bool { return d.Calories > 300 })
	return stream.MapTo(high, name).Limit(3).ToSlice(ctx)
}

// ThreeHighCaloricDishNamesDebug is ThreeHighCaloricDishNames with every
// filter and map call logged. The log shows that each dish is filtered and
// mapped before the next is pulled, and that nothing past the third name is
// touched.
func ThreeHighCaloricDishNamesDebug(ctx context.Context, logger zerolog.Logger, menu []Dish) ([]string, error) {
	high := menuStream(menu).Filter(func(d Dish) bool {
		logger.Debug().Str("dish", d.Name).Msg("filtering")
		return d.Calories > 300
	})
	names := stream.MapTo(high, func(d Dish) string {
		logger.Debug().Str("dish", d.Name).Msg("mapping")
		return d.Name
	})
	return names.Limit(3).ToSlice(ctx)
}

// DishNames returns every dish name in menu order.
func DishNames(ctx context.Context, menu []Dish) ([]string, error) {
	return stream.MapTo(menuStream(menu), name).ToSlice(ctx)
}

// DishNameLengths returns the length of each dish name in menu order.
func DishNameLengths(ctx context.Context, menu []Dish) ([]int, error) {
	return stream.MapTo(stream.MapTo(menuStream(menu), name), length).ToSlice(ctx)
}

// UniqueCharacters lists the distinct characters of all dish names in the
// order they first appear.
func UniqueCharacters(ctx context.Context, menu []Dish) ([]string, error) {
	chars := stream.FlatMapSlice(stream.MapTo(menuStream(menu), name), split)
	return chars.Distinct().ToSlice(ctx)
}

// NumberOfDishes counts the dishes on the menu.
func NumberOfDishes(ctx context.Context, menu []Dish) (int64, error) {
	return collect.Collect(ctx, menuStream(menu), collect.Counting[Dish]())
}

// MaxCaloricDish returns the dish with the most calories, empty for an empty menu.
func MaxCaloricDish(ctx context.Context, menu []Dish) (collect.Optional[Dish], error) {
	return collect.Collect(ctx, menuStream(menu), collect.MaxBy[Dish](byCalories))
}

// MaxCaloricDishUsingReduce finds the most caloric dish by pairwise reduction.
func MaxCaloricDishUsingReduce(ctx context.Context, menu []Dish) (collect.Optional[Dish], error) {
	return collect.Collect(ctx, menuStream(menu), collect.Reducing(func(d1, d2 Dish) Dish {
		if d1.Calories > d2.Calories {
			return d1
		}
		return d2
	}))
}

// TotalCalories sums the calories of every dish.
func TotalCalories(ctx context.Context, menu []Dish) (int, error) {
	return collect.Collect(ctx, menuStream(menu), collect.SummingInt(calories))
}

// TotalCaloriesUsingReduce sums the calories by mapping and reducing from zero.
func TotalCaloriesUsingReduce(ctx context.Context, menu []Dish) (int, error) {
	return collect.Collect(ctx, menuStream(menu), collect.ReducingMapped(0, calories, add))
}

// CaloriesSummary returns count, sum, min, max and average calories.
func CaloriesSummary(ctx context.Context, menu []Dish) (collect.IntSummaryStatistics, error) {
	return collect.Collect(ctx, menuStream(menu), collect.SummarizingInt(calories))
}

// ShortMenu concatenates all dish names without a separator.
func ShortMenu(ctx context.Context, menu []Dish) (string, error) {
	return collect.Collect(ctx, stream.MapTo(menuStream(menu), name), collect.Joining())
}

// ShortMenuDelimited joins all dish names with ", ".
func ShortMenuDelimited(ctx context.Context, menu []Dish) (string, error) {
	return collect.Collect(ctx, stream.MapTo(menuStream(menu), name), collect.JoiningWith(", ", "", ""))
}

// DishesByType groups the menu by dish type.
func DishesByType(ctx context.Context, menu []Dish) (map[DishType][]Dish, error) {
	return collect.Collect(ctx, menuStream(menu), collect.GroupingBy(dishType))
}

// DishesByCaloricLevel groups the menu by caloric level.
func DishesByCaloricLevel(ctx context.Context, menu []Dish) (map[CaloricLevel][]Dish, error) {
	return collect.Collect(ctx, menuStream(menu), collect.GroupingBy(LevelOf))
}

// DishesByTypeCaloricLevel groups by dish type, then by caloric level.
func DishesByTypeCaloricLevel(ctx context.Context, menu []Dish) (map[DishType]map[CaloricLevel][]Dish, error) {
	return collect.Collect(ctx, menuStream(menu),
		collect.GroupingByWith(dishType, collect.GroupingBy(LevelOf)))
}

// TypesCount counts the dishes of each type.
func TypesCount(ctx context.Context, menu []Dish) (map[DishType]int64, error) {
	return collect.Collect(ctx, menuStream(menu),
		collect.GroupingByWith(dishType, collect.Counting[Dish]()))
}

// MostCaloricByType unwraps the per-type maximum; a group always holds at
// least one dish.
func MostCaloricByType(ctx context.Context, menu []Dish) (map[DishType]Dish, error) {
	mostCaloric := collect.CollectingAndThen(collect.MaxBy[Dish](byCalories),
		func(o collect.Optional[Dish]) Dish { return o.Value })
	return collect.Collect(ctx, menuStream(menu), collect.GroupingByWith(dishType, mostCaloric))
}

// CaloricLevelsByType lists the caloric levels present within each type.
func CaloricLevelsByType(ctx context.Context, menu []Dish) (map[DishType]map[CaloricLevel]struct{}, error) {
	levels := collect.Mapping(LevelOf, collect.ToSet[CaloricLevel]())
	return collect.Collect(ctx, menuStream(menu), collect.GroupingByWith(dishType, levels))
}

// PartitionedMenu splits the menu into vegetarian (true) and other dishes.
func PartitionedMenu(ctx context.Context, menu []Dish) (map[bool][]Dish, error) {
	return collect.Collect(ctx, menuStream(menu), collect.PartitioningBy(isVegetarian))
}

// VegetarianDishes returns the vegetarian dishes in menu order.
func VegetarianDishes(ctx context.Context, menu []Dish) ([]Dish, error) {
	partitioned, err := PartitionedMenu(ctx, menu)
	if err != nil {
		return nil, err
	}
	return partitioned[true], nil
}

// VegetarianDishesByType partitions by vegetarian, then groups each side by type.
func VegetarianDishesByType(ctx context.Context, menu []Dish) (map[bool]map[DishType][]Dish, error) {
	return collect.Collect(ctx, menuStream(menu),
		collect.PartitioningByWith(isVegetarian, collect.GroupingBy(dishType)))
}

// ToListByHand collects the menu with the hand-written list collector.
func ToListByHand(ctx context.Context, menu []Dish) ([]Dish, error) {
	return collect.Collect[Dish, []Dish, []Dish](ctx, menuStream(menu), collect.ToListCollector[Dish]{})
}
