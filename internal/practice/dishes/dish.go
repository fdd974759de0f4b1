package dishes

import (
	_ "embed"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
)

// DishType is the kind of main ingredient of a dish.
type DishType string

// Dish types as they appear in the menu document.
const (
	Meat  DishType = "MEAT"
	Fish  DishType = "FISH"
	Other DishType = "OTHER"
)

// Dish is one entry on the menu.
type Dish struct {
	Name       string   `yaml:"name"`
	Calories   int      `yaml:"calories"`
	Vegetarian bool     `yaml:"vegetarian"`
	Type       DishType `yaml:"type"`
}

// String returns the dish name.
func (d Dish) String() string {
	return d.Name
}

// CaloricLevel buckets dishes by calories.
type CaloricLevel int

// Caloric levels from lightest to heaviest.
const (
	Diet CaloricLevel = iota
	Normal
	Fat
)

// String returns the upper-case level name.
func (l CaloricLevel) String() string {
	switch l {
	case Diet:
		return "DIET"
	case Normal:
		return "NORMAL"
	case Fat:
		return "FAT"
	}
	return fmt.Sprintf("CaloricLevel(%d)", int(l))
}

// LevelOf classifies a dish: up to 400 calories is Diet, up to 700 Normal.
func LevelOf(d Dish) CaloricLevel {
	switch {
	case d.Calories <= 400:
		return Diet
	case d.Calories <= 700:
		return Normal
	default:
		return Fat
	}
}

//go:embed menu.yaml
var menuYAML []byte

var menu = mustLoad(menuYAML)

// Menu returns a copy of the nine-dish menu.
func Menu() []Dish {
	out := make([]Dish, len(menu))
	copy(out, menu)
	return out
}

type menuDocument struct {
	Dishes []Dish `yaml:"dishes"`
}

// LoadMenu decodes a YAML menu document.
func LoadMenu(r io.Reader) ([]Dish, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseMenu(buf)
}

func parseMenu(buf []byte) ([]Dish, error) {
	doc := menuDocument{}
	if err := yaml.UnmarshalStrict(buf, &doc); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	for i, d := range doc.Dishes {
		field := fmt.Sprintf("dishes[%d]", i)
		switch {
		case d.Name == "":
			return nil, lerrors.NewValidationError("dishes", field+".name", d.Name, "cannot be empty")
		case d.Calories < 0:
			return nil, lerrors.NewValidationError("dishes", field+".calories", d.Calories, "cannot be negative")
		case d.Type != Meat && d.Type != Fish && d.Type != Other:
			return nil, lerrors.NewValidationError("dishes", field+".type", d.Type, "unknown dish type").
				WithHint("use MEAT, FISH or OTHER")
		}
	}
	return doc.Dishes, nil
}

func mustLoad(buf []byte) []Dish {
	dishes, err := parseMenu(buf)
	if err != nil {
		panic(err)
	}
	return dishes
}
