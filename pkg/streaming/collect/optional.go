package collect

import (
	"errors"
	"fmt"
)

// ErrNoValue is returned by Optional.Get when no value is present.
var ErrNoValue = errors.New("collect: no value present")

// Optional holds the result of a reduction that may have seen no elements.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value, or ErrNoValue when it is absent.
func (o Optional[T]) Get() (T, error) {
	if !o.Present {
		var zero T
		return zero, ErrNoValue
	}
	return o.Value, nil
}

// OrElse returns the value if present, otherwise other.
func (o Optional[T]) OrElse(other T) T {
	if !o.Present {
		return other
	}
	return o.Value
}

func (o Optional[T]) String() string {
	if !o.Present {
		return "Optional.empty"
	}
	return fmt.Sprintf("Optional[%v]", o.Value)
}
