package stream

import (
	"context"
	"slices"
)

// Every operation calls output.ready before pulling input, so it reads only
// what its consumer has asked for.

// filterOperation filters elements based on a predicate.
type filterOperation[T any] struct {
	predicate func(T) bool
}

func (f *filterOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	for {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}
		if !f.predicate(value) {
			continue
		}
		if err := output.send(ctx, value); err != nil {
			return err
		}
	}
}

// mapOperation transforms elements using a mapper function.
type mapOperation[T any] struct {
	mapper func(T) T
}

func (m *mapOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	for {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}
		if err := output.send(ctx, m.mapper(value)); err != nil {
			return err
		}
	}
}

// flatMapOperation flattens nested streams.
type flatMapOperation[T any] struct {
	mapper func(T) Stream[T]
}

func (f *flatMapOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	forward := func(v T) error { return output.forward(ctx, v) }

	for {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}
		if err := drain(ctx, f.mapper(value), forward); err != nil {
			return err
		}
	}
}

// distinctOperation removes duplicate elements.
type distinctOperation[T any] struct{}

func (d *distinctOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	seen := make(map[any]struct{})

	for {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}

		key := any(value)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if err := output.send(ctx, value); err != nil {
			return err
		}
	}
}

// sortOperation sorts all elements (requires collecting all elements first).
type sortOperation[T any] struct {
	compare func(a, b T) int
}

func (s *sortOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	if err := output.ready(ctx); err != nil {
		return err
	}

	elements := make([]T, 0, 64)
	for {
		value, ok, err := input.recv(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		elements = append(elements, value)
	}

	slices.SortStableFunc(elements, s.compare)

	for _, value := range elements {
		if err := output.send(ctx, value); err != nil {
			return err
		}
	}
	return nil
}

// skipOperation skips the first n elements.
type skipOperation[T any] struct {
	count int64
}

func (s *skipOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	var skipped int64
	for {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}
		if skipped < s.count {
			skipped++
			continue
		}
		if err := output.send(ctx, value); err != nil {
			return err
		}
	}
}

// limitOperation limits the number of elements. Returning closes the output,
// which lets the consumer finish and cancel the stages still upstream.
type limitOperation[T any] struct {
	maxSize int64
}

func (l *limitOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	for count := int64(0); count < l.maxSize; count++ {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}
		if err := output.send(ctx, value); err != nil {
			return err
		}
	}
	return nil
}

// peekOperation performs an action on each element without modifying the stream.
type peekOperation[T any] struct {
	action func(T)
}

func (p *peekOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	for {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}
		p.action(value)
		if err := output.send(ctx, value); err != nil {
			return err
		}
	}
}

type takeWhileOperation[T any] struct {
	predicate func(T) bool
}

func (t *takeWhileOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	for {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}
		if !t.predicate(value) {
			return nil
		}
		if err := output.send(ctx, value); err != nil {
			return err
		}
	}
}

type dropWhileOperation[T any] struct {
	predicate func(T) bool
}

func (d *dropWhileOperation[T]) apply(ctx context.Context, input, output *pipe[T]) error {
	dropping := true
	for {
		if err := output.ready(ctx); err != nil {
			return err
		}
		value, ok, err := input.recv(ctx)
		if err != nil || !ok {
			return err
		}
		if dropping && d.predicate(value) {
			continue
		}
		dropping = false
		if err := output.send(ctx, value); err != nil {
			return err
		}
	}
}
