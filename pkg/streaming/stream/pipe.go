package stream

import "context"

// pipe connects two stages. The consumer asks for each element before the
// producer pulls anything to compute it, so no stage runs ahead of the
// terminal operation. A pipe has exactly one producer goroutine.
type pipe[T any] struct {
	demand chan struct{}
	values chan T
	asked  bool // owned by the producer
}

func newPipe[T any]() *pipe[T] {
	return &pipe[T]{
		demand: make(chan struct{}),
		values: make(chan T),
	}
}

// recv asks for the next element and waits for it. It reports false once
// the producer has closed the pipe.
func (p *pipe[T]) recv(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case p.demand <- struct{}{}:
	case v, ok := <-p.values: // the producer finished without being asked
		return v, ok, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}

	select {
	case v, ok := <-p.values:
		return v, ok, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// ready blocks until the consumer has asked for an element. Producers call
// it before pulling their own input.
func (p *pipe[T]) ready(ctx context.Context) error {
	if p.asked {
		return nil
	}
	select {
	case <-p.demand:
		p.asked = true
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// send delivers v against the pending request, waiting for one if needed.
func (p *pipe[T]) send(ctx context.Context, v T) error {
	if err := p.ready(ctx); err != nil {
		return err
	}
	select {
	case p.values <- v:
		p.asked = false
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// forward is send followed by ready: after handing v over it waits for the
// next request, so a caller looping over its own input pulls nothing early.
func (p *pipe[T]) forward(ctx context.Context, v T) error {
	if err := p.send(ctx, v); err != nil {
		return err
	}
	return p.ready(ctx)
}

// close ends the pipe; the consumer's pending or next recv reports false.
func (p *pipe[T]) close() {
	close(p.values)
}
