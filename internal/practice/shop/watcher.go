package shop

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
	"github.com/jamesp/lambdas/pkg/common/validation"
	"github.com/jamesp/lambdas/pkg/scheduling/scheduler"
	"github.com/jamesp/lambdas/pkg/scheduling/workerpool"
)

const watchTaskID = "pricewatch"

// Watcher asks a Finder for quotes on a cron schedule and logs them.
type Watcher struct {
	finder   *Finder
	product  string
	schedule string
	sched    scheduler.Scheduler
	logger   zerolog.Logger

	mu      sync.Mutex
	latest  []Quote
	rounds  int
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	stopped bool
}

// NewWatcher validates product and the six-field cron schedule.
func NewWatcher(finder *Finder, product, schedule string, logger zerolog.Logger) (*Watcher, error) {
	if finder == nil {
		return nil, lerrors.NewValidationError("shop", "finder", nil, "cannot be nil")
	}
	if err := validation.ValidateMinLength("shop", "product", product, 2); err != nil {
		return nil, err
	}
	if err := scheduler.ValidateCronExpression(schedule); err != nil {
		return nil, err
	}

	return &Watcher{
		finder:   finder,
		product:  product,
		schedule: schedule,
		sched:    scheduler.NewWithConfig(scheduler.Config{Name: watchTaskID, TickInterval: 100 * time.Millisecond}),
		logger:   logger.With().Str("product", product).Logger(),
	}, nil
}

// Start schedules the quote rounds. Rounds stop when ctx ends or Stop is
// called. A stopped Watcher cannot be started again.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return lerrors.ErrClosed
	}
	if w.running {
		return nil
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	if err := w.sched.ScheduleCron(watchTaskID, w.schedule, workerpool.TaskFunc(w.round)); err != nil {
		w.cancel()
		return err
	}
	if err := w.sched.Start(); err != nil {
		w.sched.Cancel(watchTaskID)
		w.cancel()
		return err
	}
	w.running = true

	if next, ok := w.sched.Next(watchTaskID); ok {
		w.logger.Info().Str("schedule", w.schedule).Time("next", next).Msg("price watch started")
	}
	return nil
}

func (w *Watcher) round(taskCtx context.Context) error {
	w.mu.Lock()
	watchCtx := w.ctx
	w.mu.Unlock()

	ctx, cancel := context.WithCancel(taskCtx)
	defer cancel()
	defer context.AfterFunc(watchCtx, cancel)()

	start := time.Now()
	quotes, err := w.finder.Quotes(ctx, w.product)
	if err != nil {
		w.logger.Error().Err(err).Bool("retryable", lerrors.IsRetryable(err)).Msg("quote round failed")
		return err
	}

	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.Price < best.Price {
			best = q
		}
	}
	for _, q := range quotes {
		w.logger.Debug().Str("shop", q.Shop).Float64("price", q.Price).Msg(q.String())
	}
	w.logger.Info().
		Str("best_shop", best.Shop).
		Float64("best_price", best.Price).
		Dur("elapsed", time.Since(start)).
		Msg("quote round completed")

	w.mu.Lock()
	w.latest = quotes
	w.rounds++
	w.mu.Unlock()
	return nil
}

// Latest returns the quotes of the last successful round.
func (w *Watcher) Latest() []Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Quote(nil), w.latest...)
}

// Rounds returns the number of successful rounds.
func (w *Watcher) Rounds() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rounds
}

// Stop cancels the schedule and any round in flight. The returned channel
// closes once the running round has returned.
func (w *Watcher) Stop() <-chan struct{} {
	w.mu.Lock()
	w.stopped = true
	if w.running {
		w.running = false
		w.sched.Cancel(watchTaskID)
		w.cancel()
	}
	w.mu.Unlock()

	return w.sched.Stop()
}
