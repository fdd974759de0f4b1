package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
	"github.com/jamesp/lambdas/pkg/metrics"
	"github.com/jamesp/lambdas/pkg/scheduling/workerpool"
)

const maxIDLength = 255

// Task describes a scheduled task.
type Task struct {
	ID       string
	RunAt    time.Time
	Interval time.Duration // Zero for one-time and cron tasks
	CronExpr string        // Empty unless scheduled with ScheduleCron
	Created  time.Time
}

// Scheduler runs tasks at given times, at fixed intervals or on cron
// schedules. Due tasks are submitted to a worker pool.
type Scheduler interface {
	// Basic scheduling
	Schedule(id string, task workerpool.Task, runAt time.Time) error
	ScheduleAfter(id string, task workerpool.Task, delay time.Duration) error
	ScheduleRepeating(id string, task workerpool.Task, interval time.Duration) error

	// Cron scheduling
	ScheduleCron(id string, cronExpr string, task workerpool.Task) error

	// Task management
	Cancel(id string) bool
	CancelAll()
	List() []Task
	Next(id string) (time.Time, bool)

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	WorkerPool   workerpool.Pool   // Runs due tasks; a 4-worker fixed pool when nil
	Location     *time.Location    // For cron scheduling
	TickInterval time.Duration     // How often to check for ready tasks (default: 50ms)
	MaxTasks     int               // Maximum number of scheduled tasks (default: 10000)
	Name         string            // Label for metrics (default: "scheduler")
	Metrics      *metrics.Registry // Optional
}

type scheduledTask struct {
	id           string
	task         workerpool.Task
	runAt        time.Time
	interval     time.Duration
	cronExpr     string
	cronSchedule cron.Schedule
	created      time.Time
}

type scheduler struct {
	pool         workerpool.Pool
	ownPool      bool
	location     *time.Location
	tickInterval time.Duration
	maxTasks     int
	name         string
	metrics      *metrics.Registry

	mu      sync.RWMutex
	tasks   map[string]*scheduledTask
	done    chan struct{}
	stopped chan struct{}
	running bool
}

var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateCronExpression checks a six-field (seconds first) cron expression
// or a descriptor such as "@every 10s" or "@hourly".
func ValidateCronExpression(cronExpr string) error {
	_, err := parseCron(cronExpr)
	return err
}

func parseCron(cronExpr string) (cron.Schedule, error) {
	if cronExpr == "" {
		return nil, lerrors.NewValidationError("scheduler", "cronExpr", cronExpr, "cannot be empty").
			WithHint(`use six fields with seconds first, e.g. "*/10 * * * * *"`)
	}
	schedule, err := cronParser.Parse(cronExpr)
	if err != nil {
		return nil, lerrors.NewValidationError("scheduler", "cronExpr", cronExpr, err.Error()).
			WithHint(`use six fields with seconds first, e.g. "*/10 * * * * *"`)
	}
	return schedule, nil
}

// New creates a scheduler with default configuration.
func New() Scheduler {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) Scheduler {
	pool := cfg.WorkerPool
	ownPool := false
	if pool == nil {
		pool = workerpool.NewFixed(4)
		ownPool = true
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}

	maxTasks := cfg.MaxTasks
	if maxTasks <= 0 {
		maxTasks = 10000
	}

	name := cfg.Name
	if name == "" {
		name = "scheduler"
	}

	return &scheduler{
		pool:         pool,
		ownPool:      ownPool,
		location:     location,
		tickInterval: tickInterval,
		maxTasks:     maxTasks,
		name:         name,
		metrics:      cfg.Metrics,
		tasks:        make(map[string]*scheduledTask),
	}
}

func validateTask(id string, task workerpool.Task) error {
	if id == "" {
		return lerrors.NewValidationError("scheduler", "id", id, "cannot be empty")
	}
	if len(id) > maxIDLength {
		return lerrors.NewValidationError("scheduler", "id", id, fmt.Sprintf("too long (max %d characters)", maxIDLength))
	}
	if task == nil {
		return lerrors.NewValidationError("scheduler", "task", nil, "cannot be nil")
	}
	return nil
}

// add stores t unless its id is taken or the scheduler is full.
func (s *scheduler) add(t *scheduledTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.id]; exists {
		return fmt.Errorf("task with ID %q already exists, use a different ID or cancel the existing task first", t.id)
	}

	if len(s.tasks) >= s.maxTasks {
		return fmt.Errorf("cannot schedule task: maximum number of tasks (%d) reached: %w", s.maxTasks, lerrors.ErrCapacityExceeded)
	}

	t.created = time.Now()
	s.tasks[t.id] = t

	if s.metrics != nil {
		s.metrics.TasksScheduled.WithLabelValues(s.name).Inc()
	}
	return nil
}

func (s *scheduler) Schedule(id string, task workerpool.Task, runAt time.Time) error {
	if err := validateTask(id, task); err != nil {
		return err
	}
	if runAt.IsZero() {
		return lerrors.NewValidationError("scheduler", "runAt", runAt, "cannot be zero")
	}

	return s.add(&scheduledTask{id: id, task: task, runAt: runAt})
}

func (s *scheduler) ScheduleAfter(id string, task workerpool.Task, delay time.Duration) error {
	return s.Schedule(id, task, time.Now().Add(delay))
}

func (s *scheduler) ScheduleRepeating(id string, task workerpool.Task, interval time.Duration) error {
	if err := validateTask(id, task); err != nil {
		return err
	}
	if interval <= 0 {
		return lerrors.NewValidationError("scheduler", "interval", interval, "must be positive")
	}

	return s.add(&scheduledTask{id: id, task: task, runAt: time.Now(), interval: interval})
}

func (s *scheduler) ScheduleCron(id string, cronExpr string, task workerpool.Task) error {
	if err := validateTask(id, task); err != nil {
		return err
	}

	schedule, err := parseCron(cronExpr)
	if err != nil {
		return err
	}

	return s.add(&scheduledTask{
		id:           id,
		task:         task,
		runAt:        schedule.Next(time.Now().In(s.location)),
		cronExpr:     cronExpr,
		cronSchedule: schedule,
	})
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; exists {
		delete(s.tasks, id)
		return true
	}
	return false
}

func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make(map[string]*scheduledTask)
}

func (s *scheduler) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, Task{
			ID:       t.id,
			RunAt:    t.runAt,
			Interval: t.interval,
			CronExpr: t.cronExpr,
			Created:  t.created,
		})
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].RunAt.Before(tasks[j].RunAt)
	})

	return tasks
}

// Next returns when the task runs next.
func (s *scheduler) Next(id string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return time.Time{}, false
	}
	return t.runAt, true
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running, call Stop() first")
	}

	s.running = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})

	go s.run(time.NewTicker(s.tickInterval), s.done, s.stopped)
	return nil
}

// Stop stops the tick loop. Tasks already submitted keep running; a pool
// created by the scheduler is shut down and waited for.
func (s *scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	var loopStopped chan struct{}
	if s.running {
		s.running = false
		close(s.done)
		loopStopped = s.stopped
	}
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if loopStopped != nil {
			<-loopStopped
		}
		if s.ownPool {
			<-s.pool.Shutdown()
		}
	}()

	return stopped
}

func (s *scheduler) run(ticker *time.Ticker, done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			s.processReadyTasks(now)
		}
	}
}

func (s *scheduler) processReadyTasks(now time.Time) {
	s.mu.Lock()
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		return
	}

	readyTasks := make([]*scheduledTask, 0, len(s.tasks))
	for id, task := range s.tasks {
		if task.runAt.After(now) {
			continue
		}
		readyTasks = append(readyTasks, task)

		switch {
		case task.interval > 0:
			task.runAt = now.Add(task.interval)
		case task.cronSchedule != nil:
			task.runAt = task.cronSchedule.Next(now.In(s.location))
		default:
			delete(s.tasks, id)
		}
	}
	s.mu.Unlock()

	for _, task := range readyTasks {
		// A full or closed pool skips this run; repeating tasks get the next one.
		if err := s.pool.Submit(task.task); err != nil {
			continue
		}
		if s.metrics != nil {
			s.metrics.TasksExecuted.WithLabelValues(s.name).Inc()
		}
	}
}
