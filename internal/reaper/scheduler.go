package reaper

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultHoldSweepInterval     = time.Minute
	DefaultBookingSweepInterval  = 2 * time.Minute
	DefaultScheduleSweepInterval = time.Minute
)

type Intervals struct {
	Holds     time.Duration
	Bookings  time.Duration
	Schedules time.Duration
}

func DefaultIntervals() Intervals {
	return Intervals{
		Holds:     DefaultHoldSweepInterval,
		Bookings:  DefaultBookingSweepInterval,
		Schedules: DefaultScheduleSweepInterval,
	}
}

type task struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
	running  atomic.Bool
}

// Scheduler runs tasks periodically, each on its own ticker. A tick that
// arrives while the previous run of the same task is still going is skipped.
type Scheduler struct {
	clock  clockwork.Clock
	logger *slog.Logger
	tasks  []*task
}

func NewScheduler(clk clockwork.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		clock:  clk,
		logger: logger,
	}
}

func (s *Scheduler) Add(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.tasks = append(s.tasks, &task{
		name:     name,
		interval: interval,
		run:      run,
	})
}

// Running reports whether a run of the named task is in progress.
func (s *Scheduler) Running(name string) bool {
	for _, t := range s.tasks {
		if t.name == name {
			return t.running.Load()
		}
	}

	return false
}

// Run blocks until ctx is done and every in-flight run has returned.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, t := range s.tasks {
		ticker := s.clock.NewTicker(t.interval)

		g.Go(func() error {
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.Chan():
					if !t.running.CompareAndSwap(false, true) {
						s.logger.Warn("previous run still in progress, skipping", "task", t.name)
						continue
					}

					g.Go(func() error {
						defer t.running.Store(false)
						s.runTask(ctx, t)
						return nil
					})
				}
			}
		})
	}

	s.logger.Info("scheduler started", "tasks", len(s.tasks))

	err := g.Wait()

	s.logger.Info("scheduler stopped")

	return err
}

func (s *Scheduler) runTask(ctx context.Context, t *task) {
	start := time.Now()

	err := t.run(ctx)
	if err != nil {
		s.logger.Error("task failed", "task", t.name, "error", err)
		return
	}

	s.logger.Debug("task finished", "task", t.name, "duration", time.Since(start))
}

// Schedule registers the reaper's sweeps on s.
func (r *Reaper) Schedule(s *Scheduler, intervals Intervals) {
	s.Add("holds", intervals.Holds, func(ctx context.Context) error {
		_, err := r.SweepHolds(ctx)
		return err
	})

	s.Add("unpaid-bookings", intervals.Bookings, func(ctx context.Context) error {
		_, err := r.SweepUnpaidBookings(ctx)
		return err
	})

	s.Add("schedules", intervals.Schedules, func(ctx context.Context) error {
		_, err := r.SweepSchedules(ctx)
		return err
	})
}
