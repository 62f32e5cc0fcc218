// Package reaper retires expired holds, stale unpaid bookings and ended
// schedules. Every sweep is idempotent and handles each schedule or booking
// on its own, so one failing unit never blocks the others.
package reaper

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/events"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultUnpaidGrace = 10 * time.Minute
	DefaultConcurrency = 4
)

// ProjectionInvalidator drops cached seat maps that a sweep made stale.
type ProjectionInvalidator interface {
	Invalidate(ctx context.Context, scheduleID int) error
}

type SweepResult struct {
	Swept  int64
	Failed int
}

type SweepReport struct {
	StartedAt time.Time
	Holds     SweepResult
	Bookings  SweepResult
	Schedules SweepResult
}

func (r SweepReport) Failed() int {
	return r.Holds.Failed + r.Bookings.Failed + r.Schedules.Failed
}

type Reaper struct {
	store       domain.Store
	clock       clockwork.Clock
	logger      *slog.Logger
	publisher   events.Publisher
	invalidator ProjectionInvalidator
	unpaidGrace time.Duration
	concurrency int
	metrics     *metrics
}

type Option func(*Reaper)

func WithUnpaidGrace(grace time.Duration) Option {
	return func(r *Reaper) {
		r.unpaidGrace = grace
	}
}

func WithConcurrency(n int) Option {
	return func(r *Reaper) {
		r.concurrency = max(n, 1)
	}
}

func WithPublisher(publisher events.Publisher) Option {
	return func(r *Reaper) {
		r.publisher = publisher
	}
}

func WithInvalidator(invalidator ProjectionInvalidator) Option {
	return func(r *Reaper) {
		r.invalidator = invalidator
	}
}

func New(store domain.Store, clk clockwork.Clock, logger *slog.Logger, opts ...Option) *Reaper {
	r := &Reaper{
		store:       store,
		clock:       clk,
		logger:      logger,
		publisher:   events.NoopPublisher{},
		unpaidGrace: DefaultUnpaidGrace,
		concurrency: DefaultConcurrency,
		metrics:     newMetrics(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RunOnce runs every sweep once, in order. The returned error only reports
// sweeps that could not list their work; failures of single units are
// counted in the report.
func (r *Reaper) RunOnce(ctx context.Context) (SweepReport, error) {
	report := SweepReport{StartedAt: r.clock.Now()}

	var errs []error
	var err error

	report.Holds, err = r.SweepHolds(ctx)
	errs = append(errs, err)

	report.Bookings, err = r.SweepUnpaidBookings(ctx)
	errs = append(errs, err)

	report.Schedules, err = r.SweepSchedules(ctx)
	errs = append(errs, err)

	return report, errors.Join(errs...)
}

// SweepHolds deletes holds whose expiry has passed, one schedule at a time.
func (r *Reaper) SweepHolds(ctx context.Context) (SweepResult, error) {
	now := r.clock.Now()

	scheduleIDs, err := r.store.Holds().GetSchedulesWithExpired(ctx, now)
	if err != nil {
		return SweepResult{}, err
	}

	result := forEach(ctx, r.concurrency, scheduleIDs, func(ctx context.Context, scheduleID int) (int64, error) {
		deleted, err := r.store.Holds().DeleteExpired(ctx, scheduleID, now)
		if err != nil {
			r.logger.Error("failed to delete expired holds", "scheduleId", scheduleID, "error", err)
			return 0, err
		}

		if deleted > 0 {
			r.logger.Debug("expired holds deleted", "scheduleId", scheduleID, "deleted", deleted)
			r.invalidate(ctx, scheduleID)
		}

		return deleted, nil
	})

	r.metrics.record(ctx, "holds", result)

	return result, nil
}

// SweepUnpaidBookings cancels confirmed bookings whose payment is still
// pending after the grace period. Each booking is re-checked under a row lock,
// so a payment recorded meanwhile wins.
func (r *Reaper) SweepUnpaidBookings(ctx context.Context) (SweepResult, error) {
	now := r.clock.Now()
	cutoff := now.Add(-r.unpaidGrace)

	bookingIDs, err := r.store.Bookings().GetStaleUnpaid(ctx, cutoff)
	if err != nil {
		return SweepResult{}, err
	}

	result := forEach(ctx, r.concurrency, bookingIDs, func(ctx context.Context, bookingID uuid.UUID) (int64, error) {
		booking, err := r.cancelUnpaid(ctx, bookingID, cutoff, now)
		if err != nil {
			r.logger.Error("failed to cancel unpaid booking", "bookingId", bookingID, "error", err)
			return 0, err
		}

		if booking == nil {
			return 0, nil
		}

		r.logger.Info("unpaid booking cancelled", "bookingId", bookingID, "scheduleId", booking.ScheduleID)

		event := events.BookingEvent{
			Type:          events.BookingCancelled,
			BookingID:     booking.ID,
			ScheduleID:    booking.ScheduleID,
			HolderID:      booking.HolderID,
			SeatIDs:       booking.SeatIDs(),
			TotalAmount:   booking.TotalAmount,
			BookingStatus: string(booking.BookingStatus),
			PaymentStatus: string(booking.PaymentStatus),
			OccurredAt:    now,
		}

		if err := r.publisher.Publish(ctx, event); err != nil {
			r.logger.Warn("failed to publish booking event", "bookingId", bookingID, "error", err)
		}

		r.invalidate(ctx, booking.ScheduleID)

		return 1, nil
	})

	r.metrics.record(ctx, "bookings", result)

	return result, nil
}

// cancelUnpaid returns the cancelled booking, or nil when the booking no
// longer qualifies.
func (r *Reaper) cancelUnpaid(ctx context.Context, bookingID uuid.UUID, cutoff, now time.Time) (*domain.Booking, error) {
	var cancelled *domain.Booking

	err := r.store.RunInTx(ctx, func(uow domain.UnitOfWork) error {
		booking, err := uow.Bookings().GetByIdForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil
			}

			return err
		}

		if !booking.IsStaleUnpaid(cutoff) {
			return nil
		}

		err = uow.Bookings().UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled, domain.PaymentStatusFailed, now)
		if err != nil {
			return err
		}

		booking.BookingStatus = domain.BookingStatusCancelled
		booking.PaymentStatus = domain.PaymentStatusFailed
		booking.UpdatedAt = now
		cancelled = booking

		return nil
	})

	return cancelled, err
}

// SweepSchedules moves schedules that have ended to inactive.
func (r *Reaper) SweepSchedules(ctx context.Context) (SweepResult, error) {
	now := r.clock.Now()

	scheduleIDs, err := r.store.Catalog().GetEndedActiveSchedules(ctx, now)
	if err != nil {
		return SweepResult{}, err
	}

	result := forEach(ctx, r.concurrency, scheduleIDs, func(ctx context.Context, scheduleID int) (int64, error) {
		changed, err := r.store.Catalog().DeactivateSchedule(ctx, scheduleID, now)
		if err != nil {
			r.logger.Error("failed to deactivate schedule", "scheduleId", scheduleID, "error", err)
			return 0, err
		}

		if !changed {
			return 0, nil
		}

		r.logger.Info("schedule deactivated", "scheduleId", scheduleID)
		r.invalidate(ctx, scheduleID)

		return 1, nil
	})

	r.metrics.record(ctx, "schedules", result)

	return result, nil
}

func (r *Reaper) invalidate(ctx context.Context, scheduleID int) {
	if r.invalidator == nil {
		return
	}

	if err := r.invalidator.Invalidate(ctx, scheduleID); err != nil {
		r.logger.Warn("failed to invalidate seat map projection", "scheduleId", scheduleID, "error", err)
	}
}

// forEach runs fn for every unit with at most limit running at once. Errors
// are counted, never propagated.
func forEach[T any](
	ctx context.Context,
	limit int,
	units []T,
	fn func(ctx context.Context, unit T) (int64, error)) SweepResult {

	var swept, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(limit)

	for _, unit := range units {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			n, err := fn(ctx, unit)
			if err != nil {
				failed.Add(1)
				return nil
			}

			swept.Add(n)
			return nil
		})
	}

	_ = g.Wait()

	return SweepResult{Swept: swept.Load(), Failed: int(failed.Load())}
}
