// Package reservation arbitrates seat holds and bookings for schedules.
// Every decision is taken inside a single store transaction; the store's
// uniqueness on (schedule, seat) settles races between concurrent callers.
package reservation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/seat-reservation-engine/internal/availability"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/events"
	"github.com/shopspring/decimal"
)

const (
	DefaultHoldTTL = 5 * time.Minute
)

var DefaultSeatPrice = decimal.NewFromInt(150)

type HoldRequest struct {
	ScheduleID int
	SeatIDs    []string
	HolderID   int
}

type HoldGrant struct {
	ScheduleID int
	HolderID   int
	SeatIDs    []string
	ExpiresAt  time.Time
}

type CommitRequest struct {
	ScheduleID int
	SeatIDs    []string
	HolderID   int

	// Amount is the total the caller expects to pay. Zero skips the check.
	Amount decimal.Decimal

	// PaymentStatus is pending unless payment already succeeded synchronously.
	PaymentStatus domain.PaymentStatus
}

// SeatMapProjector receives fresh snapshots after every mutation.
type SeatMapProjector interface {
	Store(ctx context.Context, scheduleID int, snapshot availability.Snapshot) error
}

type Engine struct {
	store            domain.Store
	clock            clockwork.Clock
	logger           *slog.Logger
	publisher        events.Publisher
	projector        SeatMapProjector
	holdTTL          time.Duration
	defaultSeatPrice decimal.Decimal
	metrics          *metrics
}

type Option func(*Engine)

func WithHoldTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.holdTTL = ttl
	}
}

func WithDefaultSeatPrice(price decimal.Decimal) Option {
	return func(e *Engine) {
		e.defaultSeatPrice = price
	}
}

func WithPublisher(publisher events.Publisher) Option {
	return func(e *Engine) {
		e.publisher = publisher
	}
}

func WithProjector(projector SeatMapProjector) Option {
	return func(e *Engine) {
		e.projector = projector
	}
}

func New(store domain.Store, clk clockwork.Clock, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:            store,
		clock:            clk,
		logger:           logger,
		publisher:        events.NoopPublisher{},
		holdTTL:          DefaultHoldTTL,
		defaultSeatPrice: DefaultSeatPrice,
		metrics:          newMetrics(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) HoldTTL() time.Duration {
	return e.holdTTL
}

// scheduleSeats loads a schedule together with its screen's inventory and
// turns missing catalog entries into rejections.
func scheduleSeats(
	ctx context.Context,
	catalog domain.CatalogRepository,
	scheduleID int) (*domain.Schedule, *domain.ScreenSeats, error) {

	schedule, err := catalog.GetSchedule(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil, domain.Reject(domain.ReasonScheduleNotFound)
		}

		return nil, nil, err
	}

	screen, err := catalog.GetScreenSeats(ctx, schedule.ScreenID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil, domain.Reject(domain.ReasonScreenNotFound)
		}

		return nil, nil, err
	}

	return schedule, screen, nil
}

// activeScheduleSeats is scheduleSeats for mutations, which also require the
// schedule to be active and every requested seat to exist on the screen.
func activeScheduleSeats(
	ctx context.Context,
	catalog domain.CatalogRepository,
	scheduleID int,
	seatIDs []string) (*domain.ScreenSeats, []domain.Seat, error) {

	schedule, screen, err := scheduleSeats(ctx, catalog, scheduleID)
	if err != nil {
		return nil, nil, err
	}

	if !schedule.IsActive() {
		return nil, nil, domain.Reject(domain.ReasonScheduleInactive)
	}

	lookup := screen.Lookup()
	seats := make([]domain.Seat, 0, len(seatIDs))
	var missing []string

	for _, seatID := range seatIDs {
		seat, ok := lookup[seatID]
		if !ok {
			missing = append(missing, seatID)
			continue
		}

		seats = append(seats, seat)
	}

	if len(missing) > 0 {
		return nil, nil, domain.Reject(domain.ReasonSeatNotFound, missing...)
	}

	return screen, seats, nil
}

// afterMutation publishes the event and refreshes the seat map projection.
// Neither is authoritative, so failures are only logged.
func (e *Engine) afterMutation(ctx context.Context, scheduleID int, event *events.BookingEvent) {
	if event != nil {
		if err := e.publisher.Publish(ctx, *event); err != nil {
			e.logger.Warn("failed to publish booking event",
				"type", event.Type, "bookingId", event.BookingID, "error", err)
		}
	}

	if e.projector == nil {
		return
	}

	snapshot, err := e.resolve(ctx, scheduleID)
	if err == nil {
		err = e.projector.Store(ctx, scheduleID, snapshot)
	}

	if err != nil {
		e.logger.Warn("failed to refresh seat map projection", "scheduleId", scheduleID, "error", err)
	}
}

func bookingEvent(eventType events.BookingEventType, booking *domain.Booking, now time.Time) *events.BookingEvent {
	return &events.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		ScheduleID:    booking.ScheduleID,
		HolderID:      booking.HolderID,
		SeatIDs:       booking.SeatIDs(),
		TotalAmount:   booking.TotalAmount,
		BookingStatus: string(booking.BookingStatus),
		PaymentStatus: string(booking.PaymentStatus),
		OccurredAt:    now,
	}
}

// difference returns the elements of want missing from got. Both are
// expected to be small.
func difference(want, got []string) []string {
	present := make(map[string]struct{}, len(got))
	for _, s := range got {
		present[s] = struct{}{}
	}

	var missing []string
	for _, s := range want {
		if _, ok := present[s]; !ok {
			missing = append(missing, s)
		}
	}

	return missing
}
