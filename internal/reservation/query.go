package reservation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-reservation-engine/internal/availability"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
)

// ListAvailableSeats returns the seats of the schedule that are neither
// booked nor covered by an unexpired hold, in inventory order.
func (e *Engine) ListAvailableSeats(ctx context.Context, scheduleID int) ([]domain.Seat, error) {
	snapshot, err := e.resolve(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	return snapshot.Available(), nil
}

// SeatMap resolves the state of every seat of the schedule and pushes the
// result to the display projection.
func (e *Engine) SeatMap(ctx context.Context, scheduleID int) (availability.Snapshot, error) {
	snapshot, err := e.resolve(ctx, scheduleID)
	if err != nil {
		return availability.Snapshot{}, err
	}

	if e.projector != nil {
		if err := e.projector.Store(ctx, scheduleID, snapshot); err != nil {
			e.logger.Warn("failed to refresh seat map projection", "scheduleId", scheduleID, "error", err)
		}
	}

	return snapshot, nil
}

func (e *Engine) resolve(ctx context.Context, scheduleID int) (availability.Snapshot, error) {
	_, screen, err := scheduleSeats(ctx, e.store.Catalog(), scheduleID)
	if err != nil {
		return availability.Snapshot{}, err
	}

	now := e.clock.Now()

	holds, err := e.store.Holds().GetActiveBySchedule(ctx, scheduleID, now)
	if err != nil {
		return availability.Snapshot{}, err
	}

	booked, err := e.store.Bookings().GetBookedSeats(ctx, scheduleID, nil)
	if err != nil {
		return availability.Snapshot{}, err
	}

	snapshot, err := availability.Resolve(screen.Seats, holds, booked, now)
	if err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			e.logger.Error("seat availability is inconsistent", "scheduleId", scheduleID, "error", err)
		}

		return availability.Snapshot{}, err
	}

	return snapshot, nil
}

// GetBooking returns the holder's booking. Bookings of other holders are
// reported as not found.
func (e *Engine) GetBooking(ctx context.Context, bookingID uuid.UUID, holderID int) (*domain.Booking, error) {
	booking, err := e.store.Bookings().GetById(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.HolderID != holderID {
		return nil, domain.ErrRecordNotFound
	}

	return booking, nil
}

func (e *Engine) ListBookings(
	ctx context.Context,
	holderID int,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	return e.store.Bookings().GetByHolder(ctx, holderID, pagination)
}
