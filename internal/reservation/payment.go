package reservation

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/events"
)

// RecordPayment applies an external payment outcome to a booking. A failed
// payment cancels the booking and returns its seats to availability.
// Reporting the outcome the booking already has is a no-op.
func (e *Engine) RecordPayment(
	ctx context.Context,
	bookingID uuid.UUID,
	status domain.PaymentStatus) (*domain.Booking, error) {

	var (
		booking *domain.Booking
		changed bool
	)

	err := e.store.RunInTx(ctx, func(uow domain.UnitOfWork) error {
		var err error

		booking, err = uow.Bookings().GetByIdForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		if booking.PaymentStatus == status {
			return nil
		}

		if booking.PaymentStatus != domain.PaymentStatusPending || !booking.IsConfirmed() {
			return domain.ErrInvalidPaymentTransition
		}

		bookingStatus := booking.BookingStatus
		switch status {
		case domain.PaymentStatusSuccess:
		case domain.PaymentStatusFailed:
			bookingStatus = domain.BookingStatusCancelled
		default:
			return domain.ErrInvalidPaymentTransition
		}

		now := e.clock.Now()

		err = uow.Bookings().UpdateStatus(ctx, bookingID, bookingStatus, status, now)
		if err != nil {
			return err
		}

		booking.BookingStatus = bookingStatus
		booking.PaymentStatus = status
		booking.UpdatedAt = now
		changed = true

		return nil
	})

	if err != nil {
		return nil, err
	}

	if !changed {
		return booking, nil
	}

	e.metrics.recordPayment(ctx, status)
	e.logger.Info("payment recorded",
		"bookingId", booking.ID, "paymentStatus", booking.PaymentStatus, "bookingStatus", booking.BookingStatus)

	eventType := events.BookingPaid
	if !booking.IsConfirmed() {
		eventType = events.BookingCancelled
	}

	e.afterMutation(ctx, booking.ScheduleID, bookingEvent(eventType, booking, booking.UpdatedAt))

	return booking, nil
}

// CancelBooking cancels a confirmed booking on behalf of an operator and
// returns its seats to availability. The payment status is left as it is, so
// a paid booking remains visible as one that needs a refund. Cancelling a
// cancelled booking is a no-op.
func (e *Engine) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	var (
		booking *domain.Booking
		changed bool
	)

	err := e.store.RunInTx(ctx, func(uow domain.UnitOfWork) error {
		var err error

		booking, err = uow.Bookings().GetByIdForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		if !booking.IsConfirmed() {
			return nil
		}

		now := e.clock.Now()

		err = uow.Bookings().UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled, booking.PaymentStatus, now)
		if err != nil {
			return err
		}

		booking.BookingStatus = domain.BookingStatusCancelled
		booking.UpdatedAt = now
		changed = true

		return nil
	})

	if err != nil {
		return nil, err
	}

	if !changed {
		return booking, nil
	}

	e.metrics.recordCancellation(ctx)
	e.logger.Info("booking cancelled", "bookingId", booking.ID, "paymentStatus", booking.PaymentStatus)

	e.afterMutation(ctx, booking.ScheduleID, bookingEvent(events.BookingCancelled, booking, booking.UpdatedAt))

	return booking, nil
}
