package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/events"
	"github.com/shopspring/decimal"
)

// CommitBooking converts the caller's holds into a confirmed booking. The
// hold check, the booking conflict check, the insert and the removal of the
// consumed holds happen in one transaction: either all of them take effect
// or none does.
func (e *Engine) CommitBooking(ctx context.Context, req CommitRequest) (*domain.Booking, error) {
	seatIDs := domain.NormalizeSeatIDs(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, domain.Reject(domain.ReasonEmptySeatSelection)
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPending
	}

	if paymentStatus != domain.PaymentStatusPending && paymentStatus != domain.PaymentStatusSuccess {
		return nil, domain.ErrInvalidPaymentTransition
	}

	var booking *domain.Booking

	err := e.store.RunInTx(ctx, func(uow domain.UnitOfWork) error {
		screen, seats, err := activeScheduleSeats(ctx, uow.Catalog(), req.ScheduleID, seatIDs)
		if err != nil {
			return err
		}

		now := e.clock.Now()

		holds, err := uow.Holds().LockActiveByHolder(ctx, req.ScheduleID, req.HolderID, seatIDs, now)
		if err != nil {
			return err
		}

		if len(holds) != len(seatIDs) {
			held := make([]string, len(holds))
			for i, hold := range holds {
				held[i] = hold.SeatID
			}

			return domain.Reject(domain.ReasonHoldMissingOrExpired, difference(seatIDs, held)...)
		}

		booked, err := uow.Bookings().GetBookedSeats(ctx, req.ScheduleID, seatIDs)
		if err != nil {
			return err
		}

		if len(booked) > 0 {
			conflicts := make([]string, len(booked))
			for i, seat := range booked {
				conflicts[i] = seat.SeatID
			}

			return domain.Reject(domain.ReasonSeatConflict, domain.NormalizeSeatIDs(conflicts)...)
		}

		prices, err := uow.Catalog().GetPriceList(ctx, screen.TheatreID)
		if err != nil {
			return err
		}

		bookingSeats, total := e.priceSeats(seats, prices)

		if !req.Amount.IsZero() && !req.Amount.Equal(total) {
			return domain.Reject(domain.ReasonAmountMismatch)
		}

		booking = &domain.Booking{
			ID:            uuid.New(),
			HolderID:      req.HolderID,
			ScheduleID:    req.ScheduleID,
			Seats:         bookingSeats,
			TotalAmount:   total,
			BookingStatus: domain.BookingStatusConfirmed,
			PaymentStatus: paymentStatus,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		err = uow.Bookings().Create(ctx, booking)
		if err != nil {
			if errors.Is(err, domain.ErrSeatConflict) {
				return domain.Reject(domain.ReasonSeatConflict, seatIDs...)
			}

			return err
		}

		consumed, err := uow.Holds().DeleteByHolder(ctx, req.ScheduleID, req.HolderID, seatIDs)
		if err != nil {
			return err
		}

		if consumed != int64(len(seatIDs)) {
			return fmt.Errorf("%w: consumed %d of %d locked holds", domain.ErrInvariantViolation, consumed, len(seatIDs))
		}

		return nil
	})

	e.metrics.recordCommit(ctx, err)
	if err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			e.logger.Error("booking commit broke an invariant",
				"scheduleId", req.ScheduleID, "holderId", req.HolderID, "error", err)
		}

		return nil, err
	}

	e.logger.Info("booking committed",
		"bookingId", booking.ID, "scheduleId", booking.ScheduleID, "holderId", booking.HolderID,
		"seats", seatIDs, "total", booking.TotalAmount.String())

	e.afterMutation(ctx, req.ScheduleID, bookingEvent(events.BookingConfirmed, booking, booking.CreatedAt))

	return booking, nil
}

// priceSeats prices each seat from the theatre's tier prices, falling back to
// the default seat price for tiers the theatre has not priced.
func (e *Engine) priceSeats(seats []domain.Seat, prices domain.PriceList) ([]domain.BookingSeat, decimal.Decimal) {
	bookingSeats := make([]domain.BookingSeat, len(seats))
	total := decimal.Zero

	for i, seat := range seats {
		price := prices.PriceOf(seat.Tier, e.defaultSeatPrice)

		bookingSeats[i] = domain.BookingSeat{
			SeatID: seat.ID,
			Row:    seat.Row,
			Number: seat.Number,
			Tier:   seat.Tier,
			Price:  price,
		}

		total = total.Add(price)
	}

	return bookingSeats, total
}
