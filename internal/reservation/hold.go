package reservation

import (
	"context"
	"slices"

	"github.com/metinatakli/seat-reservation-engine/internal/domain"
)

// AcquireHold places time-bounded holds on every requested seat, or on none.
// Calling it again for seats the holder already holds refreshes their expiry.
func (e *Engine) AcquireHold(ctx context.Context, req HoldRequest) (*HoldGrant, error) {
	seatIDs := domain.NormalizeSeatIDs(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, domain.Reject(domain.ReasonEmptySeatSelection)
	}

	var grant *HoldGrant

	err := e.store.RunInTx(ctx, func(uow domain.UnitOfWork) error {
		if _, _, err := activeScheduleSeats(ctx, uow.Catalog(), req.ScheduleID, seatIDs); err != nil {
			return err
		}

		now := e.clock.Now()
		expiresAt := now.Add(e.holdTTL)

		err := uow.Holds().PurgeExpired(ctx, req.ScheduleID, seatIDs, now)
		if err != nil {
			return err
		}

		holds := make([]domain.Hold, len(seatIDs))
		for i, seatID := range seatIDs {
			holds[i] = domain.Hold{
				ScheduleID: req.ScheduleID,
				SeatID:     seatID,
				HolderID:   req.HolderID,
				ExpiresAt:  expiresAt,
				CreatedAt:  now,
			}
		}

		granted, err := uow.Holds().Upsert(ctx, holds)
		if err != nil {
			return err
		}

		conflicts := difference(seatIDs, granted)

		booked, err := uow.Bookings().GetBookedSeats(ctx, req.ScheduleID, seatIDs)
		if err != nil {
			return err
		}

		for _, seat := range booked {
			conflicts = append(conflicts, seat.SeatID)
		}

		if len(conflicts) > 0 {
			return domain.Reject(domain.ReasonSeatConflict, domain.NormalizeSeatIDs(conflicts)...)
		}

		grant = &HoldGrant{
			ScheduleID: req.ScheduleID,
			HolderID:   req.HolderID,
			SeatIDs:    slices.Clone(seatIDs),
			ExpiresAt:  expiresAt,
		}

		return nil
	})

	e.metrics.recordHold(ctx, err)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("hold acquired",
		"scheduleId", req.ScheduleID, "holderId", req.HolderID, "seats", grant.SeatIDs, "expiresAt", grant.ExpiresAt)

	e.afterMutation(ctx, req.ScheduleID, nil)

	return grant, nil
}

// ReleaseHold drops the caller's own holds on the given seats. Seats the
// caller does not hold are ignored.
func (e *Engine) ReleaseHold(ctx context.Context, req HoldRequest) error {
	seatIDs := domain.NormalizeSeatIDs(req.SeatIDs)
	if len(seatIDs) == 0 {
		return domain.Reject(domain.ReasonEmptySeatSelection)
	}

	released, err := e.store.Holds().DeleteByHolder(ctx, req.ScheduleID, req.HolderID, seatIDs)
	if err != nil {
		return err
	}

	if released == 0 {
		return nil
	}

	e.metrics.holdsReleased.Add(ctx, released)
	e.logger.Debug("hold released", "scheduleId", req.ScheduleID, "holderId", req.HolderID, "released", released)

	e.afterMutation(ctx, req.ScheduleID, nil)

	return nil
}
