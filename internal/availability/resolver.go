// Package availability derives per-seat availability for one schedule from
// the seat inventory, the holds and the confirmed bookings. It is pure: the
// caller supplies every input, including the current time.
package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
)

type State string

const (
	StateAvailable State = "available"
	StateHeld      State = "held"
	StateBooked    State = "booked"
)

type SeatState struct {
	domain.Seat
	State State
}

// Snapshot is the availability of every seat of a screen at one instant, in
// inventory order.
type Snapshot struct {
	At    time.Time
	Seats []SeatState

	// ValidUntil is the earliest expiry among the holds that made a seat
	// held. It is zero when no seat is held.
	ValidUntil time.Time
}

// Resolve marks each seat as booked when a confirmed booking contains it, as
// held when an unexpired hold covers it, and as available otherwise. Holds
// whose expiry is not after now are ignored whether or not they have been
// reaped. Two bookings sharing a seat is reported as
// domain.ErrInvariantViolation.
func Resolve(seats []domain.Seat, holds []domain.Hold, booked []domain.BookedSeat, now time.Time) (Snapshot, error) {
	bookedBy := make(map[string]uuid.UUID, len(booked))
	for _, b := range booked {
		if other, ok := bookedBy[b.SeatID]; ok && other != b.BookingID {
			return Snapshot{}, fmt.Errorf("%w: seat %s is booked by %s and %s",
				domain.ErrInvariantViolation, b.SeatID, other, b.BookingID)
		}
		bookedBy[b.SeatID] = b.BookingID
	}

	held := make(map[string]time.Time, len(holds))
	for _, h := range holds {
		if h.ActiveAt(now) {
			held[h.SeatID] = h.ExpiresAt
		}
	}

	snapshot := Snapshot{
		At:    now,
		Seats: make([]SeatState, len(seats)),
	}

	for i, seat := range seats {
		state := StateAvailable

		if _, ok := bookedBy[seat.ID]; ok {
			state = StateBooked
		} else if expiresAt, ok := held[seat.ID]; ok {
			state = StateHeld

			if snapshot.ValidUntil.IsZero() || expiresAt.Before(snapshot.ValidUntil) {
				snapshot.ValidUntil = expiresAt
			}
		}

		snapshot.Seats[i] = SeatState{Seat: seat, State: state}
	}

	return snapshot, nil
}

func (s Snapshot) Available() []domain.Seat {
	available := make([]domain.Seat, 0, len(s.Seats))
	for _, seat := range s.Seats {
		if seat.State == StateAvailable {
			available = append(available, seat.Seat)
		}
	}

	return available
}

// Counts returns the number of seats in each state.
func (s Snapshot) Counts() map[State]int {
	counts := map[State]int{
		StateAvailable: 0,
		StateHeld:      0,
		StateBooked:    0,
	}

	for _, seat := range s.Seats {
		counts[seat.State]++
	}

	return counts
}
