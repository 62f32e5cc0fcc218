package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed:
		return true
	}

	return false
}

type Booking struct {
	ID            uuid.UUID
	HolderID      int
	ScheduleID    int
	Seats         []BookingSeat
	TotalAmount   decimal.Decimal
	BookingStatus BookingStatus
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookingSeat is the seat as it was priced when the booking was committed.
type BookingSeat struct {
	SeatID string
	Row    string
	Number int
	Tier   SeatTier
	Price  decimal.Decimal
}

func (b *Booking) SeatIDs() []string {
	seatIDs := make([]string, len(b.Seats))
	for i, seat := range b.Seats {
		seatIDs[i] = seat.SeatID
	}

	return seatIDs
}

func (b *Booking) IsConfirmed() bool {
	return b.BookingStatus == BookingStatusConfirmed
}

// IsStaleUnpaid reports whether the booking is still waiting for payment
// after the grace period has elapsed.
func (b *Booking) IsStaleUnpaid(cutoff time.Time) bool {
	return b.BookingStatus == BookingStatusConfirmed &&
		b.PaymentStatus == PaymentStatusPending &&
		!b.CreatedAt.After(cutoff)
}

// BookedSeat is a seat occupied by a confirmed booking.
type BookedSeat struct {
	BookingID uuid.UUID
	SeatID    string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetById(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIdForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByHolder(ctx context.Context, holderID int, pagination Pagination) ([]Booking, *Metadata, error)

	// GetBookedSeats returns the seats of confirmed bookings for a schedule,
	// restricted to seatIDs when it is not empty.
	GetBookedSeats(ctx context.Context, scheduleID int, seatIDs []string) ([]BookedSeat, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, bookingStatus BookingStatus, paymentStatus PaymentStatus, now time.Time) error
	GetStaleUnpaid(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}
