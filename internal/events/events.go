// Package events publishes booking lifecycle events for downstream
// consumers such as the ticket renderer.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingEventType string

const (
	BookingConfirmed BookingEventType = "booking.confirmed"
	BookingPaid      BookingEventType = "booking.paid"
	BookingCancelled BookingEventType = "booking.cancelled"
)

type BookingEvent struct {
	Type          BookingEventType `json:"type"`
	BookingID     uuid.UUID        `json:"bookingId"`
	ScheduleID    int              `json:"scheduleId"`
	HolderID      int              `json:"holderId"`
	SeatIDs       []string         `json:"seatIds"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	BookingStatus string           `json:"bookingStatus"`
	PaymentStatus string           `json:"paymentStatus"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error {
	return nil
}
