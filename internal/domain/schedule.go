package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "active"
	ScheduleStatusInactive ScheduleStatus = "inactive"
)

// Schedule is a single showtime on a screen. The engine reads it; only the
// reaper's lifecycle sweep ever changes its status.
type Schedule struct {
	ID        int
	ScreenID  int
	TheatreID int
	StartTime time.Time
	EndTime   time.Time
	Status    ScheduleStatus
}

func (s *Schedule) IsActive() bool {
	return s.Status == ScheduleStatusActive
}

// PriceList maps a seat tier to its price at one theatre.
type PriceList map[SeatTier]decimal.Decimal

// PriceOf returns the tier price, falling back to the given default when the
// theatre has not priced the tier.
func (p PriceList) PriceOf(tier SeatTier, fallback decimal.Decimal) decimal.Decimal {
	price, ok := p[tier]
	if !ok {
		return fallback
	}

	return price
}
