package domain

import (
	"context"
	"slices"
	"time"
)

type SeatTier string

const (
	SeatTierSilver   SeatTier = "silver"
	SeatTierGold     SeatTier = "gold"
	SeatTierPlatinum SeatTier = "platinum"
)

func (t SeatTier) Valid() bool {
	switch t {
	case SeatTierSilver, SeatTierGold, SeatTierPlatinum:
		return true
	}

	return false
}

// Seat is one entry of a screen's seat inventory. It carries no status:
// availability is always derived from holds and bookings.
type Seat struct {
	ID     string
	Row    string
	Number int
	Tier   SeatTier
}

type ScreenSeats struct {
	ScreenID  int
	TheatreID int
	Seats     []Seat
}

// Lookup indexes the seats by ID.
func (s *ScreenSeats) Lookup() map[string]Seat {
	seats := make(map[string]Seat, len(s.Seats))
	for _, seat := range s.Seats {
		seats[seat.ID] = seat
	}

	return seats
}

// NormalizeSeatIDs returns the distinct seat IDs in ascending order. Stores
// touch seat keys in this order so that concurrent writers never deadlock.
func NormalizeSeatIDs(seatIDs []string) []string {
	normalized := slices.Clone(seatIDs)
	slices.Sort(normalized)

	return slices.Compact(normalized)
}

type CatalogRepository interface {
	GetSchedule(ctx context.Context, scheduleID int) (*Schedule, error)
	GetScreenSeats(ctx context.Context, screenID int) (*ScreenSeats, error)
	GetPriceList(ctx context.Context, theatreID int) (PriceList, error)
	GetEndedActiveSchedules(ctx context.Context, now time.Time) ([]int, error)
	DeactivateSchedule(ctx context.Context, scheduleID int, now time.Time) (bool, error)
}
