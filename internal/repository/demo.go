package repository

import (
	"time"

	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// SeedDemo loads one theatre with a single screen and two schedules, one
// starting in an hour and one that already ended, so that a development
// server has something to reserve.
func SeedDemo(store *MemoryStore, now time.Time) error {
	layout := domain.SeatLayout{
		Ranges: []domain.RowRange{
			{Tier: domain.SeatTierSilver, FromRow: 'A', ToRow: 'E'},
			{Tier: domain.SeatTierGold, FromRow: 'F', ToRow: 'H'},
			{Tier: domain.SeatTierPlatinum, FromRow: 'I', ToRow: 'J'},
		},
		SeatsPerRow: 12,
	}

	seats, err := layout.GenerateSeats()
	if err != nil {
		return err
	}

	store.AddScreen(domain.ScreenSeats{ScreenID: 1, TheatreID: 1, Seats: seats})

	// platinum is left unpriced and falls back to the default seat price
	store.SetPriceList(1, domain.PriceList{
		domain.SeatTierSilver: decimal.NewFromInt(120),
		domain.SeatTierGold:   decimal.NewFromInt(180),
	})

	start := now.Truncate(time.Hour).Add(time.Hour)

	store.AddSchedule(domain.Schedule{
		ID:        1,
		ScreenID:  1,
		TheatreID: 1,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Status:    domain.ScheduleStatusActive,
	})

	store.AddSchedule(domain.Schedule{
		ID:        2,
		ScreenID:  1,
		TheatreID: 1,
		StartTime: start.Add(-4 * time.Hour),
		EndTime:   start.Add(-2 * time.Hour),
		Status:    domain.ScheduleStatusActive,
	})

	return nil
}
