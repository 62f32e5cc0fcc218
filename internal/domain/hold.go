package domain

import (
	"context"
	"time"
)

// Hold is a temporary, exclusive claim of one seat for one schedule.
type Hold struct {
	ScheduleID int
	SeatID     string
	HolderID   int
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

func (h Hold) ActiveAt(now time.Time) bool {
	return h.ExpiresAt.After(now)
}

type HoldRepository interface {
	// PurgeExpired deletes expired holds on the given seats of a schedule.
	PurgeExpired(ctx context.Context, scheduleID int, seatIDs []string, now time.Time) error

	// Upsert inserts the holds, or refreshes the expiry of rows that already
	// belong to the same holder. Seats held by somebody else are left
	// untouched. It returns the seat IDs that were written.
	Upsert(ctx context.Context, holds []Hold) ([]string, error)

	// LockActiveByHolder returns the holder's active holds on the given seats
	// and locks them until the surrounding transaction ends.
	LockActiveByHolder(ctx context.Context, scheduleID, holderID int, seatIDs []string, now time.Time) ([]Hold, error)

	GetActiveBySchedule(ctx context.Context, scheduleID int, now time.Time) ([]Hold, error)
	DeleteByHolder(ctx context.Context, scheduleID, holderID int, seatIDs []string) (int64, error)

	GetSchedulesWithExpired(ctx context.Context, now time.Time) ([]int, error)
	DeleteExpired(ctx context.Context, scheduleID int, now time.Time) (int64, error)
}
