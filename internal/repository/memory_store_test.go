package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

func newSeededStore() *MemoryStore {
	store := NewMemoryStore()
	store.AddScreen(domain.ScreenSeats{
		ScreenID:  10,
		TheatreID: 100,
		Seats: []domain.Seat{
			{ID: "A1", Row: "A", Number: 1, Tier: domain.SeatTierSilver},
			{ID: "A2", Row: "A", Number: 2, Tier: domain.SeatTierGold},
		},
	})
	store.AddSchedule(domain.Schedule{
		ID:        1,
		ScreenID:  10,
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(3 * time.Hour),
		Status:    domain.ScheduleStatusActive,
	})
	store.SetPriceList(100, domain.PriceList{domain.SeatTierGold: decimal.NewFromInt(200)})

	return store
}

func TestMemoryStore_GetScheduleResolvesTheatre(t *testing.T) {
	store := newSeededStore()

	schedule, err := store.Catalog().GetSchedule(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 100, schedule.TheatreID)

	_, err = store.Catalog().GetSchedule(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestMemoryStore_UpsertArbitratesByHolder(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()
	holds := store.Holds()

	granted, err := holds.Upsert(ctx, []domain.Hold{
		{ScheduleID: 1, SeatID: "A1", HolderID: 7, ExpiresAt: now.Add(time.Minute), CreatedAt: now},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, granted)

	granted, err = holds.Upsert(ctx, []domain.Hold{
		{ScheduleID: 1, SeatID: "A1", HolderID: 8, ExpiresAt: now.Add(time.Hour), CreatedAt: now},
		{ScheduleID: 1, SeatID: "A2", HolderID: 8, ExpiresAt: now.Add(time.Hour), CreatedAt: now},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, granted)

	granted, err = holds.Upsert(ctx, []domain.Hold{
		{ScheduleID: 1, SeatID: "A1", HolderID: 7, ExpiresAt: now.Add(5 * time.Minute), CreatedAt: now},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, granted)

	active, err := holds.GetActiveBySchedule(ctx, 1, now)
	require.NoError(t, err)

	want := []domain.Hold{
		{ScheduleID: 1, SeatID: "A1", HolderID: 7, ExpiresAt: now.Add(5 * time.Minute), CreatedAt: now},
		{ScheduleID: 1, SeatID: "A2", HolderID: 8, ExpiresAt: now.Add(time.Hour), CreatedAt: now},
	}
	if diff := cmp.Diff(want, active); diff != "" {
		t.Errorf("active holds mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_RunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()
	errBoom := errors.New("boom")

	err := store.RunInTx(ctx, func(uow domain.UnitOfWork) error {
		_, err := uow.Holds().Upsert(ctx, []domain.Hold{
			{ScheduleID: 1, SeatID: "A1", HolderID: 7, ExpiresAt: now.Add(time.Minute), CreatedAt: now},
		})
		require.NoError(t, err)

		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	active, err := store.Holds().GetActiveBySchedule(ctx, 1, now)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestMemoryStore_RunInTxRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()

	assert.PanicsWithValue(t, "boom", func() {
		_ = store.RunInTx(ctx, func(uow domain.UnitOfWork) error {
			_, err := uow.Holds().Upsert(ctx, []domain.Hold{
				{ScheduleID: 1, SeatID: "A1", HolderID: 7, ExpiresAt: now.Add(time.Minute), CreatedAt: now},
			})
			require.NoError(t, err)

			panic("boom")
		})
	})

	active, err := store.Holds().GetActiveBySchedule(ctx, 1, now)
	require.NoError(t, err)
	assert.Empty(t, active)

	// the store lock was released
	err = store.RunInTx(ctx, func(uow domain.UnitOfWork) error { return nil })
	assert.NoError(t, err)
}

func TestMemoryStore_BookingSeatsStayDisjoint(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()

	first := &domain.Booking{
		ID:            uuid.New(),
		HolderID:      7,
		ScheduleID:    1,
		Seats:         []domain.BookingSeat{{SeatID: "A1"}},
		BookingStatus: domain.BookingStatusConfirmed,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     now,
	}
	require.NoError(t, store.Bookings().Create(ctx, first))

	second := &domain.Booking{
		ID:            uuid.New(),
		HolderID:      8,
		ScheduleID:    1,
		Seats:         []domain.BookingSeat{{SeatID: "A2"}, {SeatID: "A1"}},
		BookingStatus: domain.BookingStatusConfirmed,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     now,
	}
	assert.ErrorIs(t, store.Bookings().Create(ctx, second), domain.ErrSeatConflict)

	require.NoError(t, store.Bookings().UpdateStatus(
		ctx, first.ID, domain.BookingStatusCancelled, domain.PaymentStatusFailed, now))
	require.NoError(t, store.Bookings().Create(ctx, second))

	booked, err := store.Bookings().GetBookedSeats(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.BookedSeat{
		{BookingID: second.ID, SeatID: "A1"},
		{BookingID: second.ID, SeatID: "A2"},
	}, booked)

	err = store.Bookings().UpdateStatus(ctx, first.ID, domain.BookingStatusConfirmed, domain.PaymentStatusSuccess, now)
	assert.ErrorIs(t, err, domain.ErrSeatConflict)
}

func TestMemoryStore_StaleUnpaidAndPagination(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()

	var ids []uuid.UUID
	for i := range 3 {
		booking := &domain.Booking{
			ID:            uuid.New(),
			HolderID:      7,
			ScheduleID:    1,
			Seats:         []domain.BookingSeat{{SeatID: []string{"A1", "A2", "A3"}[i]}},
			BookingStatus: domain.BookingStatusConfirmed,
			PaymentStatus: domain.PaymentStatusPending,
			CreatedAt:     now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Bookings().Create(ctx, booking))
		ids = append(ids, booking.ID)
	}

	stale, err := store.Bookings().GetStaleUnpaid(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, ids[:2], stale)

	page, metadata, err := store.Bookings().GetByHolder(ctx, 7, domain.Pagination{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID)
	assert.Equal(t, &domain.Metadata{CurrentPage: 2, FirstPage: 1, LastPage: 2, PageSize: 2, TotalRecords: 3}, metadata)
}

func TestMemoryStore_ExpiredHoldsAndSchedules(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore()

	_, err := store.Holds().Upsert(ctx, []domain.Hold{
		{ScheduleID: 1, SeatID: "A1", HolderID: 7, ExpiresAt: now, CreatedAt: now.Add(-5 * time.Minute)},
		{ScheduleID: 1, SeatID: "A2", HolderID: 7, ExpiresAt: now.Add(time.Minute), CreatedAt: now},
	})
	require.NoError(t, err)

	schedules, err := store.Holds().GetSchedulesWithExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, schedules)

	deleted, err := store.Holds().DeleteExpired(ctx, 1, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	ended, err := store.Catalog().GetEndedActiveSchedules(ctx, now.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ended)

	changed, err := store.Catalog().DeactivateSchedule(ctx, 1, now.Add(3*time.Hour))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = store.Catalog().DeactivateSchedule(ctx, 1, now.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
}
