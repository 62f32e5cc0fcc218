package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHoldRepo struct {
	mock.Mock
	domain.HoldRepository
}

func (m *MockHoldRepo) PurgeExpired(ctx context.Context, scheduleID int, seatIDs []string, now time.Time) error {
	args := m.Called(ctx, scheduleID, seatIDs, now)
	return args.Error(0)
}

func (m *MockHoldRepo) Upsert(ctx context.Context, holds []domain.Hold) ([]string, error) {
	args := m.Called(ctx, holds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHoldRepo) LockActiveByHolder(
	ctx context.Context,
	scheduleID,
	holderID int,
	seatIDs []string,
	now time.Time) ([]domain.Hold, error) {

	args := m.Called(ctx, scheduleID, holderID, seatIDs, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hold), args.Error(1)
}

func (m *MockHoldRepo) GetActiveBySchedule(ctx context.Context, scheduleID int, now time.Time) ([]domain.Hold, error) {
	args := m.Called(ctx, scheduleID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hold), args.Error(1)
}

func (m *MockHoldRepo) DeleteByHolder(ctx context.Context, scheduleID, holderID int, seatIDs []string) (int64, error) {
	args := m.Called(ctx, scheduleID, holderID, seatIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHoldRepo) GetSchedulesWithExpired(ctx context.Context, now time.Time) ([]int, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockHoldRepo) DeleteExpired(ctx context.Context, scheduleID int, now time.Time) (int64, error) {
	args := m.Called(ctx, scheduleID, now)
	return args.Get(0).(int64), args.Error(1)
}
