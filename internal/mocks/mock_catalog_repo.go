package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepo struct {
	mock.Mock
	domain.CatalogRepository
}

func (m *MockCatalogRepo) GetSchedule(ctx context.Context, scheduleID int) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockCatalogRepo) GetScreenSeats(ctx context.Context, screenID int) (*domain.ScreenSeats, error) {
	args := m.Called(ctx, screenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScreenSeats), args.Error(1)
}

func (m *MockCatalogRepo) GetPriceList(ctx context.Context, theatreID int) (domain.PriceList, error) {
	args := m.Called(ctx, theatreID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PriceList), args.Error(1)
}

func (m *MockCatalogRepo) GetEndedActiveSchedules(ctx context.Context, now time.Time) ([]int, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockCatalogRepo) DeactivateSchedule(ctx context.Context, scheduleID int, now time.Time) (bool, error) {
	args := m.Called(ctx, scheduleID, now)
	return args.Bool(0), args.Error(1)
}
