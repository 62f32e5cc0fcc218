package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-reservation-engine/internal/availability"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/reservation"
	"github.com/stretchr/testify/mock"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) AcquireHold(ctx context.Context, req reservation.HoldRequest) (*reservation.HoldGrant, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.HoldGrant), args.Error(1)
}

func (m *MockEngine) ReleaseHold(ctx context.Context, req reservation.HoldRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEngine) CommitBooking(ctx context.Context, req reservation.CommitRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockEngine) ListAvailableSeats(ctx context.Context, scheduleID int) ([]domain.Seat, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockEngine) SeatMap(ctx context.Context, scheduleID int) (availability.Snapshot, error) {
	args := m.Called(ctx, scheduleID)
	return args.Get(0).(availability.Snapshot), args.Error(1)
}

func (m *MockEngine) RecordPayment(
	ctx context.Context,
	bookingID uuid.UUID,
	status domain.PaymentStatus) (*domain.Booking, error) {

	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockEngine) GetBooking(ctx context.Context, bookingID uuid.UUID, holderID int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockEngine) ListBookings(
	ctx context.Context,
	holderID int,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	args := m.Called(ctx, holderID, pagination)

	var (
		bookings []domain.Booking
		metadata *domain.Metadata
	)

	if args.Get(0) != nil {
		bookings = args.Get(0).([]domain.Booking)
	}
	if args.Get(1) != nil {
		metadata = args.Get(1).(*domain.Metadata)
	}

	return bookings, metadata, args.Error(2)
}

type MockSeatMapCache struct {
	mock.Mock
}

func (m *MockSeatMapCache) Load(ctx context.Context, scheduleID int) (*availability.Snapshot, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Snapshot), args.Error(1)
}

func (m *MockEngine) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
