package mocks

import (
	"context"

	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockStore runs transactions against its own repositories, so expectations
// set on them apply both inside and outside of RunInTx.
type MockStore struct {
	mock.Mock
	CatalogRepo *MockCatalogRepo
	HoldRepo    *MockHoldRepo
	BookingRepo *MockBookingRepo
}

func NewMockStore() *MockStore {
	return &MockStore{
		CatalogRepo: new(MockCatalogRepo),
		HoldRepo:    new(MockHoldRepo),
		BookingRepo: new(MockBookingRepo),
	}
}

func (m *MockStore) Catalog() domain.CatalogRepository {
	return m.CatalogRepo
}

func (m *MockStore) Holds() domain.HoldRepository {
	return m.HoldRepo
}

func (m *MockStore) Bookings() domain.BookingRepository {
	return m.BookingRepo
}

func (m *MockStore) RunInTx(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	return fn(m)
}

func (m *MockStore) AssertExpectations(t mock.TestingT) bool {
	return m.CatalogRepo.AssertExpectations(t) &&
		m.HoldRepo.AssertExpectations(t) &&
		m.BookingRepo.AssertExpectations(t)
}
