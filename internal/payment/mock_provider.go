package payment

import (
	"strconv"
	"sync"

	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

// MockPaymentProvider stands in for Stripe in environments without an API
// key. Without a primed session or error it hands out a session that
// redirects straight to the success page.
type MockPaymentProvider struct {
	CheckoutSession *stripe.CheckoutSession
	Err             error

	mu         sync.Mutex
	successUrl string
	bookings   []*domain.Booking
}

func NewMockPaymentProvider(successUrl string) *MockPaymentProvider {
	return &MockPaymentProvider{successUrl: successUrl}
}

func (m *MockPaymentProvider) CreateCheckoutSession(booking *domain.Booking) (*stripe.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bookings = append(m.bookings, booking)

	if m.Err != nil {
		return nil, m.Err
	}

	if m.CheckoutSession != nil {
		return m.CheckoutSession, nil
	}

	return &stripe.CheckoutSession{
		ID:                "cs_mock_" + booking.ID.String(),
		URL:               m.successUrl,
		ClientReferenceID: strconv.Itoa(booking.HolderID),
		Metadata:          map[string]string{bookingIDMetadataKey: booking.ID.String()},
	}, nil
}

// Bookings returns the bookings checkout sessions were requested for.
func (m *MockPaymentProvider) Bookings() []*domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*domain.Booking(nil), m.bookings...)
}
