package domain

import "github.com/stripe/stripe-go/v82"

type PaymentProvider interface {
	CreateCheckoutSession(booking *Booking) (*stripe.CheckoutSession, error)
}
