package payment

import (
	"fmt"
	"strconv"

	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

const bookingIDMetadataKey = "booking_id"

type StripePaymentProvider struct {
	failureUrl string
	successUrl string
}

func NewStripePaymentProvider(failureUrl, successUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl: failureUrl,
		successUrl: successUrl,
	}
}

func (s *StripePaymentProvider) CreateCheckoutSession(booking *domain.Booking) (*stripe.CheckoutSession, error) {
	return session.New(checkoutSessionParams(booking, s.successUrl, s.failureUrl))
}

func checkoutSessionParams(booking *domain.Booking, successUrl, failureUrl string) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(booking.Seats))

	for _, seat := range booking.Seats {
		priceCents := seat.Price.Mul(decimal.NewFromInt(100)).IntPart()

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(priceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("Seat %s (row %s, number %d)", seat.SeatID, seat.Row, seat.Number)),
					Description: stripe.String(fmt.Sprintf(
						"Schedule: %d • Seat Type: %s",
						booking.ScheduleID,
						seat.Tier,
					)),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	return &stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successUrl),
		CancelURL:  stripe.String(failureUrl),
		Metadata: map[string]string{
			bookingIDMetadataKey: booking.ID.String(),
			"schedule_id":        strconv.Itoa(booking.ScheduleID),
		},
		ClientReferenceID: stripe.String(strconv.Itoa(booking.HolderID)),
	}
}
