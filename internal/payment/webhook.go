package payment

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrIgnoredEvent     = errors.New("webhook event does not carry a payment outcome")
)

// Outcome is a payment result reported for a booking.
type Outcome struct {
	EventID   string
	BookingID uuid.UUID
	Status    domain.PaymentStatus
}

type WebhookParser struct {
	secret string
}

func NewWebhookParser(secret string) *WebhookParser {
	return &WebhookParser{secret: secret}
}

// Parse verifies the Stripe signature header and maps checkout session
// events onto payment outcomes. Events that settle nothing return
// ErrIgnoredEvent so that the caller can acknowledge them.
func (p *WebhookParser) Parse(payload []byte, signatureHeader string) (*Outcome, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, p.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var status domain.PaymentStatus

	var checkoutSession stripe.CheckoutSession
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded,
		stripe.EventTypeCheckoutSessionAsyncPaymentFailed,
		stripe.EventTypeCheckoutSessionExpired:

		if event.Data == nil {
			return nil, fmt.Errorf("event %s has no data", event.ID)
		}

		err = json.Unmarshal(event.Data.Raw, &checkoutSession)
		if err != nil {
			return nil, fmt.Errorf("decode checkout session of event %s: %w", event.ID, err)
		}
	default:
		return nil, ErrIgnoredEvent
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		// Delayed payment methods complete the session before the money
		// arrives and report the result with an async event later on.
		if checkoutSession.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			return nil, ErrIgnoredEvent
		}
		status = domain.PaymentStatusSuccess
	case stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		status = domain.PaymentStatusSuccess
	default:
		status = domain.PaymentStatusFailed
	}

	bookingID, err := uuid.Parse(checkoutSession.Metadata[bookingIDMetadataKey])
	if err != nil {
		return nil, fmt.Errorf("checkout session %s has no valid booking id: %w", checkoutSession.ID, err)
	}

	return &Outcome{
		EventID:   event.ID,
		BookingID: bookingID,
		Status:    status,
	}, nil
}
