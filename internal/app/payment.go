package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/jsonutil"
	"github.com/metinatakli/seat-reservation-engine/internal/payment"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const maxWebhookBytes = 65_536

var errBookingNotPayable = errors.New("the booking is not awaiting payment")

// RecordPaymentHandler lets the payment service report the outcome of a
// payment for a booking.
func (app *Application) RecordPaymentHandler(w http.ResponseWriter, r *http.Request, bookingId openapi_types.UUID) {
	var input api.PaymentOutcomeRequest
	err := jsonutil.ReadJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	booking, err := app.engine.RecordPayment(r.Context(), bookingId, domain.PaymentStatus(input.Status))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponseWithMessage(w, r, ErrBookingNotFound)
			return
		}

		app.engineErrorResponse(w, r, err)
		return
	}

	err = jsonutil.WriteJSON(w, http.StatusOK, toAPIBooking(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request, bookingId openapi_types.UUID) {
	booking, err := app.engine.GetBooking(r.Context(), bookingId, app.contextGetHolderId(r))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponseWithMessage(w, r, ErrBookingNotFound)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	if !booking.IsConfirmed() || booking.PaymentStatus != domain.PaymentStatusPending {
		app.editConflictResponseWithErr(w, r, errBookingNotPayable)
		return
	}

	checkoutSession, err := app.paymentProvider.CreateCheckoutSession(booking)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if checkoutSession == nil {
		app.serverErrorResponse(w, r, fmt.Errorf("payment provider returned no checkout session for booking %s", booking.ID))
		return
	}

	resp := api.CheckoutSessionResponse{
		RedirectUrl: checkoutSession.URL,
	}

	err = jsonutil.WriteJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// StripeWebhookHandler applies checkout outcomes reported by Stripe. Stripe
// retries deliveries that do not get a 2xx, so only failures a retry could
// fix are reported as errors.
func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("unable to read webhook payload"))
		return
	}

	outcome, err := app.webhookParser.Parse(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrIgnoredEvent) {
			w.WriteHeader(http.StatusOK)
			return
		}

		app.logger.Warn("rejected stripe webhook", "error", err)
		app.badRequestResponse(w, r, errors.New("invalid webhook event"))
		return
	}

	logger := app.logger.With("eventId", outcome.EventID, "bookingId", outcome.BookingID, "paymentStatus", outcome.Status)

	_, err = app.engine.RecordPayment(r.Context(), outcome.BookingID, outcome.Status)
	switch {
	case err == nil:
		logger.Info("payment outcome recorded")
	case errors.Is(err, domain.ErrRecordNotFound):
		logger.Warn("payment outcome for unknown booking")
	case errors.Is(err, domain.ErrInvalidPaymentTransition):
		// typically a payment that arrived after the reaper cancelled the booking
		logger.Error("payment outcome could not be applied, manual refund may be required", "error", err)
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
