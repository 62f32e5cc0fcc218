package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/mocks"
	"github.com/metinatakli/seat-reservation-engine/internal/payment"
	"github.com/metinatakli/seat-reservation-engine/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v82"
)

type PaymentTestSuite struct {
	suite.Suite
	app             *Application
	engine          *mocks.MockEngine
	paymentProvider *mocks.MockPaymentProvider
	webhookParser   *mocks.MockWebhookParser
}

func (s *PaymentTestSuite) SetupTest() {
	s.engine = new(mocks.MockEngine)
	s.paymentProvider = new(mocks.MockPaymentProvider)
	s.webhookParser = new(mocks.MockWebhookParser)

	s.app = newTestApplication(func(a *Application) {
		a.engine = s.engine
		a.paymentProvider = s.paymentProvider
		a.webhookParser = s.webhookParser
	})
}

func (s *PaymentTestSuite) assertExpectations() {
	s.engine.AssertExpectations(s.T())
	s.paymentProvider.AssertExpectations(s.T())
	s.webhookParser.AssertExpectations(s.T())
}

func TestPaymentSuite(t *testing.T) {
	suite.Run(t, new(PaymentTestSuite))
}

func (s *PaymentTestSuite) TestRecordPaymentHandler() {
	paid := testBooking()
	paid.PaymentStatus = domain.PaymentStatusSuccess

	wantPaid := testAPIBooking()
	wantPaid.PaymentStatus = "success"

	tests := []struct {
		name           string
		role           string
		bookingId      string
		body           any
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.Booking
	}{
		{
			name:           "should fail without a session",
			bookingId:      testBookingId.String(),
			body:           api.PaymentOutcomeRequest{Status: "success"},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorizedAccess,
		},
		{
			name:           "should fail for callers without the payment role",
			role:           RoleAdmin,
			bookingId:      testBookingId.String(),
			body:           api.PaymentOutcomeRequest{Status: "success"},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrForbidden,
		},
		{
			name:           "should fail on an unknown status",
			role:           RolePayment,
			bookingId:      testBookingId.String(),
			body:           api.PaymentOutcomeRequest{Status: "refunded"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrPaymentStatus,
		},
		{
			name:      "should fail for an unknown booking",
			role:      RolePayment,
			bookingId: testBookingId.String(),
			body:      api.PaymentOutcomeRequest{Status: "success"},
			setupMock: func() {
				s.engine.On("RecordPayment", mock.Anything, testBookingId, domain.PaymentStatusSuccess).
					Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrBookingNotFound,
		},
		{
			name:      "should fail when the booking was already cancelled",
			role:      RolePayment,
			bookingId: testBookingId.String(),
			body:      api.PaymentOutcomeRequest{Status: "success"},
			setupMock: func() {
				s.engine.On("RecordPayment", mock.Anything, testBookingId, domain.PaymentStatusSuccess).
					Return(nil, domain.ErrInvalidPaymentTransition)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrInvalidPaymentTransition.Error(),
		},
		{
			name:      "should record the payment",
			role:      RolePayment,
			bookingId: testBookingId.String(),
			body:      api.PaymentOutcomeRequest{Status: "success"},
			setupMock: func() {
				s.engine.On("RecordPayment", mock.Anything, testBookingId, domain.PaymentStatusSuccess).
					Return(paid, nil)
			},
			wantStatus:   http.StatusOK,
			wantResponse: wantPaid,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.assertExpectations()

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings/"+tt.bookingId+"/payment", tt.body)
			if tt.role != "" {
				r.AddCookie(sessionCookie(s.T(), s.app, 0, tt.role))
			}

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.Booking
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				diff := cmp.Diff(tt.wantResponse, &response, decimalComparer)
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *PaymentTestSuite) TestCreateCheckoutSessionHandler() {
	cancelled := testBooking()
	cancelled.BookingStatus = domain.BookingStatusCancelled
	cancelled.PaymentStatus = domain.PaymentStatusFailed

	tests := []struct {
		name           string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.CheckoutSessionResponse
	}{
		{
			name: "should fail when the booking does not belong to the caller",
			setupMocks: func() {
				s.engine.On("GetBooking", mock.Anything, testBookingId, 7).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrBookingNotFound,
		},
		{
			name: "should fail when the booking is not awaiting payment",
			setupMocks: func() {
				s.engine.On("GetBooking", mock.Anything, testBookingId, 7).Return(cancelled, nil)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: errBookingNotPayable.Error(),
		},
		{
			name: "should fail when the payment provider fails",
			setupMocks: func() {
				booking := testBooking()
				s.engine.On("GetBooking", mock.Anything, testBookingId, 7).Return(booking, nil)
				s.paymentProvider.On("CreateCheckoutSession", booking).Return(nil, errors.New("stripe api is down"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "should create a checkout session",
			setupMocks: func() {
				booking := testBooking()
				s.engine.On("GetBooking", mock.Anything, testBookingId, 7).Return(booking, nil)
				s.paymentProvider.On("CreateCheckoutSession", booking).Return(&stripe.CheckoutSession{
					ID:  "cs_test_123",
					URL: "https://checkout.stripe.com/c/pay/cs_test_123",
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.CheckoutSessionResponse{
				RedirectUrl: "https://checkout.stripe.com/c/pay/cs_test_123",
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.assertExpectations()

			tt.setupMocks()

			w, r := executeRequest(s.T(), http.MethodPost, "/users/me/bookings/"+testBookingId.String()+"/checkout", nil)
			r.AddCookie(sessionCookie(s.T(), s.app, 7, ""))

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.CheckoutSessionResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")
				s.Equal(*tt.wantResponse, response)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *PaymentTestSuite) TestStripeWebhookHandler() {
	payload := `{"id": "evt_1"}`

	tests := []struct {
		name       string
		setupMocks func()
		wantStatus int
	}{
		{
			name: "should reject an invalid signature",
			setupMocks: func() {
				s.webhookParser.On("Parse", []byte(payload), "t=1,v1=abc").
					Return(nil, payment.ErrInvalidSignature)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should acknowledge events without a payment outcome",
			setupMocks: func() {
				s.webhookParser.On("Parse", []byte(payload), "t=1,v1=abc").Return(nil, payment.ErrIgnoredEvent)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "should record the payment outcome",
			setupMocks: func() {
				s.webhookParser.On("Parse", []byte(payload), "t=1,v1=abc").Return(&payment.Outcome{
					EventID:   "evt_1",
					BookingID: testBookingId,
					Status:    domain.PaymentStatusFailed,
				}, nil)
				s.engine.On("RecordPayment", mock.Anything, testBookingId, domain.PaymentStatusFailed).
					Return(testBooking(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "should acknowledge a payment for a cancelled booking",
			setupMocks: func() {
				s.webhookParser.On("Parse", []byte(payload), "t=1,v1=abc").Return(&payment.Outcome{
					EventID:   "evt_1",
					BookingID: testBookingId,
					Status:    domain.PaymentStatusSuccess,
				}, nil)
				s.engine.On("RecordPayment", mock.Anything, testBookingId, domain.PaymentStatusSuccess).
					Return(nil, domain.ErrInvalidPaymentTransition)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "should ask stripe to retry when the store fails",
			setupMocks: func() {
				s.webhookParser.On("Parse", []byte(payload), "t=1,v1=abc").Return(&payment.Outcome{
					EventID:   "evt_1",
					BookingID: testBookingId,
					Status:    domain.PaymentStatusSuccess,
				}, nil)
				s.engine.On("RecordPayment", mock.Anything, testBookingId, domain.PaymentStatusSuccess).
					Return(nil, errors.New("too many connections"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.assertExpectations()

			tt.setupMocks()

			w, r := executeRequest(s.T(), http.MethodPost, "/webhook/stripe", payload)
			r.Header.Set("Stripe-Signature", "t=1,v1=abc")

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
		})
	}
}

func (s *PaymentTestSuite) TestStripeWebhookHandler_NotRoutedWithoutSecret() {
	s.app.webhookParser = nil

	w, r := executeRequest(s.T(), http.MethodPost, "/webhook/stripe", `{}`)

	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusNotFound, w.Code)
}
