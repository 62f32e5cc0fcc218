package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/jsonutil"
	appvalidator "github.com/metinatakli/seat-reservation-engine/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
	ErrForbidden          = "You are not allowed to perform this action"
	ErrFailedValidation   = "One or more fields are invalid"
	ErrBookingNotFound    = "booking not found"
	ErrScheduleNotFound   = "schedule not found"
	ErrScreenNotFound     = "screen of the schedule not found"
	ErrSeatNotFound       = "seat(s) not found on the screen"
)

var errInvalidScheduleId = errors.New("invalid scheduleId parameter")

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri, "requestId", middleware.GetReqID(r.Context()))
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeError(w, r, status, api.ErrorResponse{Message: message})
}

func (app *Application) writeError(w http.ResponseWriter, r *http.Request, status int, resp api.ErrorResponse) {
	resp.RequestId = middleware.GetReqID(r.Context())
	resp.Timestamp = time.Now()

	err := jsonutil.WriteJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) notFoundResponseWithMessage(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrForbidden)
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, 0, len(validationErrs)),
	}

	for _, fieldErr := range validationErrs {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	err = jsonutil.WriteJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// rejectionResponse reports a refused hold or commit together with the
// seats that caused it.
func (app *Application) rejectionResponse(w http.ResponseWriter, r *http.Request, rejection *domain.RejectionError) {
	status, message := http.StatusConflict, rejection.Error()

	switch rejection.Reason {
	case domain.ReasonSeatConflict:
		message = domain.ErrSeatConflict.Error()
	case domain.ReasonHoldMissingOrExpired:
		status, message = http.StatusPreconditionFailed, domain.ErrHoldMissingOrExpired.Error()
	case domain.ReasonScheduleInactive:
		message = domain.ErrScheduleInactive.Error()
	case domain.ReasonScheduleNotFound:
		status, message = http.StatusNotFound, ErrScheduleNotFound
	case domain.ReasonScreenNotFound:
		status, message = http.StatusNotFound, ErrScreenNotFound
	case domain.ReasonSeatNotFound:
		status, message = http.StatusNotFound, ErrSeatNotFound
	case domain.ReasonAmountMismatch:
		status, message = http.StatusUnprocessableEntity, domain.ErrAmountMismatch.Error()
	case domain.ReasonEmptySeatSelection:
		status, message = http.StatusUnprocessableEntity, domain.ErrEmptySeatSelection.Error()
	}

	app.writeError(w, r, status, api.ErrorResponse{
		Message: message,
		Reason:  string(rejection.Reason),
		SeatIds: rejection.SeatIDs,
	})
}

// engineErrorResponse maps an error returned by the reservation engine onto
// an HTTP response.
func (app *Application) engineErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var rejection *domain.RejectionError

	switch {
	case errors.As(err, &rejection):
		app.rejectionResponse(w, r, rejection)
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrInvalidPaymentTransition):
		app.editConflictResponseWithErr(w, r, err)
	case errors.Is(err, domain.ErrInvariantViolation):
		app.logger.Error("store invariant violated",
			"error", err,
			"method", r.Method,
			"uri", r.URL.RequestURI())
		app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
