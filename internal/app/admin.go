package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/jsonutil"
	"github.com/metinatakli/seat-reservation-engine/internal/reaper"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RunSweepHandler runs one reaper pass on demand. Failures of single units
// are reported in the body; listing failures turn into a 500.
func (app *Application) RunSweepHandler(w http.ResponseWriter, r *http.Request) {
	report, err := app.sweeper.RunOnce(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SweepReportResponse{
		StartedAt: report.StartedAt,
		Holds:     toAPISweepResult(report.Holds),
		Bookings:  toAPISweepResult(report.Bookings),
		Schedules: toAPISweepResult(report.Schedules),
	}

	err = jsonutil.WriteJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toAPISweepResult(result reaper.SweepResult) api.SweepResult {
	return api.SweepResult{
		Swept:  result.Swept,
		Failed: result.Failed,
	}
}

// CancelBookingHandler cancels a confirmed booking and frees its seats.
// Cancelling a booking that is already cancelled returns it unchanged.
func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request, bookingId openapi_types.UUID) {
	booking, err := app.engine.CancelBooking(r.Context(), bookingId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponseWithMessage(w, r, ErrBookingNotFound)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = jsonutil.WriteJSON(w, http.StatusOK, toAPIBooking(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
