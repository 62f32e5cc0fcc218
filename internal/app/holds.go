package app

import (
	"net/http"

	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/jsonutil"
	"github.com/metinatakli/seat-reservation-engine/internal/reservation"
)

func (app *Application) readHoldRequest(
	w http.ResponseWriter,
	r *http.Request,
	scheduleId int) (*reservation.HoldRequest, bool) {

	if scheduleId < 1 {
		app.badRequestResponse(w, r, errInvalidScheduleId)
		return nil, false
	}

	var input api.HoldRequest
	err := jsonutil.ReadJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return nil, false
	}

	return &reservation.HoldRequest{
		ScheduleID: scheduleId,
		SeatIDs:    input.SeatIds,
		HolderID:   app.contextGetHolderId(r),
	}, true
}

func (app *Application) AcquireHoldHandler(w http.ResponseWriter, r *http.Request, scheduleId int) {
	req, ok := app.readHoldRequest(w, r, scheduleId)
	if !ok {
		return
	}

	grant, err := app.engine.AcquireHold(r.Context(), *req)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	resp := api.HoldResponse{
		ScheduleId: grant.ScheduleID,
		SeatIds:    grant.SeatIDs,
		ExpiresAt:  grant.ExpiresAt,
	}

	err = jsonutil.WriteJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ReleaseHoldHandler(w http.ResponseWriter, r *http.Request, scheduleId int) {
	req, ok := app.readHoldRequest(w, r, scheduleId)
	if !ok {
		return
	}

	err := app.engine.ReleaseHold(r.Context(), *req)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
