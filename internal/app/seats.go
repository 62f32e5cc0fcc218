package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/availability"
	"github.com/metinatakli/seat-reservation-engine/internal/jsonutil"
	"github.com/metinatakli/seat-reservation-engine/internal/projection"
)

func (app *Application) ListAvailableSeatsHandler(w http.ResponseWriter, r *http.Request, scheduleId int) {
	if scheduleId < 1 {
		app.badRequestResponse(w, r, errInvalidScheduleId)
		return
	}

	seats, err := app.engine.ListAvailableSeats(r.Context(), scheduleId)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	resp := api.AvailableSeatsResponse{
		ScheduleId: scheduleId,
		Seats:      make([]api.Seat, 0, len(seats)),
	}

	for _, seat := range seats {
		resp.Seats = append(resp.Seats, api.Seat{
			Id:     seat.ID,
			Row:    seat.Row,
			Number: seat.Number,
			Tier:   string(seat.Tier),
		})
	}

	err = jsonutil.WriteJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetSeatMapHandler serves the cached seat map when there is one and
// resolves it from the store otherwise. The cache is for display only and
// may lag behind by at most its TTL.
func (app *Application) GetSeatMapHandler(w http.ResponseWriter, r *http.Request, scheduleId int) {
	if scheduleId < 1 {
		app.badRequestResponse(w, r, errInvalidScheduleId)
		return
	}

	if app.seatMap != nil {
		snapshot, err := app.seatMap.Load(r.Context(), scheduleId)
		switch {
		case err == nil:
			app.writeSeatMap(w, r, scheduleId, *snapshot, true)
			return
		case !errors.Is(err, projection.ErrMiss):
			app.logger.Warn("seat map cache unavailable", "scheduleId", scheduleId, "error", err)
		}
	}

	snapshot, err := app.engine.SeatMap(r.Context(), scheduleId)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	app.writeSeatMap(w, r, scheduleId, snapshot, false)
}

func (app *Application) writeSeatMap(
	w http.ResponseWriter,
	r *http.Request,
	scheduleId int,
	snapshot availability.Snapshot,
	cached bool) {

	resp := api.SeatMapResponse{
		ScheduleId: scheduleId,
		ResolvedAt: snapshot.At,
		Cached:     cached,
		Counts:     make(map[string]int),
		Seats:      make([]api.SeatMapSeat, 0, len(snapshot.Seats)),
	}

	for state, count := range snapshot.Counts() {
		resp.Counts[string(state)] = count
	}

	for _, seat := range snapshot.Seats {
		resp.Seats = append(resp.Seats, api.SeatMapSeat{
			Id:     seat.ID,
			Row:    seat.Row,
			Number: seat.Number,
			Tier:   string(seat.Tier),
			State:  string(seat.State),
		})
	}

	err := jsonutil.WriteJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
