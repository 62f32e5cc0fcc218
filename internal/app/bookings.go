package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/jsonutil"
	"github.com/metinatakli/seat-reservation-engine/internal/reservation"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const defaultBookingsPageSize = 10

func (app *Application) CommitBookingHandler(w http.ResponseWriter, r *http.Request, scheduleId int) {
	if scheduleId < 1 {
		app.badRequestResponse(w, r, errInvalidScheduleId)
		return
	}

	var input api.CommitBookingRequest
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

	req := reservation.CommitRequest{
		ScheduleID:    scheduleId,
		SeatIDs:       input.SeatIds,
		HolderID:      app.contextGetHolderId(r),
		PaymentStatus: domain.PaymentStatusPending,
	}

	if input.Amount != nil {
		req.Amount = *input.Amount
	}

	booking, err := app.engine.CommitBooking(r.Context(), req)
	if err != nil {
		app.engineErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/users/me/bookings/%s", booking.ID))

	err = jsonutil.WriteJSON(w, http.StatusCreated, toAPIBooking(booking), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListUserBookingsHandler(
	w http.ResponseWriter,
	r *http.Request,
	params api.ListUserBookingsHandlerParams) {

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := domain.Pagination{Page: 1, PageSize: defaultBookingsPageSize}
	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	bookings, metadata, err := app.engine.ListBookings(r.Context(), app.contextGetHolderId(r), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserBookingsResponse{
		Bookings: make([]api.Booking, 0, len(bookings)),
	}

	for i := range bookings {
		resp.Bookings = append(resp.Bookings, toAPIBooking(&bookings[i]))
	}

	if metadata != nil {
		resp.Metadata = toAPIMetadata(metadata)
	}

	err = jsonutil.WriteJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingHandler(w http.ResponseWriter, r *http.Request, bookingId openapi_types.UUID) {
	booking, err := app.engine.GetBooking(r.Context(), bookingId, app.contextGetHolderId(r))
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

func toAPIBooking(booking *domain.Booking) api.Booking {
	seats := make([]api.BookingSeat, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		seats = append(seats, api.BookingSeat{
			SeatId: seat.SeatID,
			Row:    seat.Row,
			Number: seat.Number,
			Tier:   string(seat.Tier),
			Price:  seat.Price,
		})
	}

	return api.Booking{
		Id:            booking.ID,
		ScheduleId:    booking.ScheduleID,
		Seats:         seats,
		TotalAmount:   booking.TotalAmount,
		BookingStatus: string(booking.BookingStatus),
		PaymentStatus: string(booking.PaymentStatus),
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}

func toAPIMetadata(metadata *domain.Metadata) api.Metadata {
	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
