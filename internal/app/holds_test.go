package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/mocks"
	"github.com/metinatakli/seat-reservation-engine/internal/reservation"
	"github.com/metinatakli/seat-reservation-engine/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HoldsTestSuite struct {
	suite.Suite
	app    *Application
	engine *mocks.MockEngine
}

func (s *HoldsTestSuite) SetupTest() {
	s.engine = new(mocks.MockEngine)
	s.app = newTestApplication(func(a *Application) {
		a.engine = s.engine
	})
}

func TestHoldsSuite(t *testing.T) {
	suite.Run(t, new(HoldsTestSuite))
}

func (s *HoldsTestSuite) TestAcquireHoldHandler() {
	expiresAt := time.Date(2025, 3, 1, 18, 5, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		holderId       int
		body           any
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantReason     string
		wantSeatIds    []string
		wantResponse   *api.HoldResponse
	}{
		{
			name:           "should fail without a session",
			url:            "/schedules/1/holds",
			body:           api.HoldRequest{SeatIds: []string{"A1"}},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorizedAccess,
		},
		{
			name:           "should fail when schedule id is not a number",
			url:            "/schedules/abc/holds",
			holderId:       7,
			body:           api.HoldRequest{SeatIds: []string{"A1"}},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid scheduleId parameter",
		},
		{
			name:           "should fail when body is malformed",
			url:            "/schedules/1/holds",
			holderId:       7,
			body:           `{"seatIds": [`,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "body contains badly-formed JSON",
		},
		{
			name:           "should fail when no seat is selected",
			url:            "/schedules/1/holds",
			holderId:       7,
			body:           api.HoldRequest{SeatIds: []string{}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrMinItems, "1"),
		},
		{
			name:           "should fail when a seat id is malformed",
			url:            "/schedules/1/holds",
			holderId:       7,
			body:           api.HoldRequest{SeatIds: []string{"A1", "12"}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrSeatID,
		},
		{
			name:     "should report conflicting seats",
			url:      "/schedules/1/holds",
			holderId: 7,
			body:     api.HoldRequest{SeatIds: []string{"A1", "A2"}},
			setupMock: func() {
				s.engine.On("AcquireHold", mock.Anything, reservation.HoldRequest{
					ScheduleID: 1,
					SeatIDs:    []string{"A1", "A2"},
					HolderID:   7,
				}).Return(nil, domain.Reject(domain.ReasonSeatConflict, "A2"))
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrSeatConflict.Error(),
			wantReason:     "seat_conflict",
			wantSeatIds:    []string{"A2"},
		},
		{
			name:     "should fail when the schedule does not exist",
			url:      "/schedules/99/holds",
			holderId: 7,
			body:     api.HoldRequest{SeatIds: []string{"A1"}},
			setupMock: func() {
				s.engine.On("AcquireHold", mock.Anything, mock.Anything).
					Return(nil, domain.Reject(domain.ReasonScheduleNotFound))
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrScheduleNotFound,
			wantReason:     "schedule_not_found",
		},
		{
			name:     "should fail when a seat is not on the screen",
			url:      "/schedules/1/holds",
			holderId: 7,
			body:     api.HoldRequest{SeatIds: []string{"Z99"}},
			setupMock: func() {
				s.engine.On("AcquireHold", mock.Anything, mock.Anything).
					Return(nil, domain.Reject(domain.ReasonSeatNotFound, "Z99"))
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrSeatNotFound,
			wantReason:     "seat_not_found",
			wantSeatIds:    []string{"Z99"},
		},
		{
			name:     "should fail when the schedule is no longer active",
			url:      "/schedules/1/holds",
			holderId: 7,
			body:     api.HoldRequest{SeatIds: []string{"A1"}},
			setupMock: func() {
				s.engine.On("AcquireHold", mock.Anything, mock.Anything).
					Return(nil, domain.Reject(domain.ReasonScheduleInactive))
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrScheduleInactive.Error(),
			wantReason:     "schedule_inactive",
		},
		{
			name:     "should fail when the store fails",
			url:      "/schedules/1/holds",
			holderId: 7,
			body:     api.HoldRequest{SeatIds: []string{"A1"}},
			setupMock: func() {
				s.engine.On("AcquireHold", mock.Anything, mock.Anything).
					Return(nil, errors.New("connection reset by peer"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:     "should hold the seats",
			url:      "/schedules/1/holds",
			holderId: 7,
			body:     api.HoldRequest{SeatIds: []string{"B2", "A1"}},
			setupMock: func() {
				s.engine.On("AcquireHold", mock.Anything, reservation.HoldRequest{
					ScheduleID: 1,
					SeatIDs:    []string{"B2", "A1"},
					HolderID:   7,
				}).Return(&reservation.HoldGrant{
					ScheduleID: 1,
					HolderID:   7,
					SeatIDs:    []string{"A1", "B2"},
					ExpiresAt:  expiresAt,
				}, nil)
			},
			wantStatus: http.StatusCreated,
			wantResponse: &api.HoldResponse{
				ScheduleId: 1,
				SeatIds:    []string{"A1", "B2"},
				ExpiresAt:  expiresAt,
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.engine.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPost, tt.url, tt.body)
			if tt.holderId != 0 {
				r.AddCookie(sessionCookie(s.T(), s.app, tt.holderId, ""))
			}

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.HoldResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				diff := cmp.Diff(tt.wantResponse, &response)
				s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
			}

			resp := checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})

			if resp != nil {
				s.Equal(tt.wantReason, resp.Reason)
				s.Equal(tt.wantSeatIds, resp.SeatIds)
			}
		})
	}
}

func (s *HoldsTestSuite) TestReleaseHoldHandler() {
	tests := []struct {
		name           string
		holderId       int
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail without a session",
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrUnauthorizedAccess,
		},
		{
			name:     "should release the caller's holds",
			holderId: 7,
			setupMock: func() {
				s.engine.On("ReleaseHold", mock.Anything, reservation.HoldRequest{
					ScheduleID: 3,
					SeatIDs:    []string{"C4"},
					HolderID:   7,
				}).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:     "should fail when the store fails",
			holderId: 7,
			setupMock: func() {
				s.engine.On("ReleaseHold", mock.Anything, mock.Anything).Return(errors.New("deadline exceeded"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.engine.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodDelete, "/schedules/3/holds", api.HoldRequest{SeatIds: []string{"C4"}})
			if tt.holderId != 0 {
				r.AddCookie(sessionCookie(s.T(), s.app, tt.holderId, ""))
			}

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

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
