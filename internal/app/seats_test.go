package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/seat-reservation-engine/api"
	"github.com/metinatakli/seat-reservation-engine/internal/availability"
	"github.com/metinatakli/seat-reservation-engine/internal/domain"
	"github.com/metinatakli/seat-reservation-engine/internal/mocks"
	"github.com/metinatakli/seat-reservation-engine/internal/projection"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var resolvedAt = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

func testSnapshot() availability.Snapshot {
	return availability.Snapshot{
		At: resolvedAt,
		Seats: []availability.SeatState{
			{Seat: domain.Seat{ID: "A1", Row: "A", Number: 1, Tier: domain.SeatTierSilver}, State: availability.StateBooked},
			{Seat: domain.Seat{ID: "A2", Row: "A", Number: 2, Tier: domain.SeatTierSilver}, State: availability.StateHeld},
			{Seat: domain.Seat{ID: "A3", Row: "A", Number: 3, Tier: domain.SeatTierSilver}, State: availability.StateAvailable},
		},
	}
}

func testSeatMapResponse(cached bool) *api.SeatMapResponse {
	return &api.SeatMapResponse{
		ScheduleId: 1,
		ResolvedAt: resolvedAt,
		Cached:     cached,
		Counts:     map[string]int{"available": 1, "held": 1, "booked": 1},
		Seats: []api.SeatMapSeat{
			{Id: "A1", Row: "A", Number: 1, Tier: "silver", State: "booked"},
			{Id: "A2", Row: "A", Number: 2, Tier: "silver", State: "held"},
			{Id: "A3", Row: "A", Number: 3, Tier: "silver", State: "available"},
		},
	}
}

type SeatsTestSuite struct {
	suite.Suite
	app     *Application
	engine  *mocks.MockEngine
	seatMap *mocks.MockSeatMapCache
}

func (s *SeatsTestSuite) SetupTest() {
	s.engine = new(mocks.MockEngine)
	s.seatMap = new(mocks.MockSeatMapCache)
	s.app = newTestApplication(func(a *Application) {
		a.engine = s.engine
		a.seatMap = s.seatMap
	})
}

func TestSeatsSuite(t *testing.T) {
	suite.Run(t, new(SeatsTestSuite))
}

func (s *SeatsTestSuite) TestListAvailableSeatsHandler() {
	tests := []struct {
		name           string
		url            string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.AvailableSeatsResponse
	}{
		{
			name:           "should fail when schedule id is not positive",
			url:            "/schedules/0/seats",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid scheduleId parameter",
		},
		{
			name: "should fail when the schedule does not exist",
			url:  "/schedules/404/seats",
			setupMock: func() {
				s.engine.On("ListAvailableSeats", mock.Anything, 404).
					Return(nil, domain.Reject(domain.ReasonScheduleNotFound))
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrScheduleNotFound,
		},
		{
			name: "should list available seats",
			url:  "/schedules/1/seats",
			setupMock: func() {
				s.engine.On("ListAvailableSeats", mock.Anything, 1).Return([]domain.Seat{
					{ID: "A3", Row: "A", Number: 3, Tier: domain.SeatTierSilver},
					{ID: "F1", Row: "F", Number: 1, Tier: domain.SeatTierGold},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.AvailableSeatsResponse{
				ScheduleId: 1,
				Seats: []api.Seat{
					{Id: "A3", Row: "A", Number: 3, Tier: "silver"},
					{Id: "F1", Row: "F", Number: 1, Tier: "gold"},
				},
			},
		},
		{
			name: "should return an empty list when the schedule is sold out",
			url:  "/schedules/1/seats",
			setupMock: func() {
				s.engine.On("ListAvailableSeats", mock.Anything, 1).Return([]domain.Seat{}, nil)
			},
			wantStatus:   http.StatusOK,
			wantResponse: &api.AvailableSeatsResponse{ScheduleId: 1, Seats: []api.Seat{}},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.engine.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.AvailableSeatsResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				diff := cmp.Diff(tt.wantResponse, &response)
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

func (s *SeatsTestSuite) TestGetSeatMapHandler() {
	tests := []struct {
		name           string
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.SeatMapResponse
	}{
		{
			name: "should serve the cached seat map",
			setupMocks: func() {
				snapshot := testSnapshot()
				s.seatMap.On("Load", mock.Anything, 1).Return(&snapshot, nil)
			},
			wantStatus:   http.StatusOK,
			wantResponse: testSeatMapResponse(true),
		},
		{
			name: "should resolve the seat map on a cache miss",
			setupMocks: func() {
				s.seatMap.On("Load", mock.Anything, 1).Return(nil, projection.ErrMiss)
				s.engine.On("SeatMap", mock.Anything, 1).Return(testSnapshot(), nil)
			},
			wantStatus:   http.StatusOK,
			wantResponse: testSeatMapResponse(false),
		},
		{
			name: "should resolve the seat map when the cache is down",
			setupMocks: func() {
				s.seatMap.On("Load", mock.Anything, 1).Return(nil, errors.New("dial tcp: connection refused"))
				s.engine.On("SeatMap", mock.Anything, 1).Return(testSnapshot(), nil)
			},
			wantStatus:   http.StatusOK,
			wantResponse: testSeatMapResponse(false),
		},
		{
			name: "should fail when the schedule does not exist",
			setupMocks: func() {
				s.seatMap.On("Load", mock.Anything, 1).Return(nil, projection.ErrMiss)
				s.engine.On("SeatMap", mock.Anything, 1).
					Return(availability.Snapshot{}, domain.Reject(domain.ReasonScheduleNotFound))
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrScheduleNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.engine.AssertExpectations(s.T())
			defer s.seatMap.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/schedules/1/seat-map", nil)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantResponse != nil {
				var response api.SeatMapResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")

				diff := cmp.Diff(tt.wantResponse, &response)
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

func (s *SeatsTestSuite) TestGetSeatMapHandler_WithoutCache() {
	s.app.seatMap = nil
	s.engine.On("SeatMap", mock.Anything, 1).Return(testSnapshot(), nil)

	w, r := executeRequest(s.T(), http.MethodGet, "/schedules/1/seat-map", nil)
	s.app.Routes().ServeHTTP(w, r)

	s.Equal(http.StatusOK, w.Code)
	s.engine.AssertExpectations(s.T())
}
