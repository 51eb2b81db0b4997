//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"courtbook/internal/handler/api"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/usecase/queries"
	"courtbook/tests/common/httptest"
	queriesmock "courtbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	// Setup routes
	s.router.GET("/availability", s.handler.GetAvailability)
	s.router.GET("/courts", s.handler.GetCourts)
	s.router.GET("/equipment", s.handler.GetEquipment)
	s.router.GET("/coaches", s.handler.GetCoaches)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

// ================================================================================
// TestGetAvailability
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestGetAvailability() {
	s.Run("success: window query returns window availability", func() {
		view := &queries.AvailabilityView{
			Date:      "2026-03-06",
			StartTime: "18:00",
			EndTime:   "20:00",
			Courts: []queries.CourtAvailability{
				{ID: uuid.New(), Name: "Court 1", Type: "INDOOR", Available: false},
				{ID: uuid.New(), Name: "Court 2", Type: "OUTDOOR", Available: true},
			},
		}
		s.mockQueries.EXPECT().CheckWindow(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router,
			http.MethodGet, "/availability?date=2026-03-06&start_time=18:00&end_time=20:00", nil, "")

		var response queries.AvailabilityView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Courts, 2)
		s.False(response.Courts[0].Available)
		s.True(response.Courts[1].Available)
	})

	s.Run("success: no window returns the hourly slot grid", func() {
		grid := &queries.SlotGridView{
			Date: "2026-03-06",
			Slots: []queries.GridSlot{
				{StartTime: "06:00", EndTime: "07:00"},
				{StartTime: "07:00", EndTime: "08:00"},
			},
		}
		s.mockQueries.EXPECT().SlotGrid(gomock.Any(), gomock.Any()).
			Return(grid, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=2026-03-06", nil, "")

		var response queries.SlotGridView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2026-03-06", response.Date)
		s.Len(response.Slots, 2)
	})

	s.Run("error: 400 Bad Request on bad input", func() {
		testCases := []struct {
			name string
			url  string
		}{
			{name: "missing date", url: "/availability"},
			{name: "malformed date", url: "/availability?date=06-03-2026"},
			{name: "malformed time", url: "/availability?date=2026-03-06&start_time=6pm&end_time=20:00"},
			{name: "inverted window", url: "/availability?date=2026-03-06&start_time=20:00&end_time=18:00"},
			{name: "start without end", url: "/availability?date=2026-03-06&start_time=18:00"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().SlotGrid(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=2026-03-06", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestCatalogListings
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestGetCourts() {
	s.Run("success: returns 200 OK with courts", func() {
		courts := []*queries.CourtView{
			{ID: uuid.New(), Name: "Court 1", Type: "INDOOR", Active: true},
			{ID: uuid.New(), Name: "Court 2", Type: "OUTDOOR", Active: false},
		}
		s.mockQueries.EXPECT().ListCourts(gomock.Any()).Return(courts, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/courts", nil, "")

		var response []resdto.CourtResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("Court 1", response[0].Name)
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().ListCourts(gomock.Any()).Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/courts", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetEquipment() {
	s.Run("success: returns 200 OK with equipment", func() {
		equipment := []*queries.EquipmentView{
			{ID: uuid.New(), Name: "Racket", Type: "RACKET", TotalQuantity: 10},
		}
		s.mockQueries.EXPECT().ListEquipment(gomock.Any()).Return(equipment, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment", nil, "")

		var response []resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(10, response[0].TotalQuantity)
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetCoaches() {
	s.Run("success: returns 200 OK with coaches and formatted hours", func() {
		coaches := []*queries.CoachView{
			{
				ID:             uuid.New(),
				Name:           "Coach Kim",
				HourlyFeeCents: 30000,
				Active:         true,
				Availability: []queries.CoachWindowView{
					{Weekday: 0, StartMinutes: 17 * 60, EndMinutes: 21 * 60},
				},
			},
		}
		s.mockQueries.EXPECT().ListCoaches(gomock.Any()).Return(coaches, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/coaches", nil, "")

		var response []resdto.CoachResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Require().Len(response[0].Availability, 1)
		s.Equal("17:00", response[0].Availability[0].StartTime)
		s.Equal("21:00", response[0].Availability[0].EndTime)
	})
}
