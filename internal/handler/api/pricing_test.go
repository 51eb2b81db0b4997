//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"courtbook/internal/domain/pricing"
	"courtbook/internal/handler/api"
	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/usecase/queries"
	"courtbook/tests/common/httptest"
	"courtbook/tests/common/testutil"
	queriesmock "courtbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PricingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockPricingQueries
	handler     *api.PricingHandler
}

func (s *PricingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockPricingQueries(s.mockCtrl)
	s.handler = api.NewPricingHandler(s.mockQueries)

	// Setup routes
	s.router.POST("/pricing/quote", s.handler.QuotePrice)
	s.router.GET("/pricing/rules", s.handler.GetPricingRules)
}

func (s *PricingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPricingHandlerSuite(t *testing.T) {
	suite.Run(t, new(PricingHandlerTestSuite))
}

// ================================================================================
// TestQuotePrice
// ================================================================================

func (s *PricingHandlerTestSuite) TestQuotePrice() {
	url := "/pricing/quote"

	reqBody := reqdto.PriceQuoteRequest{
		CourtID:   uuid.New(),
		Date:      "2026-03-07",
		StartTime: "18:00",
		EndTime:   "20:00",
	}

	s.Run("success: returns 200 OK with quote breakdown", func() {
		view := &queries.QuoteView{
			BaseCents:  50000,
			TotalCents: 90000,
			Breakdown: []pricing.LineItem{
				{Rule: pricing.BaseRuleName, Type: "BASE", AmountCents: 50000},
				{Rule: "Peak Hours", Type: "PEAK_HOURS", AmountCents: 10000},
				{Rule: "Weekend", Type: "WEEKEND", AmountCents: 30000},
			},
		}
		s.mockQueries.EXPECT().Quote(gomock.Any(), reqBody).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(90000), response.TotalCents)
		s.Len(response.Breakdown, 3)

		var sum int64
		for _, line := range response.Breakdown {
			sum += line.AmountCents
		}
		s.Equal(response.TotalCents, sum)
	})

	s.Run("error: 400 Bad Request on missing required fields", func() {
		for _, field := range []string{"court_id", "date", "start_time", "end_time"} {
			s.Run("missing field: "+field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid quote input",
				queriesError:   queries.ErrInvalidQuoteInput,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid quote request",
			},
			{
				name:           "court not found",
				queriesError:   queries.ErrQuoteCourtNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Court not found",
			},
			{
				name:           "coach not found",
				queriesError:   queries.ErrQuoteCoachNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coach not found",
			},
			{
				name:           "equipment not found",
				queriesError:   queries.ErrQuoteEquipmentNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Equipment not found",
			},
			{
				name:           "internal server error",
				queriesError:   errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().Quote(gomock.Any(), reqBody).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetPricingRules
// ================================================================================

func (s *PricingHandlerTestSuite) TestGetPricingRules() {
	url := "/pricing/rules"

	s.Run("success: returns 200 OK with rule list", func() {
		start := 18 * 60
		end := 21 * 60
		rules := []*queries.PricingRuleView{
			{
				ID:           uuid.New(),
				Name:         "Peak Hours",
				Type:         "PEAK_HOURS",
				Enabled:      true,
				Priority:     10,
				IsPercentage: true,
				Multiplier:   1.2,
				StartMinutes: &start,
				EndMinutes:   &end,
			},
			{
				ID:           uuid.New(),
				Name:         "Equipment Fee",
				Type:         "EQUIPMENT_FEE",
				Enabled:      true,
				Priority:     40,
				FlatFeeCents: 5000,
			},
		}
		s.mockQueries.EXPECT().ListRules(gomock.Any()).Return(rules, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.PricingRuleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Require().NotNil(response[0].StartTime)
		s.Equal("18:00", *response[0].StartTime)
		s.Nil(response[1].StartTime)
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().ListRules(gomock.Any()).Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
