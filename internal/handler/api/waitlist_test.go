//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"courtbook/internal/handler/api"
	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/queries"
	"courtbook/tests/common/httptest"
	"courtbook/tests/common/testutil"
	commandsmock "courtbook/tests/mock/commands"
	queriesmock "courtbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WaitlistHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockWaitlistCommands
	mockQueries  *queriesmock.MockWaitlistQueries
	handler      *api.WaitlistHandler
	userID       uuid.UUID
}

func (s *WaitlistHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockWaitlistCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockWaitlistQueries(s.mockCtrl)
	s.handler = api.NewWaitlistHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	// Setup routes
	s.router.POST("/waitlist", authMiddleware, s.handler.JoinWaitlist)
	s.router.GET("/waitlist", authMiddleware, s.handler.GetUserWaitlist)
	s.router.DELETE("/waitlist/:id", authMiddleware, s.handler.LeaveWaitlist)
}

func (s *WaitlistHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWaitlistHandlerSuite(t *testing.T) {
	suite.Run(t, new(WaitlistHandlerTestSuite))
}

func (s *WaitlistHandlerTestSuite) joinRequest() reqdto.JoinWaitlistRequest {
	return reqdto.JoinWaitlistRequest{
		CourtID:   uuid.New(),
		Date:      "2026-03-06",
		StartTime: "18:00",
		EndTime:   "20:00",
	}
}

func (s *WaitlistHandlerTestSuite) entryView(id uuid.UUID, position int) *queries.WaitlistEntryView {
	return &queries.WaitlistEntryView{
		ID:        id,
		CourtID:   uuid.New(),
		CourtName: "Court 1",
		Date:      "2026-03-06",
		StartTime: "18:00",
		EndTime:   "20:00",
		Status:    "WAITING",
		Position:  position,
		CreatedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
}

// ================================================================================
// TestJoinWaitlist
// ================================================================================

func (s *WaitlistHandlerTestSuite) TestJoinWaitlist() {
	url := "/waitlist"

	reqBody := s.joinRequest()
	returnView := s.entryView(uuid.New(), 1)

	s.Run("success: returns 201 Created with entry and position", func() {
		s.mockCommands.EXPECT().Join(gomock.Any(), reqBody, s.userID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.WaitlistEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal("WAITING", response.Status)
		s.Equal(1, response.Position)
	})

	s.Run("error: 400 Bad Request on missing required fields", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: court_id", mutate: testutil.Field("court_id", nil)},
			{name: "missing field: date", mutate: testutil.Field("date", nil)},
			{name: "missing field: start_time", mutate: testutil.Field("start_time", nil)},
			{name: "missing field: end_time", mutate: testutil.Field("end_time", nil)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 409 for a free slot carries slot_free code", func() {
		s.mockCommands.EXPECT().Join(gomock.Any(), reqBody, s.userID).
			Return(nil, commands.ErrSlotNotTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusConflict, rec.Code)
		body := map[string]any{}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("slot_free", body["code"])
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "court not found",
				commandsError:  commands.ErrCourtNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Court not found",
			},
			{
				name:           "domain validation",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid waitlist request",
			},
			{
				name:           "already queued",
				commandsError:  commands.ErrAlreadyQueued,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Already queued",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Join(gomock.Any(), reqBody, s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestLeaveWaitlist
// ================================================================================

func (s *WaitlistHandlerTestSuite) TestLeaveWaitlist() {
	entryID := uuid.New()
	url := "/waitlist/" + entryID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Leave(gomock.Any(), entryID, s.userID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/waitlist/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid waitlist entry ID")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 when entry is missing or owned by someone else", func() {
		s.mockCommands.EXPECT().Leave(gomock.Any(), entryID, s.userID).
			Return(commands.ErrWaitlistEntryNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Waitlist entry not found")
	})

	s.Run("error: 500 on command failure", func() {
		s.mockCommands.EXPECT().Leave(gomock.Any(), entryID, s.userID).
			Return(errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGetUserWaitlist
// ================================================================================

func (s *WaitlistHandlerTestSuite) TestGetUserWaitlist() {
	url := "/waitlist"

	s.Run("success: returns 200 OK with entries", func() {
		notified := s.entryView(uuid.New(), 0)
		notified.Status = "NOTIFIED"
		notifiedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		notified.NotifiedAt = &notifiedAt

		entries := []*queries.WaitlistEntryView{notified, s.entryView(uuid.New(), 2)}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(entries, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.WaitlistEntryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("NOTIFIED", response[0].Status)
		s.NotNil(response[0].NotifiedAt)
		s.Equal(2, response[1].Position)
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
