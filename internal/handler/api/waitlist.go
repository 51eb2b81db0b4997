package api

import (
	"errors"
	"net/http"

	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/handler/middleware"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WaitlistHandler struct {
	waitlistCommands commands.WaitlistCommands
	waitlistQueries  queries.WaitlistQueries
}

func NewWaitlistHandler(waitlistCommands commands.WaitlistCommands, waitlistQueries queries.WaitlistQueries) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistCommands: waitlistCommands,
		waitlistQueries:  waitlistQueries,
	}
}

// @Summary Join waitlist
// @Description Queue for an occupied court slot; FIFO per slot
// @Tags waitlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.JoinWaitlistRequest true "Waitlist request"
// @Success 201 {object} resdto.WaitlistEntryResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /waitlist [post]
func (h *WaitlistHandler) JoinWaitlist(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.JoinWaitlistRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	entryRM, err := h.waitlistCommands.Join(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCourtNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Court not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid waitlist request",
			})
		case errors.Is(err, commands.ErrSlotNotTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot is free, book it directly",
				"code":  "slot_free",
			})
		case errors.Is(err, commands.ErrAlreadyQueued):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Already queued for this slot",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromWaitlistEntryView(entryRM))
}

// @Summary Leave waitlist
// @Description Remove an owned waitlist entry
// @Tags waitlist
// @Security BearerAuth
// @Param id path string true "Waitlist entry ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /waitlist/{id} [delete]
func (h *WaitlistHandler) LeaveWaitlist(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid waitlist entry ID format",
		})
		return
	}

	if err := h.waitlistCommands.Leave(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrWaitlistEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Waitlist entry not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get user waitlist entries
// @Description List the current user's waitlist entries with queue positions
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.WaitlistEntryResponse
// @Failure 401 {object} map[string]string
// @Router /waitlist [get]
func (h *WaitlistHandler) GetUserWaitlist(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	entriesRM, err := h.waitlistQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.WaitlistEntryResponse, len(entriesRM))
	for i, rm := range entriesRM {
		response[i] = resdto.FromWaitlistEntryView(rm)
	}

	c.JSON(http.StatusOK, response)
}
