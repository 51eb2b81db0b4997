package api

import (
	"net/http"

	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Check availability
// @Description Availability per court, equipment pool and coach. With a
// @Description window it checks that window; without one it returns the
// @Description hourly slot grid for the date.
// @Tags availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string false "Window start (HH:MM)"
// @Param end_time query string false "Window end (HH:MM)"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	var req reqdto.GetAvailabilityRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, window, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date or time window",
		})
		return
	}

	if window == nil {
		grid, err := h.availabilityQueries.SlotGrid(c.Request.Context(), date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			return
		}
		c.JSON(http.StatusOK, grid)
		return
	}

	view, err := h.availabilityQueries.CheckWindow(c.Request.Context(), date, *window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List courts
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.CourtResponse
// @Router /courts [get]
func (h *AvailabilityHandler) GetCourts(c *gin.Context) {
	courtsRM, err := h.availabilityQueries.ListCourts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.CourtResponse, len(courtsRM))
	for i, rm := range courtsRM {
		response[i] = resdto.FromCourtView(rm)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary List equipment
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.EquipmentResponse
// @Router /equipment [get]
func (h *AvailabilityHandler) GetEquipment(c *gin.Context) {
	equipmentRM, err := h.availabilityQueries.ListEquipment(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.EquipmentResponse, len(equipmentRM))
	for i, rm := range equipmentRM {
		response[i] = resdto.FromEquipmentView(rm)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary List coaches
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.CoachResponse
// @Router /coaches [get]
func (h *AvailabilityHandler) GetCoaches(c *gin.Context) {
	coachesRM, err := h.availabilityQueries.ListCoaches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.CoachResponse, len(coachesRM))
	for i, rm := range coachesRM {
		response[i] = resdto.FromCoachView(rm)
	}
	c.JSON(http.StatusOK, response)
}
