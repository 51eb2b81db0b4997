package api

import (
	"errors"
	"net/http"

	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingQueries queries.PricingQueries
}

func NewPricingHandler(pricingQueries queries.PricingQueries) *PricingHandler {
	return &PricingHandler{
		pricingQueries: pricingQueries,
	}
}

// @Summary Quote price
// @Description Price a hypothetical booking without reserving anything
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body reqdto.PriceQuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /pricing/quote [post]
func (h *PricingHandler) QuotePrice(c *gin.Context) {
	var req reqdto.PriceQuoteRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	quoteRM, err := h.pricingQueries.Quote(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidQuoteInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid quote request",
			})
		case errors.Is(err, queries.ErrQuoteCourtNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Court not found",
			})
		case errors.Is(err, queries.ErrQuoteCoachNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coach not found",
			})
		case errors.Is(err, queries.ErrQuoteEquipmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Equipment not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(quoteRM))
}

// @Summary List pricing rules
// @Tags pricing
// @Produce json
// @Success 200 {array} resdto.PricingRuleResponse
// @Router /pricing/rules [get]
func (h *PricingHandler) GetPricingRules(c *gin.Context) {
	rulesRM, err := h.pricingQueries.ListRules(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.PricingRuleResponse, len(rulesRM))
	for i, rm := range rulesRM {
		response[i] = resdto.FromPricingRuleView(rm)
	}
	c.JSON(http.StatusOK, response)
}
