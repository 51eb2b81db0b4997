package response

import (
	"courtbook/internal/domain/pricing"
	"courtbook/internal/domain/slot"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteResponse struct {
	BaseCents  int64              `json:"baseCents"`
	TotalCents int64              `json:"totalCents"`
	Breakdown  []pricing.LineItem `json:"breakdown"`
}

type PricingRuleResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Enabled      bool      `json:"enabled"`
	Priority     int       `json:"priority"`
	IsPercentage bool      `json:"isPercentage"`
	Multiplier   float64   `json:"multiplier,omitempty"`
	FlatFeeCents int64     `json:"flatFeeCents,omitempty"`
	StartTime    *string   `json:"startTime,omitempty"`
	EndTime      *string   `json:"endTime,omitempty"`
	Weekdays     []int     `json:"weekdays,omitempty"`
}

func FromQuoteView(rm *queries.QuoteView) *QuoteResponse {
	return &QuoteResponse{
		BaseCents:  rm.BaseCents,
		TotalCents: rm.TotalCents,
		Breakdown:  rm.Breakdown,
	}
}

func FromPricingRuleView(rm *queries.PricingRuleView) *PricingRuleResponse {
	resp := &PricingRuleResponse{
		ID:           rm.ID,
		Name:         rm.Name,
		Type:         rm.Type,
		Enabled:      rm.Enabled,
		Priority:     rm.Priority,
		IsPercentage: rm.IsPercentage,
		Multiplier:   rm.Multiplier,
		FlatFeeCents: rm.FlatFeeCents,
		Weekdays:     rm.Weekdays,
	}
	if rm.StartMinutes != nil && rm.EndMinutes != nil {
		start := slot.TimeOfDay(*rm.StartMinutes).String()
		end := slot.TimeOfDay(*rm.EndMinutes).String()
		resp.StartTime = &start
		resp.EndTime = &end
	}
	return resp
}
