package response

import (
	"courtbook/internal/domain/slot"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type CourtResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Active bool      `json:"active"`
}

type EquipmentResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	TotalQuantity int       `json:"totalQuantity"`
}

type CoachWindowResponse struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CoachResponse struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	HourlyFeeCents int64                 `json:"hourlyFeeCents"`
	Active         bool                  `json:"active"`
	Availability   []CoachWindowResponse `json:"availability"`
}

func FromCourtView(rm *queries.CourtView) *CourtResponse {
	return &CourtResponse{
		ID:     rm.ID,
		Name:   rm.Name,
		Type:   rm.Type,
		Active: rm.Active,
	}
}

func FromEquipmentView(rm *queries.EquipmentView) *EquipmentResponse {
	return &EquipmentResponse{
		ID:            rm.ID,
		Name:          rm.Name,
		Type:          rm.Type,
		TotalQuantity: rm.TotalQuantity,
	}
}

func FromCoachView(rm *queries.CoachView) *CoachResponse {
	resp := &CoachResponse{
		ID:             rm.ID,
		Name:           rm.Name,
		HourlyFeeCents: rm.HourlyFeeCents,
		Active:         rm.Active,
	}
	for _, w := range rm.Availability {
		resp.Availability = append(resp.Availability, CoachWindowResponse{
			Weekday:   w.Weekday,
			StartTime: slot.TimeOfDay(w.StartMinutes).String(),
			EndTime:   slot.TimeOfDay(w.EndMinutes).String(),
		})
	}
	return resp
}
