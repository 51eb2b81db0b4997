package response

import (
	"time"

	"courtbook/internal/domain/pricing"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingEquipmentResponse struct {
	EquipmentID uuid.UUID `json:"equipmentId"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
}

type BookingResponse struct {
	ID              uuid.UUID                  `json:"id"`
	UserID          uuid.UUID                  `json:"userId"`
	CourtID         uuid.UUID                  `json:"courtId"`
	CourtName       string                     `json:"courtName"`
	CoachID         *uuid.UUID                 `json:"coachId,omitempty"`
	CoachName       *string                    `json:"coachName,omitempty"`
	Date            string                     `json:"date"`
	StartTime       string                     `json:"startTime"`
	EndTime         string                     `json:"endTime"`
	Equipment       []BookingEquipmentResponse `json:"equipment,omitempty"`
	BasePriceCents  int64                      `json:"basePriceCents"`
	TotalPriceCents int64                      `json:"totalPriceCents"`
	Breakdown       []pricing.LineItem         `json:"breakdown"`
	Status          string                     `json:"status"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	CourtID         uuid.UUID `json:"courtId"`
	CourtName       string    `json:"courtName"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	resp := &BookingResponse{
		ID:              rm.ID,
		UserID:          rm.UserID,
		CourtID:         rm.CourtID,
		CourtName:       rm.CourtName,
		CoachID:         rm.CoachID,
		CoachName:       rm.CoachName,
		Date:            rm.Date,
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		BasePriceCents:  rm.BasePriceCents,
		TotalPriceCents: rm.TotalPriceCents,
		Breakdown:       rm.Breakdown,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
	for _, item := range rm.Equipment {
		resp.Equipment = append(resp.Equipment, BookingEquipmentResponse{
			EquipmentID: item.EquipmentID,
			Name:        item.Name,
			Quantity:    item.Quantity,
		})
	}
	return resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		CourtID:         rm.CourtID,
		CourtName:       rm.CourtName,
		Date:            rm.Date,
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		TotalPriceCents: rm.TotalPriceCents,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
	}
}
