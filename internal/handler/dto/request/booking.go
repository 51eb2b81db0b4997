package request

import (
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
)

type EquipmentLineRequest struct {
	EquipmentID uuid.UUID `json:"equipment_id" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required"`
}

type CreateBookingRequest struct {
	CourtID   uuid.UUID              `json:"court_id" binding:"required"`
	Date      string                 `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string                 `json:"start_time" binding:"required"` // HH:MM
	EndTime   string                 `json:"end_time" binding:"required"`
	CoachID   *uuid.UUID             `json:"coach_id,omitempty"`
	Equipment []EquipmentLineRequest `json:"equipment,omitempty"`
}

// BookingDomainData carries the parsed request pieces the command layer
// assembles into a booking after availability and pricing resolve.
type BookingDomainData struct {
	Date      time.Time
	Window    slot.Window
	Equipment []booking.EquipmentLine
}

func (r CreateBookingRequest) ToDomain() (*BookingDomainData, error) {
	date, err := slot.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	window, err := parseWindow(r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}

	lines := make([]booking.EquipmentLine, 0, len(r.Equipment))
	for _, item := range r.Equipment {
		lines = append(lines, booking.EquipmentLine{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
		})
	}
	if err := booking.ValidateEquipmentLines(lines); err != nil {
		return nil, err
	}

	return &BookingDomainData{
		Date:      date,
		Window:    window,
		Equipment: lines,
	}, nil
}

// PriceQuoteRequest prices a hypothetical booking without touching the
// schedule. Same shape as creation so clients can quote-then-book.
type PriceQuoteRequest struct {
	CourtID   uuid.UUID              `json:"court_id" binding:"required"`
	Date      string                 `json:"date" binding:"required"`
	StartTime string                 `json:"start_time" binding:"required"`
	EndTime   string                 `json:"end_time" binding:"required"`
	CoachID   *uuid.UUID             `json:"coach_id,omitempty"`
	Equipment []EquipmentLineRequest `json:"equipment,omitempty"`
}

func (r PriceQuoteRequest) ToDomain() (*BookingDomainData, error) {
	return CreateBookingRequest{
		CourtID:   r.CourtID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		CoachID:   r.CoachID,
		Equipment: r.Equipment,
	}.ToDomain()
}

func parseWindow(start, end string) (slot.Window, error) {
	startTime, err := slot.ParseTimeOfDay(start)
	if err != nil {
		return slot.Window{}, err
	}
	endTime, err := slot.ParseTimeOfDay(end)
	if err != nil {
		return slot.Window{}, err
	}
	return slot.NewWindow(startTime, endTime)
}
