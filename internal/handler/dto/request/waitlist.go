package request

import (
	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
)

type JoinWaitlistRequest struct {
	CourtID   uuid.UUID `json:"court_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
}

func (r JoinWaitlistRequest) ToDomain() (slot.Key, error) {
	date, err := slot.ParseDate(r.Date)
	if err != nil {
		return slot.Key{}, err
	}
	window, err := parseWindow(r.StartTime, r.EndTime)
	if err != nil {
		return slot.Key{}, err
	}
	return slot.NewKey(r.CourtID, date, window), nil
}
