package request

import (
	"time"

	"courtbook/internal/domain/slot"
)

// GetAvailabilityRequest binds the query string of the availability endpoint.
// The window is optional: without it the endpoint returns the full slot grid
// for the date.
type GetAvailabilityRequest struct {
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time"`
	EndTime   string `form:"end_time"`
}

func (r GetAvailabilityRequest) ToDomain() (time.Time, *slot.Window, error) {
	date, err := slot.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, nil, err
	}
	if r.StartTime == "" && r.EndTime == "" {
		return date, nil, nil
	}
	window, err := parseWindow(r.StartTime, r.EndTime)
	if err != nil {
		return time.Time{}, nil, err
	}
	return date, &window, nil
}
