package response

import (
	"time"

	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type WaitlistEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	CourtID    uuid.UUID  `json:"courtId"`
	CourtName  string     `json:"courtName"`
	Date       string     `json:"date"`
	StartTime  string     `json:"startTime"`
	EndTime    string     `json:"endTime"`
	Status     string     `json:"status"`
	Position   int        `json:"position"`
	CreatedAt  time.Time  `json:"createdAt"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
}

func FromWaitlistEntryView(rm *queries.WaitlistEntryView) *WaitlistEntryResponse {
	return &WaitlistEntryResponse{
		ID:         rm.ID,
		CourtID:    rm.CourtID,
		CourtName:  rm.CourtName,
		Date:       rm.Date,
		StartTime:  rm.StartTime,
		EndTime:    rm.EndTime,
		Status:     rm.Status,
		Position:   rm.Position,
		CreatedAt:  rm.CreatedAt,
		NotifiedAt: rm.NotifiedAt,
	}
}
