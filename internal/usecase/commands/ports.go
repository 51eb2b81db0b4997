package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SlotAvailableNotice is handed to the notification transport when a slot
// frees up and the waitlist head is promoted.
type SlotAvailableNotice struct {
	EntryID   uuid.UUID `json:"entry_id"`
	UserID    uuid.UUID `json:"user_id"`
	CourtID   uuid.UUID `json:"court_id"`
	CourtName string    `json:"court_name"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WaitlistNotifier delivers slot-available notices. Delivery happens after
// commit: a lost notice leaves the entry NOTIFIED and the sweep eventually
// expires it, so the queue never wedges.
type WaitlistNotifier interface {
	SlotAvailable(ctx context.Context, notice SlotAvailableNotice) error
}
