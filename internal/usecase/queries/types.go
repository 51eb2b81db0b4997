package queries

import (
	"context"
	"time"

	"courtbook/internal/domain/pricing"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type CourtView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EquipmentView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	TotalQuantity int       `json:"total_quantity"`
}

type CoachView struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	HourlyFeeCents int64             `json:"hourly_fee_cents"`
	Active         bool              `json:"active"`
	Availability   []CoachWindowView `json:"availability"`
}

// CoachWindowView times are minutes from midnight; the response layer formats
// them as HH:MM.
type CoachWindowView struct {
	Weekday      int `json:"weekday"`
	StartMinutes int `json:"start_minutes"`
	EndMinutes   int `json:"end_minutes"`
}

type BookingEquipmentView struct {
	EquipmentID uuid.UUID `json:"equipment_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
}

type BookingView struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"user_id"`
	CourtID         uuid.UUID              `json:"court_id"`
	CourtName       string                 `json:"court_name"`
	CoachID         *uuid.UUID             `json:"coach_id,omitempty"`
	CoachName       *string                `json:"coach_name,omitempty"`
	Date            string                 `json:"date"`
	StartTime       string                 `json:"start_time"`
	EndTime         string                 `json:"end_time"`
	Equipment       []BookingEquipmentView `json:"equipment,omitempty"`
	BasePriceCents  int64                  `json:"base_price_cents"`
	TotalPriceCents int64                  `json:"total_price_cents"`
	Breakdown       []pricing.LineItem     `json:"breakdown"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	CourtID         uuid.UUID `json:"court_id"`
	CourtName       string    `json:"court_name"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type WaitlistEntryView struct {
	ID         uuid.UUID  `json:"id"`
	CourtID    uuid.UUID  `json:"court_id"`
	CourtName  string     `json:"court_name"`
	Date       string     `json:"date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Status     string     `json:"status"`
	Position   int        `json:"position"`
	CreatedAt  time.Time  `json:"created_at"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
}

type PricingRuleView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Enabled      bool      `json:"enabled"`
	Priority     int       `json:"priority"`
	IsPercentage bool      `json:"is_percentage"`
	Multiplier   float64   `json:"multiplier,omitempty"`
	FlatFeeCents int64     `json:"flat_fee_cents,omitempty"`
	StartMinutes *int      `json:"start_minutes,omitempty"`
	EndMinutes   *int      `json:"end_minutes,omitempty"`
	Weekdays     []int     `json:"weekdays,omitempty"`
}

type QuoteView struct {
	BaseCents  int64              `json:"base_cents"`
	TotalCents int64              `json:"total_cents"`
	Breakdown  []pricing.LineItem `json:"breakdown"`
}

// BookedSlotView is one confirmed booking row flattened for in-memory overlap
// checks on the read side.
type BookedSlotView struct {
	CourtID      uuid.UUID
	CoachID      *uuid.UUID
	StartMinutes int
	EndMinutes   int
	Equipment    []EquipmentQty
}

type EquipmentQty struct {
	EquipmentID uuid.UUID
	Quantity    int
}

type CourtViewRepo interface {
	FindAll(ctx context.Context) ([]*CourtView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*CourtView, error)
}

type EquipmentViewRepo interface {
	FindAll(ctx context.Context) ([]*EquipmentView, error)
}

type CoachViewRepo interface {
	FindAll(ctx context.Context) ([]*CoachView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	FindConfirmedByDate(ctx context.Context, date time.Time) ([]*BookedSlotView, error)
}

type WaitlistViewRepo interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*WaitlistEntryView, error)
}

type PricingRuleViewRepo interface {
	FindAll(ctx context.Context) ([]*PricingRuleView, error)
}
