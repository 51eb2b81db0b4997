package shared

import (
	"time"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/domain/pricing"
	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
)

type CourtSnapshot struct {
	ID     uuid.UUID
	Name   string
	Type   string
	Active bool
}

func (s *CourtSnapshot) IsIndoor() bool {
	return catalog.CourtType(s.Type) == catalog.CourtIndoor
}

type CoachSnapshot struct {
	ID             uuid.UUID
	Name           string
	HourlyFeeCents int64
	Active         bool
	Availability   []CoachWindowSnapshot
}

type CoachWindowSnapshot struct {
	Weekday      int
	StartMinutes int
	EndMinutes   int
}

// ToDomain rebuilds the coach entity so command code can reuse the domain
// availability predicate instead of reimplementing it on snapshots.
func (s *CoachSnapshot) ToDomain() (*catalog.Coach, error) {
	windows := make([]catalog.AvailabilityWindow, 0, len(s.Availability))
	for _, av := range s.Availability {
		w, err := slot.NewWindow(slot.TimeOfDay(av.StartMinutes), slot.TimeOfDay(av.EndMinutes))
		if err != nil {
			return nil, err
		}
		aw, err := catalog.NewAvailabilityWindow(av.Weekday, w)
		if err != nil {
			return nil, err
		}
		windows = append(windows, aw)
	}
	return catalog.NewCoach(s.ID, s.Name, s.HourlyFeeCents, s.Active, windows)
}

type EquipmentSnapshot struct {
	ID            uuid.UUID
	Name          string
	Type          string
	TotalQuantity int
}

type PricingRuleSnapshot struct {
	ID           uuid.UUID
	Name         string
	Type         string
	Enabled      bool
	Priority     int
	IsPercentage bool
	Multiplier   float64
	FlatFeeCents int64
	StartMinutes *int
	EndMinutes   *int
	Weekdays     []int
}

// RulesFromSnapshots maps stored rule rows into engine rules. Rows with a
// broken time gate are skipped rather than failing the whole quote.
func RulesFromSnapshots(snapshots []PricingRuleSnapshot) []pricing.Rule {
	rules := make([]pricing.Rule, 0, len(snapshots))
	for _, s := range snapshots {
		rule := pricing.Rule{
			ID:           s.ID,
			Name:         s.Name,
			Type:         pricing.RuleType(s.Type),
			Enabled:      s.Enabled,
			Priority:     s.Priority,
			IsPercentage: s.IsPercentage,
			Multiplier:   s.Multiplier,
			FlatFeeCents: s.FlatFeeCents,
			Weekdays:     s.Weekdays,
		}
		if s.StartMinutes != nil && s.EndMinutes != nil {
			w, err := slot.NewWindow(slot.TimeOfDay(*s.StartMinutes), slot.TimeOfDay(*s.EndMinutes))
			if err != nil {
				continue
			}
			rule.Window = &w
		}
		rules = append(rules, rule)
	}
	return rules
}

// Minimal snapshot for command read operations
type BookingSnapshot struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	CourtID uuid.UUID
	Date    time.Time
	Status  string
}
