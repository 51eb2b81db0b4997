// Package pricing is the pure rule engine: same request and rule set always
// produce the same total and the same ordered breakdown.
package pricing

import (
	"sort"

	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
)

type RuleType string

const (
	RulePeakHours     RuleType = "PEAK_HOURS"
	RuleWeekend       RuleType = "WEEKEND"
	RuleIndoorPremium RuleType = "INDOOR_PREMIUM"
	RuleEquipmentFee  RuleType = "EQUIPMENT_FEE"
	RuleCoachFee      RuleType = "COACH_FEE"
)

// Rule is one configurable pricing rule. Exactly one of the multiplier or
// flat-fee semantics is active, selected by IsPercentage.
type Rule struct {
	ID           uuid.UUID
	Name         string
	Type         RuleType
	Enabled      bool
	Priority     int
	IsPercentage bool
	Multiplier   float64
	FlatFeeCents int64
	// Window gates time-based rules (PEAK_HOURS); nil means no time gate.
	Window *slot.Window
	// Weekdays gates day-based rules (WEEKEND), Monday=0; empty means no gate.
	Weekdays []int
}

// SortRules orders rules for application: priority ascending, ties broken by
// name. The ordering is load-bearing because percentage rules compound on the
// already-modified price.
func SortRules(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func (r Rule) appliesToWeekday(weekday int) bool {
	for _, d := range r.Weekdays {
		if d == weekday {
			return true
		}
	}
	return false
}
