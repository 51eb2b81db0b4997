package pricing

import (
	"math"
	"time"

	"courtbook/internal/domain/slot"
)

// BaseRuleName labels the seed entry of every breakdown.
const BaseRuleName = "Base Court Price"

const baseRuleType = "base"

// Request carries everything rule predicates may inspect. The engine never
// touches storage: callers resolve entities first.
type Request struct {
	CourtIndoor bool
	Date        time.Time
	Window      slot.Window
	// EquipmentLines is the number of distinct equipment line items, not the
	// summed quantity. EQUIPMENT_FEE charges per line.
	EquipmentLines int
	// CoachHourlyFeeCents is nil when no coach is attached. COACH_FEE uses
	// this value; the rule's own flat fee is ignored for that type.
	CoachHourlyFeeCents *int64
}

// LineItem records one incremental price contribution. Amounts are deltas,
// not running totals: the sum of all line items equals the final price.
type LineItem struct {
	Rule        string   `json:"rule"`
	Type        string   `json:"type"`
	AmountCents int64    `json:"amount_cents"`
	Multiplier  *float64 `json:"multiplier,omitempty"`
}

type Quote struct {
	BaseCents  int64
	TotalCents int64
	Breakdown  []LineItem
}

type Engine struct {
	basePriceCents int64
}

func NewEngine(basePriceCents int64) *Engine {
	return &Engine{basePriceCents: basePriceCents}
}

// Calculate applies enabled rules in (priority, name) order, compounding each
// percentage rule on the already-modified price.
func (e *Engine) Calculate(req Request, rules []Rule) Quote {
	price := e.basePriceCents
	breakdown := []LineItem{{
		Rule:        BaseRuleName,
		Type:        baseRuleType,
		AmountCents: price,
	}}

	weekday := slot.WeekdayOf(req.Date)

	for _, rule := range SortRules(rules) {
		if !rule.Enabled || !applies(rule, req, weekday) {
			continue
		}

		var delta int64
		item := LineItem{Rule: rule.Name, Type: string(rule.Type)}

		if rule.IsPercentage {
			delta = int64(math.Round(float64(price) * (rule.Multiplier - 1.0)))
			m := rule.Multiplier
			item.Multiplier = &m
		} else {
			switch rule.Type {
			case RuleEquipmentFee:
				delta = rule.FlatFeeCents * int64(req.EquipmentLines)
			case RuleCoachFee:
				// The coach's own fee is authoritative for this rule type.
				delta = *req.CoachHourlyFeeCents
			default:
				delta = rule.FlatFeeCents
			}
		}

		price += delta
		item.AmountCents = delta
		breakdown = append(breakdown, item)
	}

	return Quote{
		BaseCents:  e.basePriceCents,
		TotalCents: price,
		Breakdown:  breakdown,
	}
}

func applies(rule Rule, req Request, weekday int) bool {
	switch rule.Type {
	case RulePeakHours:
		return rule.Window != nil && rule.Window.Overlaps(req.Window)
	case RuleWeekend:
		return rule.appliesToWeekday(weekday)
	case RuleIndoorPremium:
		return req.CourtIndoor
	case RuleEquipmentFee:
		return req.EquipmentLines > 0
	case RuleCoachFee:
		return req.CoachHourlyFeeCents != nil
	default:
		// Unrecognized rule types are forward-compatible no-ops.
		return false
	}
}
