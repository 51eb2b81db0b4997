package readstore

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/usecase/queries"
)

type PricingRuleReadStore struct {
	db db.DBTX
}

func NewPricingRuleReadStore(dbtx db.DBTX) *PricingRuleReadStore {
	return &PricingRuleReadStore{db: dbtx}
}

const selectAllRules = `
SELECT id, name, type, enabled, priority, is_percentage, multiplier,
       flat_fee_cents, start_minutes, end_minutes, weekdays
FROM pricing_rules
ORDER BY priority, name`

func (r *PricingRuleReadStore) FindAll(ctx context.Context) ([]*queries.PricingRuleView, error) {
	return r.findRules(ctx, selectAllRules)
}

const selectEnabledRules = `
SELECT id, name, type, enabled, priority, is_percentage, multiplier,
       flat_fee_cents, start_minutes, end_minutes, weekdays
FROM pricing_rules
WHERE enabled
ORDER BY priority, name`

func (r *PricingRuleReadStore) FindEnabled(ctx context.Context) ([]*queries.PricingRuleView, error) {
	return r.findRules(ctx, selectEnabledRules)
}

func (r *PricingRuleReadStore) findRules(ctx context.Context, query string) ([]*queries.PricingRuleView, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find pricing rules", err)
	}
	defer rows.Close()

	var result []*queries.PricingRuleView
	for rows.Next() {
		view := &queries.PricingRuleView{}
		err := rows.Scan(
			&view.ID, &view.Name, &view.Type, &view.Enabled, &view.Priority,
			&view.IsPercentage, &view.Multiplier, &view.FlatFeeCents,
			&view.StartMinutes, &view.EndMinutes, &view.Weekdays,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan pricing rule row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate pricing rule rows", err)
	}
	return result, nil
}
