package queries

import (
	"context"

	"courtbook/internal/domain/pricing"
	"courtbook/internal/handler/dto/request"
	"courtbook/internal/infra"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"
)

var (
	ErrQuoteCourtNotFound     = errs.New("court not found")
	ErrQuoteCoachNotFound     = errs.New("coach not found")
	ErrQuoteEquipmentNotFound = errs.New("equipment not found")
	ErrInvalidQuoteInput      = errs.New("invalid quote input")
)

type PricingQueries interface {
	// Quote prices a hypothetical booking. Same engine, same rules as the
	// booking path, so a quote equals the price a booking would store.
	Quote(ctx context.Context, req request.PriceQuoteRequest) (*QuoteView, error)
	ListRules(ctx context.Context) ([]*PricingRuleView, error)
}

type pricingQueriesImpl struct {
	engine   *pricing.Engine
	reads    shared.CommandReads
	ruleRepo PricingRuleViewRepo
}

func NewPricingQueries(engine *pricing.Engine, reads shared.CommandReads, ruleRepo PricingRuleViewRepo) PricingQueries {
	return &pricingQueriesImpl{
		engine:   engine,
		reads:    reads,
		ruleRepo: ruleRepo,
	}
}

func (q *pricingQueriesImpl) Quote(ctx context.Context, req request.PriceQuoteRequest) (*QuoteView, error) {
	domainData, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQuoteInput)
	}

	court, err := q.reads.CourtByID(ctx, req.CourtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrQuoteCourtNotFound
		}
		return nil, err
	}

	var coachFeeCents *int64
	if req.CoachID != nil {
		coach, err := q.reads.CoachByID(ctx, *req.CoachID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrQuoteCoachNotFound
			}
			return nil, err
		}
		fee := coach.HourlyFeeCents
		coachFeeCents = &fee
	}

	for _, line := range domainData.Equipment {
		if _, err := q.reads.EquipmentByID(ctx, line.EquipmentID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrQuoteEquipmentNotFound
			}
			return nil, err
		}
	}

	snapshots, err := q.reads.EnabledPricingRules(ctx)
	if err != nil {
		return nil, err
	}

	quote := q.engine.Calculate(pricing.Request{
		CourtIndoor:         court.IsIndoor(),
		Date:                domainData.Date,
		Window:              domainData.Window,
		EquipmentLines:      len(domainData.Equipment),
		CoachHourlyFeeCents: coachFeeCents,
	}, shared.RulesFromSnapshots(snapshots))

	return &QuoteView{
		BaseCents:  quote.BaseCents,
		TotalCents: quote.TotalCents,
		Breakdown:  quote.Breakdown,
	}, nil
}

func (q *pricingQueriesImpl) ListRules(ctx context.Context) ([]*PricingRuleView, error) {
	return q.ruleRepo.FindAll(ctx)
}
