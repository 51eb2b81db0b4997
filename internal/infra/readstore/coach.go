package readstore

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type CoachReadStore struct {
	db db.DBTX
}

func NewCoachReadStore(dbtx db.DBTX) *CoachReadStore {
	return &CoachReadStore{db: dbtx}
}

const selectAllCoaches = `
SELECT id, name, hourly_fee_cents, active
FROM coaches
ORDER BY name`

func (r *CoachReadStore) FindAll(ctx context.Context) ([]*queries.CoachView, error) {
	rows, err := r.db.Query(ctx, selectAllCoaches)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find all coaches", err)
	}
	defer rows.Close()

	var result []*queries.CoachView
	for rows.Next() {
		view := &queries.CoachView{}
		if err := rows.Scan(&view.ID, &view.Name, &view.HourlyFeeCents, &view.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coach row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coach rows", err)
	}

	for _, view := range result {
		availability, err := r.findAvailability(ctx, view.ID)
		if err != nil {
			return nil, err
		}
		view.Availability = availability
	}
	return result, nil
}

const selectCoachByID = `
SELECT id, name, hourly_fee_cents, active
FROM coaches
WHERE id = $1`

func (r *CoachReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CoachView, error) {
	view := &queries.CoachView{}
	err := r.db.QueryRow(ctx, selectCoachByID, id).Scan(&view.ID, &view.Name, &view.HourlyFeeCents, &view.Active)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coach not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coach by ID", err)
	}

	availability, err := r.findAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Availability = availability
	return view, nil
}

const selectCoachAvailability = `
SELECT weekday, start_minutes, end_minutes
FROM coach_availability
WHERE coach_id = $1
ORDER BY weekday, start_minutes`

func (r *CoachReadStore) findAvailability(ctx context.Context, coachID uuid.UUID) ([]queries.CoachWindowView, error) {
	rows, err := r.db.Query(ctx, selectCoachAvailability, coachID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load coach availability", err)
	}
	defer rows.Close()

	var windows []queries.CoachWindowView
	for rows.Next() {
		var w queries.CoachWindowView
		if err := rows.Scan(&w.Weekday, &w.StartMinutes, &w.EndMinutes); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coach availability row", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coach availability rows", err)
	}
	return windows, nil
}
