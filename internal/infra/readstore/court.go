package readstore

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type CourtReadStore struct {
	db db.DBTX
}

func NewCourtReadStore(dbtx db.DBTX) *CourtReadStore {
	return &CourtReadStore{db: dbtx}
}

const selectAllCourts = `
SELECT id, name, type, active, created_at, updated_at
FROM courts
ORDER BY name`

func (r *CourtReadStore) FindAll(ctx context.Context) ([]*queries.CourtView, error) {
	rows, err := r.db.Query(ctx, selectAllCourts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find all courts", err)
	}
	defer rows.Close()

	var result []*queries.CourtView
	for rows.Next() {
		view := &queries.CourtView{}
		if err := rows.Scan(&view.ID, &view.Name, &view.Type, &view.Active, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate court rows", err)
	}
	return result, nil
}

const selectCourtByID = `
SELECT id, name, type, active, created_at, updated_at
FROM courts
WHERE id = $1`

func (r *CourtReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CourtView, error) {
	view := &queries.CourtView{}
	err := r.db.QueryRow(ctx, selectCourtByID, id).Scan(
		&view.ID, &view.Name, &view.Type, &view.Active, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}
	return view, nil
}
