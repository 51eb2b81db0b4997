package repository

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"

	"github.com/google/uuid"
)

// CourtRepository owns the per-court write lock. Locking the court row
// serializes every schedule mutation for that court within a transaction.
type CourtRepository struct {
	db db.DBTX
}

func NewCourtRepository(dbtx db.DBTX) *CourtRepository {
	return &CourtRepository{db: dbtx}
}

const lockCourtByID = `SELECT id FROM courts WHERE id = $1 FOR UPDATE`

func (r *CourtRepository) LockByID(ctx context.Context, courtID uuid.UUID) error {
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, lockCourtByID, courtID).Scan(&id); err != nil {
		if infra.IsNoRows(err) {
			return infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock court", err)
	}
	return nil
}
