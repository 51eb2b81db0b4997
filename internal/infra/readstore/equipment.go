package readstore

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type EquipmentReadStore struct {
	db db.DBTX
}

func NewEquipmentReadStore(dbtx db.DBTX) *EquipmentReadStore {
	return &EquipmentReadStore{db: dbtx}
}

const selectAllEquipment = `
SELECT id, name, type, total_quantity
FROM equipment
ORDER BY name`

func (r *EquipmentReadStore) FindAll(ctx context.Context) ([]*queries.EquipmentView, error) {
	rows, err := r.db.Query(ctx, selectAllEquipment)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find all equipment", err)
	}
	defer rows.Close()

	var result []*queries.EquipmentView
	for rows.Next() {
		view := &queries.EquipmentView{}
		if err := rows.Scan(&view.ID, &view.Name, &view.Type, &view.TotalQuantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan equipment row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate equipment rows", err)
	}
	return result, nil
}

const selectEquipmentByID = `
SELECT id, name, type, total_quantity
FROM equipment
WHERE id = $1`

func (r *EquipmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EquipmentView, error) {
	view := &queries.EquipmentView{}
	err := r.db.QueryRow(ctx, selectEquipmentByID, id).Scan(&view.ID, &view.Name, &view.Type, &view.TotalQuantity)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find equipment by ID", err)
	}
	return view, nil
}
