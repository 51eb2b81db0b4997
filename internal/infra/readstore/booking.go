package readstore

import (
	"context"
	"encoding/json"
	"time"

	"courtbook/internal/domain/slot"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const selectBookingByID = `
SELECT b.id, b.user_id, b.court_id, c.name, b.coach_id, co.name,
       b.date, b.start_minutes, b.end_minutes,
       b.base_price_cents, b.total_price_cents, b.breakdown,
       b.status, b.created_at, b.updated_at
FROM bookings b
JOIN courts c ON c.id = b.court_id
LEFT JOIN coaches co ON co.id = b.coach_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		date      time.Time
		startMin  int
		endMin    int
		breakdown []byte
	)
	err := r.db.QueryRow(ctx, selectBookingByID, id).Scan(
		&view.ID, &view.UserID, &view.CourtID, &view.CourtName, &view.CoachID, &view.CoachName,
		&date, &startMin, &endMin,
		&view.BasePriceCents, &view.TotalPriceCents, &breakdown,
		&view.Status, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.Date = date.Format("2006-01-02")
	view.StartTime = slot.TimeOfDay(startMin).String()
	view.EndTime = slot.TimeOfDay(endMin).String()

	if err := json.Unmarshal(breakdown, &view.Breakdown); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal price breakdown", err)
	}

	equipment, err := r.findEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Equipment = equipment
	return &view, nil
}

const selectBookingsByUser = `
SELECT b.id, b.court_id, c.name, b.date, b.start_minutes, b.end_minutes,
       b.total_price_cents, b.status, b.created_at
FROM bookings b
JOIN courts c ON c.id = b.court_id
WHERE b.user_id = $1
ORDER BY b.date DESC, b.start_minutes DESC`

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, selectBookingsByUser, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var (
			item     queries.BookingListItem
			date     time.Time
			startMin int
			endMin   int
		)
		err := rows.Scan(
			&item.ID, &item.CourtID, &item.CourtName, &date, &startMin, &endMin,
			&item.TotalPriceCents, &item.Status, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		item.Date = date.Format("2006-01-02")
		item.StartTime = slot.TimeOfDay(startMin).String()
		item.EndTime = slot.TimeOfDay(endMin).String()
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list rows", err)
	}
	return result, nil
}

const selectConfirmedByDate = `
SELECT b.id, b.court_id, b.coach_id, b.start_minutes, b.end_minutes
FROM bookings b
WHERE b.date = $1 AND b.status = 'CONFIRMED'`

const selectEquipmentForBookings = `
SELECT be.booking_id, be.equipment_id, be.quantity
FROM booking_equipment be
JOIN bookings b ON b.id = be.booking_id
WHERE b.date = $1 AND b.status = 'CONFIRMED'`

func (r *BookingReadStore) FindConfirmedByDate(ctx context.Context, date time.Time) ([]*queries.BookedSlotView, error) {
	rows, err := r.db.Query(ctx, selectConfirmedByDate, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find confirmed bookings by date", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*queries.BookedSlotView)
	var result []*queries.BookedSlotView
	for rows.Next() {
		var (
			id   uuid.UUID
			view queries.BookedSlotView
		)
		if err := rows.Scan(&id, &view.CourtID, &view.CoachID, &view.StartMinutes, &view.EndMinutes); err != nil {
			return nil, infra.WrapRepoErr("failed to scan confirmed booking row", err)
		}
		byID[id] = &view
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate confirmed booking rows", err)
	}

	eqRows, err := r.db.Query(ctx, selectEquipmentForBookings, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load equipment usage by date", err)
	}
	defer eqRows.Close()

	for eqRows.Next() {
		var (
			bookingID uuid.UUID
			qty       queries.EquipmentQty
		)
		if err := eqRows.Scan(&bookingID, &qty.EquipmentID, &qty.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan equipment usage row", err)
		}
		if view, ok := byID[bookingID]; ok {
			view.Equipment = append(view.Equipment, qty)
		}
	}
	if err := eqRows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate equipment usage rows", err)
	}

	return result, nil
}

const selectBookingEquipmentViews = `
SELECT be.equipment_id, e.name, be.quantity
FROM booking_equipment be
JOIN equipment e ON e.id = be.equipment_id
WHERE be.booking_id = $1
ORDER BY e.name`

func (r *BookingReadStore) findEquipment(ctx context.Context, bookingID uuid.UUID) ([]queries.BookingEquipmentView, error) {
	rows, err := r.db.Query(ctx, selectBookingEquipmentViews, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking equipment", err)
	}
	defer rows.Close()

	var result []queries.BookingEquipmentView
	for rows.Next() {
		var item queries.BookingEquipmentView
		if err := rows.Scan(&item.EquipmentID, &item.Name, &item.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking equipment row", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking equipment rows", err)
	}
	return result, nil
}
