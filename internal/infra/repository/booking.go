package repository

import (
	"context"
	"encoding/json"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/pricing"
	"courtbook/internal/domain/slot"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const insertBooking = `
INSERT INTO bookings (
    id, user_id, court_id, coach_id, date, start_minutes, end_minutes,
    base_price_cents, total_price_cents, breakdown, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const insertBookingEquipment = `
INSERT INTO booking_equipment (booking_id, equipment_id, quantity)
VALUES ($1, $2, $3)`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	breakdown, err := json.Marshal(b.Breakdown())
	if err != nil {
		return infra.WrapRepoErr("failed to marshal price breakdown", err)
	}

	_, err = r.db.Exec(ctx, insertBooking,
		b.ID(),
		b.UserID(),
		b.CourtID(),
		b.CoachID(),
		b.Date(),
		int16(b.Window().Start().Minutes()),
		int16(b.Window().End().Minutes()),
		b.BasePriceCents(),
		b.TotalPriceCents(),
		breakdown,
		string(b.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	for _, line := range b.Equipment() {
		if _, err := r.db.Exec(ctx, insertBookingEquipment, b.ID(), line.EquipmentID, line.Quantity); err != nil {
			return infra.WrapRepoErr("failed to create booking equipment line", err)
		}
	}

	return nil
}

const selectBookingForUpdate = `
SELECT id, user_id, court_id, coach_id, date, start_minutes, end_minutes,
       base_price_cents, total_price_cents, breakdown, status, created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE`

const selectBookingEquipment = `
SELECT equipment_id, quantity
FROM booking_equipment
WHERE booking_id = $1
ORDER BY equipment_id`

func (r *BookingRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		row struct {
			id, userID, courtID uuid.UUID
			coachID             *uuid.UUID
			date                time.Time
			startMin, endMin    int16
			baseCents, total    int64
			breakdown           []byte
			status              string
			createdAt           time.Time
			updatedAt           time.Time
		}
	)

	err := r.db.QueryRow(ctx, selectBookingForUpdate, id).Scan(
		&row.id, &row.userID, &row.courtID, &row.coachID, &row.date,
		&row.startMin, &row.endMin, &row.baseCents, &row.total,
		&row.breakdown, &row.status, &row.createdAt, &row.updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}

	window, err := slot.NewWindow(slot.TimeOfDay(row.startMin), slot.TimeOfDay(row.endMin))
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking window is invalid", err)
	}

	var breakdown []pricing.LineItem
	if err := json.Unmarshal(row.breakdown, &breakdown); err != nil {
		return nil, infra.WrapRepoErr("failed to unmarshal price breakdown", err)
	}

	status, err := booking.ParseStatus(row.status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking status is invalid", err)
	}

	equipment, err := r.findEquipmentLines(ctx, id)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(
		row.id, row.userID, row.courtID, row.coachID,
		row.date, window, equipment,
		row.baseCents, row.total, breakdown,
		status, row.createdAt, row.updatedAt,
	), nil
}

const markBookingCancelled = `
UPDATE bookings
SET status = 'CANCELLED', updated_at = now()
WHERE id = $1 AND status = 'CONFIRMED'`

func (r *BookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, markBookingCancelled, id)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no confirmed booking to cancel", nil, infra.KindNotFound)
	}
	return nil
}

// Half-open overlap: [a, b) and [c, d) intersect iff a < d AND b > c.
const existsCourtOverlap = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE court_id = $1 AND date = $2 AND status = 'CONFIRMED'
      AND start_minutes < $4 AND end_minutes > $3
)`

func (r *BookingRepository) HasCourtOverlap(ctx context.Context, courtID uuid.UUID, date time.Time, w slot.Window) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, existsCourtOverlap, courtID, date, int16(w.Start()), int16(w.End())).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check court overlap", err)
	}
	return exists, nil
}

const existsCoachOverlap = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE coach_id = $1 AND date = $2 AND status = 'CONFIRMED'
      AND start_minutes < $4 AND end_minutes > $3
)`

func (r *BookingRepository) HasCoachOverlap(ctx context.Context, coachID uuid.UUID, date time.Time, w slot.Window) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, existsCoachOverlap, coachID, date, int16(w.Start()), int16(w.End())).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check coach overlap", err)
	}
	return exists, nil
}

const sumEquipmentBooked = `
SELECT COALESCE(SUM(be.quantity), 0)
FROM booking_equipment be
JOIN bookings b ON b.id = be.booking_id
WHERE be.equipment_id = $1 AND b.date = $2 AND b.status = 'CONFIRMED'
  AND b.start_minutes < $4 AND b.end_minutes > $3`

func (r *BookingRepository) EquipmentBookedQuantity(ctx context.Context, equipmentID uuid.UUID, date time.Time, w slot.Window) (int, error) {
	var booked int
	err := r.db.QueryRow(ctx, sumEquipmentBooked, equipmentID, date, int16(w.Start()), int16(w.End())).Scan(&booked)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum booked equipment quantity", err)
	}
	return booked, nil
}

func (r *BookingRepository) findEquipmentLines(ctx context.Context, bookingID uuid.UUID) ([]booking.EquipmentLine, error) {
	rows, err := r.db.Query(ctx, selectBookingEquipment, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking equipment lines", err)
	}
	defer rows.Close()

	var lines []booking.EquipmentLine
	for rows.Next() {
		var line booking.EquipmentLine
		if err := rows.Scan(&line.EquipmentID, &line.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking equipment line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking equipment lines", err)
	}
	return lines, nil
}
