// Package booking holds the reservation aggregate. A booking is created only
// through the transactional confirm flow and transitions CONFIRMED→CANCELLED
// exactly once; it is never deleted.
package booking

import (
	"errors"
	"time"

	"courtbook/internal/domain/pricing"
	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity    = errors.New("equipment quantity must be positive")
	ErrDuplicateEquipment = errors.New("duplicate equipment line item")
	ErrNotConfirmed       = errors.New("booking is not confirmed")
	ErrInvalidStatus      = errors.New("invalid booking status")
)

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusConfirmed, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// EquipmentLine is one rented pool item with its quantity.
type EquipmentLine struct {
	EquipmentID uuid.UUID
	Quantity    int
}

type Booking struct {
	id              uuid.UUID
	userID          uuid.UUID
	courtID         uuid.UUID
	coachID         *uuid.UUID
	date            time.Time
	window          slot.Window
	equipment       []EquipmentLine
	basePriceCents  int64
	totalPriceCents int64
	breakdown       []pricing.LineItem
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

// NewBooking builds a confirmed booking from a priced request. Equipment
// lines must carry positive quantities and reference distinct pools; zero or
// negative quantities are invalid input, rejected before any availability or
// locking logic runs.
func NewBooking(
	userID, courtID uuid.UUID,
	coachID *uuid.UUID,
	date time.Time,
	window slot.Window,
	equipment []EquipmentLine,
	quote pricing.Quote,
) (*Booking, error) {
	if err := ValidateEquipmentLines(equipment); err != nil {
		return nil, err
	}
	return &Booking{
		id:              uuid.New(),
		userID:          userID,
		courtID:         courtID,
		coachID:         coachID,
		date:            slot.NormalizeDate(date),
		window:          window,
		equipment:       equipment,
		basePriceCents:  quote.BaseCents,
		totalPriceCents: quote.TotalCents,
		breakdown:       quote.Breakdown,
		status:          StatusConfirmed,
	}, nil
}

func ValidateEquipmentLines(lines []EquipmentLine) error {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if _, dup := seen[line.EquipmentID]; dup {
			return ErrDuplicateEquipment
		}
		seen[line.EquipmentID] = struct{}{}
	}
	return nil
}

func Reconstruct(
	id, userID, courtID uuid.UUID,
	coachID *uuid.UUID,
	date time.Time,
	window slot.Window,
	equipment []EquipmentLine,
	basePriceCents, totalPriceCents int64,
	breakdown []pricing.LineItem,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		userID:          userID,
		courtID:         courtID,
		coachID:         coachID,
		date:            date,
		window:          window,
		equipment:       equipment,
		basePriceCents:  basePriceCents,
		totalPriceCents: totalPriceCents,
		breakdown:       breakdown,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Cancel transitions CONFIRMED→CANCELLED. The transition is terminal; a
// cancelled booking never becomes confirmed again.
func (b *Booking) Cancel() error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) IsConfirmed() bool {
	return b.status == StatusConfirmed
}

// Key is the contention scope this booking occupies.
func (b *Booking) Key() slot.Key {
	return slot.NewKey(b.courtID, b.date, b.window)
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) UserID() uuid.UUID               { return b.userID }
func (b *Booking) CourtID() uuid.UUID              { return b.courtID }
func (b *Booking) CoachID() *uuid.UUID             { return b.coachID }
func (b *Booking) Date() time.Time                 { return b.date }
func (b *Booking) Window() slot.Window             { return b.window }
func (b *Booking) Equipment() []EquipmentLine      { return b.equipment }
func (b *Booking) BasePriceCents() int64           { return b.basePriceCents }
func (b *Booking) TotalPriceCents() int64          { return b.totalPriceCents }
func (b *Booking) Breakdown() []pricing.LineItem   { return b.breakdown }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }
