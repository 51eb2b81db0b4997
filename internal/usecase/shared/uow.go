package shared

import (
	"context"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/slot"
	"courtbook/internal/domain/waitlist"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Courts() CourtLockRepository
	Bookings() BookingRepository
	Waitlist() WaitlistRepository
	Reads() CommandReads
}

// CourtLockRepository serializes writers per court. Every mutation of a
// court's schedule takes this lock first, so availability re-checks and
// inserts inside the same transaction cannot race.
type CourtLockRepository interface {
	LockByID(ctx context.Context, courtID uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) error
	// HasCourtOverlap reports whether any confirmed booking on the court
	// overlaps the half-open window.
	HasCourtOverlap(ctx context.Context, courtID uuid.UUID, date time.Time, w slot.Window) (bool, error)
	HasCoachOverlap(ctx context.Context, coachID uuid.UUID, date time.Time, w slot.Window) (bool, error)
	// EquipmentBookedQuantity sums quantities already reserved from the pool
	// across confirmed bookings overlapping the window.
	EquipmentBookedQuantity(ctx context.Context, equipmentID uuid.UUID, date time.Time, w slot.Window) (int, error)
}

type WaitlistRepository interface {
	Insert(ctx context.Context, e *waitlist.Entry) error
	ExistsWaiting(ctx context.Context, userID uuid.UUID, key slot.Key) (bool, error)
	// OldestWaitingForUpdate returns the FIFO head of the queue for the slot
	// key, row-locked, or nil when the queue is empty.
	OldestWaitingForUpdate(ctx context.Context, key slot.Key) (*waitlist.Entry, error)
	MarkNotified(ctx context.Context, id uuid.UUID, notifiedAt time.Time) error
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error)
	// ExpireStale flips NOTIFIED entries whose notification is older than the
	// cutoff to EXPIRED and returns how many rows changed.
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type CommandReads interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*CourtSnapshot, error)
	CoachByID(ctx context.Context, id uuid.UUID) (*CoachSnapshot, error)
	EquipmentByID(ctx context.Context, id uuid.UUID) (*EquipmentSnapshot, error)
	EnabledPricingRules(ctx context.Context) ([]PricingRuleSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}
