package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/pricing"
	"courtbook/internal/domain/slot"
	reqdto "courtbook/internal/handler/dto/request"
	"courtbook/internal/infra"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCourtNotFound           = errs.New("court not found")
	ErrCourtInactive           = errs.New("court is not active")
	ErrCoachNotFound           = errs.New("coach not found")
	ErrEquipmentNotFound       = errs.New("equipment not found")
	ErrPastDate                = errs.New("booking date is in the past")
	ErrSlotTaken               = errs.New("slot already booked")
	ErrResourceConflict        = errs.New("requested resources unavailable")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingAccessDenied     = errs.New("booking belongs to another user")
	ErrBookingAlreadyCancelled = errs.New("booking already cancelled")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictError aggregates every availability failure found under the court
// lock, so clients learn all of them at once instead of fixing one at a time.
type ConflictError struct {
	Reasons []string
}

func (e *ConflictError) Error() string {
	return "availability conflict: " + strings.Join(e.Reasons, "; ")
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	engine         *pricing.Engine
	bookingQueries queries.BookingQueries
	waitlist       WaitlistCommands
	clock          clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	engine *pricing.Engine,
	bookingQueries queries.BookingQueries,
	waitlist WaitlistCommands,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		engine:         engine,
		bookingQueries: bookingQueries,
		waitlist:       waitlist,
		clock:          clock,
	}
}

// CreateBooking runs the full protocol: lock the court row, re-check
// availability under the lock, price, persist. Everything between the lock
// and commit is atomic, so two racing requests for the same slot serialize
// and the loser sees the winner's row.
func (u *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	domainData, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if domainData.Date.Before(slot.NormalizeDate(u.clock.Now())) {
		return nil, ErrPastDate
	}

	var bookingID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Courts().LockByID(ctx, req.CourtID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCourtNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		court, err := tx.Reads().CourtByID(ctx, req.CourtID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !court.Active {
			return ErrCourtInactive
		}

		coach, err := u.resolveCoach(ctx, tx, req.CoachID)
		if err != nil {
			return err
		}

		if err := u.checkAvailability(ctx, tx, coach, req.CourtID, domainData); err != nil {
			return err
		}

		quote, err := u.price(ctx, tx, court, coach, domainData)
		if err != nil {
			return err
		}

		b, err := booking.NewBooking(
			userID,
			req.CourtID,
			req.CoachID,
			domainData.Date,
			domainData.Window,
			domainData.Equipment,
			quote,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			// Unique backstop for anything that slips past the lock.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrSlotTaken
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookingID = b.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the complete view from the read store
	return u.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// CancelBooking flips the booking to CANCELLED and, once the transaction has
// committed, promotes the waitlist head for the freed slot. Promotion failure
// never unwinds the cancellation.
func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	var freedKey *slot.Key

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if snapshot.UserID != userID {
			return ErrBookingAccessDenied
		}

		// Court lock first: cancellation mutates the court's schedule just
		// like creation does.
		if err := tx.Courts().LockByID(ctx, snapshot.CourtID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		b, err := tx.Bookings().FindForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := b.Cancel(); err != nil {
			return ErrBookingAlreadyCancelled
		}

		if err := tx.Bookings().MarkCancelled(ctx, bookingID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		key := b.Key()
		freedKey = &key
		return nil
	})
	if err != nil {
		return err
	}

	if notifyErr := u.waitlist.NotifyNext(ctx, *freedKey); notifyErr != nil {
		slog.Warn("waitlist promotion after cancel failed",
			"booking_id", bookingID,
			"slot", freedKey.String(),
			"error", notifyErr.Error())
	}
	return nil
}

func (u *bookingUseCaseImpl) resolveCoach(
	ctx context.Context,
	tx shared.Tx,
	coachID *uuid.UUID,
) (*shared.CoachSnapshot, error) {
	if coachID == nil {
		return nil, nil
	}
	coach, err := tx.Reads().CoachByID(ctx, *coachID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return coach, nil
}

// checkAvailability is the authoritative re-check under the court lock. The
// court slot check short-circuits to ErrSlotTaken because only that failure
// makes the request waitlist-eligible; every other failure aggregates into
// ErrResourceConflict.
func (u *bookingUseCaseImpl) checkAvailability(
	ctx context.Context,
	tx shared.Tx,
	coach *shared.CoachSnapshot,
	courtID uuid.UUID,
	data *reqdto.BookingDomainData,
) error {
	taken, err := tx.Bookings().HasCourtOverlap(ctx, courtID, data.Date, data.Window)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if taken {
		return errs.Mark(&ConflictError{Reasons: []string{"court slot already booked"}}, ErrSlotTaken)
	}

	var reasons []string

	if coach != nil {
		coachReasons, err := u.checkCoach(ctx, tx, coach, data)
		if err != nil {
			return err
		}
		reasons = append(reasons, coachReasons...)
	}

	equipmentReasons, err := u.checkEquipment(ctx, tx, data)
	if err != nil {
		return err
	}
	reasons = append(reasons, equipmentReasons...)

	if len(reasons) > 0 {
		return errs.Mark(&ConflictError{Reasons: reasons}, ErrResourceConflict)
	}
	return nil
}

func (u *bookingUseCaseImpl) checkCoach(
	ctx context.Context,
	tx shared.Tx,
	coach *shared.CoachSnapshot,
	data *reqdto.BookingDomainData,
) ([]string, error) {
	var reasons []string

	if !coach.Active {
		reasons = append(reasons, fmt.Sprintf("coach %s is not active", coach.Name))
		return reasons, nil
	}

	entity, err := coach.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if !entity.CoversWindow(slot.WeekdayOf(data.Date), data.Window) {
		reasons = append(reasons, fmt.Sprintf("coach %s does not work during the requested window", coach.Name))
	}

	busy, err := tx.Bookings().HasCoachOverlap(ctx, coach.ID, data.Date, data.Window)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if busy {
		reasons = append(reasons, fmt.Sprintf("coach %s has another booking in the requested window", coach.Name))
	}

	return reasons, nil
}

func (u *bookingUseCaseImpl) checkEquipment(
	ctx context.Context,
	tx shared.Tx,
	data *reqdto.BookingDomainData,
) ([]string, error) {
	var reasons []string

	for _, line := range data.Equipment {
		item, err := tx.Reads().EquipmentByID(ctx, line.EquipmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrEquipmentNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		booked, err := tx.Bookings().EquipmentBookedQuantity(ctx, line.EquipmentID, data.Date, data.Window)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if available := item.TotalQuantity - booked; available < line.Quantity {
			reasons = append(reasons, fmt.Sprintf(
				"equipment %s: requested %d, only %d available", item.Name, line.Quantity, available))
		}
	}

	return reasons, nil
}

func (u *bookingUseCaseImpl) price(
	ctx context.Context,
	tx shared.Tx,
	court *shared.CourtSnapshot,
	coach *shared.CoachSnapshot,
	data *reqdto.BookingDomainData,
) (pricing.Quote, error) {
	snapshots, err := tx.Reads().EnabledPricingRules(ctx)
	if err != nil {
		return pricing.Quote{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var coachFeeCents *int64
	if coach != nil {
		fee := coach.HourlyFeeCents
		coachFeeCents = &fee
	}

	return u.engine.Calculate(pricing.Request{
		CourtIndoor:         court.IsIndoor(),
		Date:                data.Date,
		Window:              data.Window,
		EquipmentLines:      len(data.Equipment),
		CoachHourlyFeeCents: coachFeeCents,
	}, shared.RulesFromSnapshots(snapshots)), nil
}
