package commands

import (
	"context"
	"log/slog"

	"courtbook/internal/domain/slot"
	"courtbook/internal/domain/waitlist"
	reqdto "courtbook/internal/handler/dto/request"
	"courtbook/internal/infra"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotNotTaken          = errs.New("slot is free, book it directly")
	ErrAlreadyQueued         = errs.New("user already queued for this slot")
	ErrWaitlistEntryNotFound = errs.New("waitlist entry not found")
)

type WaitlistCommands interface {
	Join(ctx context.Context, req reqdto.JoinWaitlistRequest, userID uuid.UUID) (*queries.WaitlistEntryView, error)
	Leave(ctx context.Context, entryID, userID uuid.UUID) error
	// NotifyNext promotes the FIFO head for the freed slot, if any. Runs in
	// its own transaction; callers invoke it after the freeing commit.
	NotifyNext(ctx context.Context, key slot.Key) error
	// ExpireStale sweeps NOTIFIED entries older than the notify TTL to
	// EXPIRED. Idempotent: a second sweep finds nothing to do.
	ExpireStale(ctx context.Context) (int64, error)
}

type waitlistUseCaseImpl struct {
	uow             shared.UnitOfWork
	notifier        WaitlistNotifier
	waitlistQueries queries.WaitlistQueries
	cfg             config.WaitlistConfig
	clock           clock.Clock
}

func NewWaitlistUseCase(
	uow shared.UnitOfWork,
	notifier WaitlistNotifier,
	waitlistQueries queries.WaitlistQueries,
	cfg config.WaitlistConfig,
	clock clock.Clock,
) WaitlistCommands {
	return &waitlistUseCaseImpl{
		uow:             uow,
		notifier:        notifier,
		waitlistQueries: waitlistQueries,
		cfg:             cfg,
		clock:           clock,
	}
}

// Join appends the caller to the queue for an occupied slot. The court lock
// keeps the occupancy check stable against a concurrent cancellation.
func (u *waitlistUseCaseImpl) Join(
	ctx context.Context,
	req reqdto.JoinWaitlistRequest,
	userID uuid.UUID,
) (*queries.WaitlistEntryView, error) {
	key, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var entryID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Courts().LockByID(ctx, key.CourtID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCourtNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		taken, err := tx.Bookings().HasCourtOverlap(ctx, key.CourtID, key.Date, key.Window)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !taken {
			return ErrSlotNotTaken
		}

		queued, err := tx.Waitlist().ExistsWaiting(ctx, userID, key)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if queued {
			return ErrAlreadyQueued
		}

		entry := waitlist.NewEntry(userID, key)
		if err := tx.Waitlist().Insert(ctx, entry); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrAlreadyQueued
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entryID = entry.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.findEntryView(ctx, userID, entryID)
}

func (u *waitlistUseCaseImpl) Leave(ctx context.Context, entryID, userID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		deleted, err := tx.Waitlist().DeleteOwned(ctx, entryID, userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !deleted {
			return ErrWaitlistEntryNotFound
		}
		return nil
	})
}

func (u *waitlistUseCaseImpl) NotifyNext(ctx context.Context, key slot.Key) error {
	var notice *SlotAvailableNotice

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Courts().LockByID(ctx, key.CourtID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// The slot may have been re-booked between the freeing commit and
		// this transaction; promoting then would notify into a dead end.
		taken, err := tx.Bookings().HasCourtOverlap(ctx, key.CourtID, key.Date, key.Window)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if taken {
			return nil
		}

		entry, err := tx.Waitlist().OldestWaitingForUpdate(ctx, key)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if entry == nil {
			return nil
		}

		now := u.clock.Now()
		if err := entry.MarkNotified(now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Waitlist().MarkNotified(ctx, entry.ID(), now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		court, err := tx.Reads().CourtByID(ctx, key.CourtID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		notice = &SlotAvailableNotice{
			EntryID:   entry.ID(),
			UserID:    entry.UserID(),
			CourtID:   key.CourtID,
			CourtName: court.Name,
			Date:      key.Date.Format("2006-01-02"),
			StartTime: key.Window.Start().String(),
			EndTime:   key.Window.End().String(),
			ExpiresAt: now.Add(u.cfg.NotifyTTL),
		}
		return nil
	})
	if err != nil {
		return err
	}

	if notice != nil {
		if publishErr := u.notifier.SlotAvailable(ctx, *notice); publishErr != nil {
			// The entry stays NOTIFIED; the sweep expires it if the user
			// never acts on the lost notice.
			slog.Warn("failed to publish slot-available notice",
				"entry_id", notice.EntryID,
				"error", publishErr.Error())
		}
	}
	return nil
}

func (u *waitlistUseCaseImpl) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := u.clock.Now().Add(-u.cfg.NotifyTTL)

	var expired int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Waitlist().ExpireStale(ctx, cutoff)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		slog.Info("expired stale waitlist notifications", "count", expired)
	}
	return expired, nil
}

func (u *waitlistUseCaseImpl) findEntryView(ctx context.Context, userID, entryID uuid.UUID) (*queries.WaitlistEntryView, error) {
	views, err := u.waitlistQueries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if v.ID == entryID {
			return v, nil
		}
	}
	return nil, ErrWaitlistEntryNotFound
}
