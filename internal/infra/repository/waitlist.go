package repository

import (
	"context"
	"time"

	"courtbook/internal/domain/slot"
	"courtbook/internal/domain/waitlist"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"

	"github.com/google/uuid"
)

type WaitlistRepository struct {
	db db.DBTX
}

func NewWaitlistRepository(dbtx db.DBTX) *WaitlistRepository {
	return &WaitlistRepository{db: dbtx}
}

const insertWaitlistEntry = `
INSERT INTO waitlist_entries (id, user_id, court_id, date, start_minutes, end_minutes, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (r *WaitlistRepository) Insert(ctx context.Context, e *waitlist.Entry) error {
	key := e.Key()
	_, err := r.db.Exec(ctx, insertWaitlistEntry,
		e.ID(),
		e.UserID(),
		key.CourtID,
		key.Date,
		int16(key.Window.Start()),
		int16(key.Window.End()),
		string(e.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert waitlist entry", err)
	}
	return nil
}

const existsWaitingEntry = `
SELECT EXISTS (
    SELECT 1 FROM waitlist_entries
    WHERE user_id = $1 AND court_id = $2 AND date = $3
      AND start_minutes = $4 AND end_minutes = $5
      AND status = 'WAITING'
)`

func (r *WaitlistRepository) ExistsWaiting(ctx context.Context, userID uuid.UUID, key slot.Key) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, existsWaitingEntry,
		userID, key.CourtID, key.Date, int16(key.Window.Start()), int16(key.Window.End()),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check waitlist membership", err)
	}
	return exists, nil
}

// FIFO head: created_at with id as a total-order tie break, row-locked so two
// promoters cannot pick the same entry.
const selectOldestWaiting = `
SELECT id, user_id, status, created_at, notified_at
FROM waitlist_entries
WHERE court_id = $1 AND date = $2 AND start_minutes = $3 AND end_minutes = $4
  AND status = 'WAITING'
ORDER BY created_at, id
LIMIT 1
FOR UPDATE`

func (r *WaitlistRepository) OldestWaitingForUpdate(ctx context.Context, key slot.Key) (*waitlist.Entry, error) {
	var (
		id, userID uuid.UUID
		status     string
		createdAt  time.Time
		notifiedAt *time.Time
	)
	err := r.db.QueryRow(ctx, selectOldestWaiting,
		key.CourtID, key.Date, int16(key.Window.Start()), int16(key.Window.End()),
	).Scan(&id, &userID, &status, &createdAt, &notifiedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find waitlist head", err)
	}

	parsed, err := waitlist.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored waitlist status is invalid", err)
	}

	return waitlist.Reconstruct(id, userID, key, parsed, createdAt, notifiedAt), nil
}

const markEntryNotified = `
UPDATE waitlist_entries
SET status = 'NOTIFIED', notified_at = $2, updated_at = now()
WHERE id = $1 AND status = 'WAITING'`

func (r *WaitlistRepository) MarkNotified(ctx context.Context, id uuid.UUID, notifiedAt time.Time) error {
	tag, err := r.db.Exec(ctx, markEntryNotified, id, notifiedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to mark waitlist entry notified", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no waiting entry to notify", nil, infra.KindNotFound)
	}
	return nil
}

const deleteOwnedEntry = `
DELETE FROM waitlist_entries
WHERE id = $1 AND user_id = $2 AND status IN ('WAITING', 'NOTIFIED')`

func (r *WaitlistRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteOwnedEntry, id, userID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete waitlist entry", err)
	}
	return tag.RowsAffected() > 0, nil
}

const expireStaleEntries = `
UPDATE waitlist_entries
SET status = 'EXPIRED', updated_at = now()
WHERE status = 'NOTIFIED' AND notified_at < $1`

func (r *WaitlistRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, expireStaleEntries, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire stale waitlist entries", err)
	}
	return tag.RowsAffected(), nil
}
