package readstore

import (
	"context"
	"time"

	"courtbook/internal/domain/slot"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type WaitlistReadStore struct {
	db db.DBTX
}

func NewWaitlistReadStore(dbtx db.DBTX) *WaitlistReadStore {
	return &WaitlistReadStore{db: dbtx}
}

// Position counts WAITING entries ahead of (or equal to) the row in its
// queue, so the head reads position 1. Non-waiting entries read position 0.
const selectWaitlistByUser = `
SELECT w.id, w.court_id, c.name, w.date, w.start_minutes, w.end_minutes,
       w.status, w.created_at, w.notified_at,
       CASE WHEN w.status = 'WAITING' THEN (
           SELECT COUNT(*) FROM waitlist_entries p
           WHERE p.court_id = w.court_id AND p.date = w.date
             AND p.start_minutes = w.start_minutes AND p.end_minutes = w.end_minutes
             AND p.status = 'WAITING'
             AND (p.created_at, p.id) <= (w.created_at, w.id)
       ) ELSE 0 END AS position
FROM waitlist_entries w
JOIN courts c ON c.id = w.court_id
WHERE w.user_id = $1
ORDER BY w.created_at DESC`

func (r *WaitlistReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.WaitlistEntryView, error) {
	rows, err := r.db.Query(ctx, selectWaitlistByUser, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find waitlist entries by user", err)
	}
	defer rows.Close()

	var result []*queries.WaitlistEntryView
	for rows.Next() {
		var (
			view     queries.WaitlistEntryView
			date     time.Time
			startMin int
			endMin   int
		)
		err := rows.Scan(
			&view.ID, &view.CourtID, &view.CourtName, &date, &startMin, &endMin,
			&view.Status, &view.CreatedAt, &view.NotifiedAt, &view.Position,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan waitlist entry row", err)
		}
		view.Date = date.Format("2006-01-02")
		view.StartTime = slot.TimeOfDay(startMin).String()
		view.EndTime = slot.TimeOfDay(endMin).String()
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate waitlist entry rows", err)
	}
	return result, nil
}
