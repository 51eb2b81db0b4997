package queries

import (
	"context"

	"github.com/google/uuid"
)

type WaitlistQueries interface {
	// ListByUser returns the caller's waitlist entries with their 1-indexed
	// FIFO position among WAITING entries for the same slot.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*WaitlistEntryView, error)
}

type waitlistQueriesImpl struct {
	repo WaitlistViewRepo
}

func NewWaitlistQueries(repo WaitlistViewRepo) WaitlistQueries {
	return &waitlistQueriesImpl{repo: repo}
}

func (q *waitlistQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*WaitlistEntryView, error) {
	return q.repo.FindByUserID(ctx, userID)
}
