// Package waitlist holds the FIFO queue entry aggregate. Queues are scoped
// per exact (court, date, window) key and ordered by creation time.
package waitlist

import (
	"errors"
	"time"

	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
)

var (
	ErrNotWaiting    = errors.New("entry is not in WAITING status")
	ErrInvalidStatus = errors.New("invalid waitlist status")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusNotified Status = "NOTIFIED"
	StatusExpired  Status = "EXPIRED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWaiting, StatusNotified, StatusExpired:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

type Entry struct {
	id         uuid.UUID
	userID     uuid.UUID
	key        slot.Key
	status     Status
	createdAt  time.Time
	notifiedAt *time.Time
}

func NewEntry(userID uuid.UUID, key slot.Key) *Entry {
	return &Entry{
		id:     uuid.New(),
		userID: userID,
		key:    key,
		status: StatusWaiting,
	}
}

func Reconstruct(id, userID uuid.UUID, key slot.Key, status Status, createdAt time.Time, notifiedAt *time.Time) *Entry {
	return &Entry{
		id:         id,
		userID:     userID,
		key:        key,
		status:     status,
		createdAt:  createdAt,
		notifiedAt: notifiedAt,
	}
}

// MarkNotified transitions WAITING→NOTIFIED, recording when the slot-freed
// notification was handed off.
func (e *Entry) MarkNotified(now time.Time) error {
	if e.status != StatusWaiting {
		return ErrNotWaiting
	}
	e.status = StatusNotified
	e.notifiedAt = &now
	return nil
}

func (e *Entry) IsWaiting() bool {
	return e.status == StatusWaiting
}

func (e *Entry) ID() uuid.UUID          { return e.id }
func (e *Entry) UserID() uuid.UUID      { return e.userID }
func (e *Entry) Key() slot.Key          { return e.key }
func (e *Entry) Status() Status         { return e.status }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }
func (e *Entry) NotifiedAt() *time.Time { return e.notifiedAt }
