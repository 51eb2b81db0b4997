package catalog

import (
	"errors"
	"strings"
	"time"

	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
)

var (
	ErrNegativeFee    = errors.New("hourly fee cannot be negative")
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")
)

type Coach struct {
	id             uuid.UUID
	name           string
	hourlyFeeCents int64
	active         bool
	availability   []AvailabilityWindow
	createdAt      time.Time
	updatedAt      time.Time
}

// AvailabilityWindow is one weekly recurring window a coach works,
// Monday-based weekday.
type AvailabilityWindow struct {
	Weekday int
	Window  slot.Window
}

func NewAvailabilityWindow(weekday int, window slot.Window) (AvailabilityWindow, error) {
	if weekday < 0 || weekday > 6 {
		return AvailabilityWindow{}, ErrInvalidWeekday
	}
	return AvailabilityWindow{Weekday: weekday, Window: window}, nil
}

func NewCoach(id uuid.UUID, name string, hourlyFeeCents int64, active bool, availability []AvailabilityWindow) (*Coach, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if hourlyFeeCents < 0 {
		return nil, ErrNegativeFee
	}
	return &Coach{
		id:             id,
		name:           strings.TrimSpace(name),
		hourlyFeeCents: hourlyFeeCents,
		active:         active,
		availability:   availability,
	}, nil
}

func ReconstructCoach(id uuid.UUID, name string, hourlyFeeCents int64, active bool, availability []AvailabilityWindow, createdAt, updatedAt time.Time) *Coach {
	return &Coach{
		id:             id,
		name:           name,
		hourlyFeeCents: hourlyFeeCents,
		active:         active,
		availability:   availability,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (c *Coach) ID() uuid.UUID                      { return c.id }
func (c *Coach) Name() string                       { return c.name }
func (c *Coach) HourlyFeeCents() int64              { return c.hourlyFeeCents }
func (c *Coach) IsActive() bool                     { return c.active }
func (c *Coach) Availability() []AvailabilityWindow { return c.availability }

// CoversWindow reports whether some weekly window on the given weekday fully
// contains the requested window. Partial overlap is not enough: a coach must
// be present for the whole session.
func (c *Coach) CoversWindow(weekday int, w slot.Window) bool {
	for _, av := range c.availability {
		if av.Weekday == weekday && av.Window.Contains(w) {
			return true
		}
	}
	return false
}
