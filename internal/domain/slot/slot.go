// Package slot holds the time-of-day and window value objects shared by
// availability, pricing, booking and waitlist logic.
package slot

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeOfDay = errors.New("time of day must be between 00:00 and 24:00")
	ErrInvalidWindow    = errors.New("window start must be before end")
	ErrInvalidFormat    = errors.New("time must be in HH:MM format")
)

const minutesPerDay = 24 * 60

// TimeOfDay is minutes from midnight. Storing minutes keeps the half-open
// interval comparisons exact across Go and SQL.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay(hour*60 + minute)
	if hour < 0 || minute < 0 || minute > 59 || t > minutesPerDay {
		return 0, ErrInvalidTimeOfDay
	}
	return t, nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, ErrInvalidFormat
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Window is a half-open [start, end) interval within a single day.
type Window struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewWindow(start, end TimeOfDay) (Window, error) {
	if start < 0 || end > minutesPerDay {
		return Window{}, ErrInvalidTimeOfDay
	}
	if start >= end {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() TimeOfDay {
	return w.start
}

func (w Window) End() TimeOfDay {
	return w.end
}

func (w Window) Duration() time.Duration {
	return time.Duration(w.end-w.start) * time.Minute
}

// Overlaps reports whether two half-open windows intersect. Adjacent windows
// ([9,10) and [10,11)) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.start < other.end && w.end > other.start
}

// Contains reports whether w fully covers other.
func (w Window) Contains(other Window) bool {
	return w.start <= other.start && w.end >= other.end
}

func (w Window) String() string {
	return w.start.String() + "-" + w.end.String()
}

// WeekdayOf returns the Monday-based weekday (0=Monday .. 6=Sunday) used by
// coach availability and day-gated pricing rules.
func WeekdayOf(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// NormalizeDate strips the time-of-day component so dates compare by day.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(d), nil
}

// Key identifies a contended court slot. It is the lock and waitlist scope:
// bookings and waitlist promotions for the same key serialize on the court row.
type Key struct {
	CourtID uuid.UUID
	Date    time.Time
	Window  Window
}

func NewKey(courtID uuid.UUID, date time.Time, window Window) Key {
	return Key{CourtID: courtID, Date: NormalizeDate(date), Window: window}
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.CourtID, k.Date.Format("2006-01-02"), k.Window)
}
