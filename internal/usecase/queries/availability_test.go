//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"courtbook/internal/domain/slot"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCourtRepo struct {
	courts []*queries.CourtView
}

func (r *stubCourtRepo) FindAll(_ context.Context) ([]*queries.CourtView, error) {
	return r.courts, nil
}

func (r *stubCourtRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.CourtView, error) {
	for _, c := range r.courts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

type stubEquipmentRepo struct {
	equipment []*queries.EquipmentView
}

func (r *stubEquipmentRepo) FindAll(_ context.Context) ([]*queries.EquipmentView, error) {
	return r.equipment, nil
}

type stubCoachRepo struct {
	coaches []*queries.CoachView
}

func (r *stubCoachRepo) FindAll(_ context.Context) ([]*queries.CoachView, error) {
	return r.coaches, nil
}

type stubBookingRepo struct {
	booked []*queries.BookedSlotView
}

func (r *stubBookingRepo) FindByID(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	return nil, nil
}

func (r *stubBookingRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (r *stubBookingRepo) FindConfirmedByDate(_ context.Context, _ time.Time) ([]*queries.BookedSlotView, error) {
	return r.booked, nil
}

type availabilityFixture struct {
	courtA     uuid.UUID
	courtB     uuid.UUID
	inactiveID uuid.UUID
	rackets    uuid.UUID
	coachID    uuid.UUID
	booking    *stubBookingRepo
	queries    queries.AvailabilityQueries
}

// newFixture wires two active courts, one inactive court, a 10-racket pool
// and one weekday-evening coach, with courtA booked 10:00-12:00 holding 4
// rackets and the coach.
func newFixture() *availabilityFixture {
	f := &availabilityFixture{
		courtA:     uuid.New(),
		courtB:     uuid.New(),
		inactiveID: uuid.New(),
		rackets:    uuid.New(),
		coachID:    uuid.New(),
	}

	courts := &stubCourtRepo{courts: []*queries.CourtView{
		{ID: f.courtA, Name: "Court A", Type: "INDOOR", Active: true},
		{ID: f.courtB, Name: "Court B", Type: "OUTDOOR", Active: true},
		{ID: f.inactiveID, Name: "Closed", Type: "INDOOR", Active: false},
	}}
	equipment := &stubEquipmentRepo{equipment: []*queries.EquipmentView{
		{ID: f.rackets, Name: "Rackets", Type: "RACKET", TotalQuantity: 10},
	}}
	coaches := &stubCoachRepo{coaches: []*queries.CoachView{
		{
			ID: f.coachID, Name: "Anna Keller", HourlyFeeCents: 20000, Active: true,
			Availability: []queries.CoachWindowView{
				{Weekday: 0, StartMinutes: 9 * 60, EndMinutes: 18 * 60},
				{Weekday: 1, StartMinutes: 9 * 60, EndMinutes: 18 * 60},
			},
		},
	}}
	f.booking = &stubBookingRepo{booked: []*queries.BookedSlotView{
		{
			CourtID:      f.courtA,
			CoachID:      &f.coachID,
			StartMinutes: 10 * 60,
			EndMinutes:   12 * 60,
			Equipment:    []queries.EquipmentQty{{EquipmentID: f.rackets, Quantity: 4}},
		},
	}}

	f.queries = queries.NewAvailabilityQueries(courts, equipment, coaches, f.booking)
	return f
}

// 2026-03-02 is a Monday.
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func window(t *testing.T, start, end int) slot.Window {
	t.Helper()
	w, err := slot.NewWindow(slot.TimeOfDay(start), slot.TimeOfDay(end))
	require.NoError(t, err)
	return w
}

func TestCheckWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("overlapping window", func(t *testing.T) {
		f := newFixture()
		view, err := f.queries.CheckWindow(ctx, testDate, window(t, 11*60, 13*60))
		require.NoError(t, err)

		assert.Equal(t, "2026-03-02", view.Date)
		assert.Equal(t, "11:00", view.StartTime)

		// Inactive court excluded, booked court unavailable
		require.Len(t, view.Courts, 2)
		byName := map[string]bool{}
		for _, c := range view.Courts {
			byName[c.Name] = c.Available
		}
		assert.False(t, byName["Court A"])
		assert.True(t, byName["Court B"])

		require.Len(t, view.Equipment, 1)
		assert.Equal(t, 10, view.Equipment[0].TotalQuantity)
		assert.Equal(t, 6, view.Equipment[0].AvailableQuantity)

		require.Len(t, view.Coaches, 1)
		assert.False(t, view.Coaches[0].Available)
	})

	t.Run("adjacent window is fully free", func(t *testing.T) {
		f := newFixture()
		view, err := f.queries.CheckWindow(ctx, testDate, window(t, 12*60, 14*60))
		require.NoError(t, err)

		for _, c := range view.Courts {
			assert.True(t, c.Available, c.Name)
		}
		assert.Equal(t, 10, view.Equipment[0].AvailableQuantity)
		assert.True(t, view.Coaches[0].Available)
	})

	t.Run("coach unavailable outside working hours", func(t *testing.T) {
		f := newFixture()

		// 17:00-19:00 spills past the coach's 18:00 end
		view, err := f.queries.CheckWindow(ctx, testDate, window(t, 17*60, 19*60))
		require.NoError(t, err)
		assert.False(t, view.Coaches[0].Available)

		// Sunday: no availability rows at all
		sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
		view, err = f.queries.CheckWindow(ctx, sunday, window(t, 10*60, 11*60))
		require.NoError(t, err)
		assert.False(t, view.Coaches[0].Available)
	})

	t.Run("oversubscribed pool clamps at zero", func(t *testing.T) {
		f := newFixture()
		f.booking.booked = append(f.booking.booked, &queries.BookedSlotView{
			CourtID:      f.courtB,
			StartMinutes: 10 * 60,
			EndMinutes:   12 * 60,
			Equipment:    []queries.EquipmentQty{{EquipmentID: f.rackets, Quantity: 9}},
		})

		view, err := f.queries.CheckWindow(ctx, testDate, window(t, 10*60, 12*60))
		require.NoError(t, err)
		assert.Equal(t, 0, view.Equipment[0].AvailableQuantity)
	})
}

func TestSlotGrid(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	grid, err := f.queries.SlotGrid(ctx, testDate)
	require.NoError(t, err)

	// 06:00 through 22:00, hourly
	require.Len(t, grid.Slots, 16)
	assert.Equal(t, "06:00", grid.Slots[0].StartTime)
	assert.Equal(t, "07:00", grid.Slots[0].EndTime)
	assert.Equal(t, "21:00", grid.Slots[15].StartTime)
	assert.Equal(t, "22:00", grid.Slots[15].EndTime)

	// Each slot lists only active courts
	for _, gs := range grid.Slots {
		assert.Len(t, gs.Courts, 2)
	}

	availabilityFor := func(start string, courtID uuid.UUID) bool {
		for _, gs := range grid.Slots {
			if gs.StartTime != start {
				continue
			}
			for _, c := range gs.Courts {
				if c.CourtID == courtID {
					return c.Available
				}
			}
		}
		t.Fatalf("slot %s / court %s not in grid", start, courtID)
		return false
	}

	assert.False(t, availabilityFor("10:00", f.courtA))
	assert.False(t, availabilityFor("11:00", f.courtA))
	assert.True(t, availabilityFor("09:00", f.courtA))
	assert.True(t, availabilityFor("12:00", f.courtA))
	assert.True(t, availabilityFor("10:00", f.courtB))
}
