//go:build unit

package catalog_test

import (
	"testing"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T, start, end int) slot.Window {
	t.Helper()
	w, err := slot.NewWindow(slot.TimeOfDay(start), slot.TimeOfDay(end))
	require.NoError(t, err)
	return w
}

func weekdayEvenings(t *testing.T) []catalog.AvailabilityWindow {
	t.Helper()
	var avail []catalog.AvailabilityWindow
	for weekday := 0; weekday < 5; weekday++ {
		av, err := catalog.NewAvailabilityWindow(weekday, window(t, 17*60, 21*60))
		require.NoError(t, err)
		avail = append(avail, av)
	}
	return avail
}

func TestNewCoach(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		c, err := catalog.NewCoach(uuid.New(), "  Anna Keller ", 20000, true, weekdayEvenings(t))
		require.NoError(t, err)

		assert.Equal(t, "Anna Keller", c.Name())
		assert.Equal(t, int64(20000), c.HourlyFeeCents())
		assert.True(t, c.IsActive())
		assert.Len(t, c.Availability(), 5)
	})

	t.Run("negative fee rejected", func(t *testing.T) {
		_, err := catalog.NewCoach(uuid.New(), "Anna", -1, true, nil)
		assert.ErrorIs(t, err, catalog.ErrNegativeFee)
	})

	t.Run("weekday out of range rejected", func(t *testing.T) {
		_, err := catalog.NewAvailabilityWindow(7, window(t, 600, 720))
		assert.ErrorIs(t, err, catalog.ErrInvalidWeekday)

		_, err = catalog.NewAvailabilityWindow(-1, window(t, 600, 720))
		assert.ErrorIs(t, err, catalog.ErrInvalidWeekday)
	})
}

func TestCoversWindow(t *testing.T) {
	c, err := catalog.NewCoach(uuid.New(), "Anna", 20000, true, weekdayEvenings(t))
	require.NoError(t, err)

	cases := []struct {
		name    string
		weekday int
		window  slot.Window
		want    bool
	}{
		{name: "fully inside", weekday: 0, window: window(t, 18*60, 20*60), want: true},
		{name: "exact match", weekday: 2, window: window(t, 17*60, 21*60), want: true},
		{name: "starts before availability", weekday: 0, window: window(t, 16*60, 19*60), want: false},
		{name: "ends after availability", weekday: 0, window: window(t, 19*60, 22*60), want: false},
		{name: "uncovered weekday", weekday: 5, window: window(t, 18*60, 20*60), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.CoversWindow(tc.weekday, tc.window))
		})
	}
}

func TestCourt(t *testing.T) {
	t.Run("indoor flag follows type", func(t *testing.T) {
		indoor, err := catalog.NewCourt(uuid.New(), "Center Court", catalog.CourtIndoor, true)
		require.NoError(t, err)
		assert.True(t, indoor.IsIndoor())

		outdoor, err := catalog.NewCourt(uuid.New(), "Court 3", catalog.CourtOutdoor, true)
		require.NoError(t, err)
		assert.False(t, outdoor.IsIndoor())
	})

	t.Run("name validation", func(t *testing.T) {
		_, err := catalog.NewCourt(uuid.New(), "   ", catalog.CourtIndoor, true)
		assert.ErrorIs(t, err, catalog.ErrEmptyName)
	})

	t.Run("type validation", func(t *testing.T) {
		_, err := catalog.NewCourt(uuid.New(), "Court 1", catalog.CourtType("GRASS"), true)
		assert.ErrorIs(t, err, catalog.ErrInvalidCourtTyp)
	})
}

func TestEquipment(t *testing.T) {
	e, err := catalog.NewEquipment(uuid.New(), "Rackets", catalog.EquipmentRacket, 20)
	require.NoError(t, err)

	assert.Equal(t, 20, e.TotalQuantity())
	assert.Equal(t, 14, e.AvailableQuantity(6))
	assert.Equal(t, 0, e.AvailableQuantity(20))

	_, err = catalog.NewEquipment(uuid.New(), "Rackets", catalog.EquipmentRacket, -1)
	assert.ErrorIs(t, err, catalog.ErrNegativeQuantity)
}
