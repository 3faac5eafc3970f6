package cutoff_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/cutoff"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		s, err := cutoff.NewSlot("14:00", "13:00")

		require.NoError(t, err)
		assert.Equal(t, kernel.ClockTime("14:00"), s.Pickup())
		assert.Equal(t, kernel.ClockTime("13:00"), s.Cutoff())
	})

	t.Run("cutoff after pickup", func(t *testing.T) {
		_, err := cutoff.NewSlot("09:00", "10:00")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("malformed times are joined", func(t *testing.T) {
		_, err := cutoff.NewSlot("9", "bad")

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"9"`)
		assert.Contains(t, err.Error(), `"bad"`)
	})

	t.Run("open is strict", func(t *testing.T) {
		s := cutoff.MustSlot("14:00", "13:00")

		assert.True(t, s.OpenAt("12:59"))
		assert.False(t, s.OpenAt("13:00"))
	})
}

func TestNewTable(t *testing.T) {
	melbourne, _ := kernel.LocationByName("Melbourne")

	t.Run("duplicate location", func(t *testing.T) {
		_, err := cutoff.NewTable(
			cutoff.LocationRules{Location: melbourne},
			cutoff.LocationRules{Location: melbourne},
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value slot", func(t *testing.T) {
		_, err := cutoff.NewTable(cutoff.LocationRules{
			Location: melbourne,
			SameDay:  map[time.Weekday][]cutoff.Slot{time.Monday: {{}}},
		})

		require.ErrorIs(t, err, cutoff.ErrSlotIsNotConstructed)
	})

	t.Run("lookup ignores case", func(t *testing.T) {
		table, err := cutoff.NewTable(cutoff.LocationRules{
			Location: melbourne,
			SameDay:  map[time.Weekday][]cutoff.Slot{time.Tuesday: {cutoff.MustSlot("10:00", "09:00")}},
		})
		require.NoError(t, err)

		assert.Len(t, table.SameDaySlots("MELBOURNE", time.Tuesday), 1)
		assert.Empty(t, table.SameDaySlots("melbourne", time.Wednesday))
		assert.Empty(t, table.SameDaySlots("Hobart", time.Tuesday))
		assert.False(t, table.NextDayRule("Melbourne", time.Tuesday).Enabled)
	})
}

func TestDefaultTable(t *testing.T) {
	table := cutoff.DefaultTable()

	for _, loc := range kernel.KnownLocations() {
		_, ok := table.Rules(loc.Name())
		assert.True(t, ok, loc.Name())
		assert.Empty(t, table.SameDaySlots(loc.Name(), time.Sunday), loc.Name())
	}

	slots := table.SameDaySlots("Melbourne", time.Tuesday)
	require.Len(t, slots, 2)
	assert.Equal(t, kernel.ClockTime("10:00"), slots[0].Pickup())
	assert.Equal(t, kernel.ClockTime("14:00"), slots[1].Pickup())

	assert.True(t, table.NextDayRule("Perth", time.Monday).Enabled)
	assert.False(t, table.NextDayRule("Perth", time.Saturday).Enabled)
}
