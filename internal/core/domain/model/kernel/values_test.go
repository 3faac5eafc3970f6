package kernel_test

import (
	"encoding/json"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryDate(t *testing.T) {
	t.Run("parse and format", func(t *testing.T) {
		d, err := kernel.ParseDeliveryDate("2024-05-14")

		require.NoError(t, err)
		assert.Equal(t, "2024-05-14", d.String())
		assert.Equal(t, time.Tuesday, d.Weekday())
		assert.Equal(t, "2024-05-15", d.AddDays(1).String())
		assert.True(t, d.Before(d.AddDays(1)))
		assert.True(t, d.Equal(kernel.NewDeliveryDate(2024, time.May, 14)))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := kernel.ParseDeliveryDate("14/05/2024")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.ParseDeliveryDate("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var d kernel.DeliveryDate
		require.Error(t, d.Validate())
	})

	t.Run("json text round trip", func(t *testing.T) {
		payload := struct {
			Date kernel.DeliveryDate `json:"date"`
		}{}
		require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-12-24"}`), &payload))
		assert.Equal(t, "2024-12-24", payload.Date.String())
	})
}

func TestDeliveryType(t *testing.T) {
	for _, in := range []string{"sameday", "Same-Day", "same_day"} {
		dt, err := kernel.ParseDeliveryType(in)
		require.NoError(t, err, in)
		assert.Equal(t, kernel.SameDay, dt)
	}

	dt, err := kernel.ParseDeliveryType("next-day")
	require.NoError(t, err)
	assert.Equal(t, "nextday", dt.String())

	_, err = kernel.ParseDeliveryType("express")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.Error(t, kernel.UnknownDeliveryType.Validate())
	require.NoError(t, kernel.NextDay.Validate())
}

func TestClockTime(t *testing.T) {
	c, err := kernel.ParseClockTime("09:30")
	require.NoError(t, err)
	assert.True(t, kernel.MustClockTime("13:00").After(c))
	assert.False(t, c.After(c))

	for _, bad := range []string{"9:30", "24:00", "12:60", "noon"} {
		_, err = kernel.ParseClockTime(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, bad)
	}

	local := time.Date(2024, 5, 14, 7, 5, 0, 0, time.UTC)
	assert.Equal(t, kernel.ClockTime("07:05"), kernel.ClockTimeOf(local))
}

func TestUUID(t *testing.T) {
	id := kernel.NewUUID()
	require.NoError(t, id.Validate())

	parsed, err := kernel.UUIDFromString(id.String())
	require.NoError(t, err)
	assert.True(t, parsed.IsEqual(id))

	_, err = kernel.UUIDFromString("not-a-uuid")
	require.Error(t, err)

	_, err = kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero kernel.UUID
	require.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
}
