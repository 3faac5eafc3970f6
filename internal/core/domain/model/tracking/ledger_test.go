package tracking_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLedger(t *testing.T) *tracking.Ledger {
	t.Helper()

	var records []*tracking.Record
	for _, s := range []tracking.Seed{
		newSeed("#1", "Sydney"),
		newSeed("#2", "Sydney"),
		newSeed("#3", "Perth"),
		newSeed("#4", "Melbourne"),
		newSeed("#5", ""),
	} {
		r, err := tracking.NewRecord(s)
		require.NoError(t, err)
		records = append(records, r)
	}

	require.NoError(t, records[0].MarkBooked("14:00", "A"))
	require.NoError(t, records[1].MarkBooked("14:00", "B"))
	require.NoError(t, records[2].MarkBookingFailed("rejected"))
	require.NoError(t, records[3].MarkSkipped(tracking.SkipCutoff))
	require.NoError(t, records[4].MarkSkipped(tracking.SkipMissingLocation))

	return tracking.NewLedger(records...)
}

func TestLedger(t *testing.T) {
	ledger := buildLedger(t)

	assert.Equal(t, 5, ledger.Len())
	assert.Equal(t, []string{"Melbourne", "Perth", "Sydney"}, ledger.Locations())
	assert.Len(t, ledger.Booked(), 2)
	assert.Len(t, ledger.ForLocation("Sydney"), 2)

	counts := ledger.CountByStatus()
	assert.Equal(t, 2, counts[tracking.Booked])
	assert.Equal(t, 1, counts[tracking.BookingFailed])
	assert.Equal(t, 2, counts[tracking.Skipped])
	assert.Equal(t, ledger.Len(), counts[tracking.Booked]+counts[tracking.BookingFailed]+counts[tracking.Skipped])

	assert.Equal(t, map[string]int{"Sydney": 2, "Perth": 0, "Melbourne": 0}, ledger.BookedCountByLocation())
}

func TestLedger_AllIsACopy(t *testing.T) {
	ledger := buildLedger(t)

	all := ledger.All()
	all[0] = nil

	assert.NotNil(t, ledger.All()[0])
}

func TestSummarize(t *testing.T) {
	ledger := buildLedger(t)
	six := 6
	for _, r := range ledger.ForLocation("Sydney") {
		r.AssignBatch(&six)
	}

	rows := tracking.Summarize(ledger.All())

	require.Len(t, rows, 4)
	assert.Empty(t, rows[0].Location)
	assert.Equal(t, "Melbourne", rows[1].Location)
	assert.Equal(t, "Perth", rows[2].Location)

	sydney := rows[3]
	assert.Equal(t, "Sydney", sydney.Location)
	assert.Equal(t, kernel.SameDay, sydney.DeliveryType)
	require.NotNil(t, sydney.Batch)
	assert.Equal(t, 6, *sydney.Batch)
	assert.Equal(t, 2, sydney.Orders)
	assert.Equal(t, 2, sydney.Booked)
}
