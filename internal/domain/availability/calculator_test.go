//go:build unit

package availability_test

import (
	"testing"
	"time"

	"praxis-booking/internal/domain/availability"
	"praxis-booking/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2026-03-02, resource-local midnight.
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func entry(t *testing.T, startHour, endHour int) resource.ScheduleEntry {
	t.Helper()
	e, err := resource.NewScheduleEntry(uuid.New(), testDate.Weekday(),
		resource.NewTimeOfDay(startHour, 0), resource.NewTimeOfDay(endHour, 0))
	require.NoError(t, err)
	return e
}

func at(hour int) time.Time {
	return testDate.Add(time.Duration(hour) * time.Hour)
}

func TestTable_ScheduleAndCapacity(t *testing.T) {
	in := availability.Input{
		Capacity: 2,
		Date:     testDate,
		Now:      testDate, // whole day in the future
		Entries:  []resource.ScheduleEntry{entry(t, 8, 12)},
		Commitments: []availability.Commitment{
			{Start: at(9), End: at(10), Quantity: 2},
		},
	}

	table := availability.Table(in, 1)
	require.Len(t, table, 24)

	t.Run("hours outside the schedule are closed", func(t *testing.T) {
		assert.False(t, table[7].Available)
		assert.Equal(t, availability.ReasonClosed, table[7].Reason)
		assert.False(t, table[12].Available)
		assert.Equal(t, availability.ReasonClosed, table[12].Reason)
	})

	t.Run("open hour without commitments has full capacity", func(t *testing.T) {
		assert.True(t, table[8].Available)
		assert.Equal(t, 2, table[8].AvailableQuantity)
		assert.Equal(t, availability.ReasonNone, table[8].Reason)
	})

	t.Run("fully committed hour reads zero and is unavailable", func(t *testing.T) {
		assert.False(t, table[9].Available)
		assert.Equal(t, 0, table[9].AvailableQuantity)
		assert.Equal(t, availability.ReasonFullyBooked, table[9].Reason)
	})

	t.Run("a further request for the committed hour is rejected", func(t *testing.T) {
		assert.False(t, availability.WindowAvailable(table, at(9), at(10)))
	})
}

func TestTable_PartialCapacity(t *testing.T) {
	in := availability.Input{
		Capacity: 3,
		Date:     testDate,
		Now:      testDate,
		Entries:  []resource.ScheduleEntry{entry(t, 8, 18)},
		Commitments: []availability.Commitment{
			{Start: at(10), End: at(12), Quantity: 2},
		},
	}

	t.Run("remaining unit satisfies quantity 1", func(t *testing.T) {
		table := availability.Table(in, 1)
		assert.True(t, table[10].Available)
		assert.Equal(t, 1, table[10].AvailableQuantity)
	})

	t.Run("quantity 2 no longer fits", func(t *testing.T) {
		table := availability.Table(in, 2)
		assert.False(t, table[10].Available)
		assert.Equal(t, availability.ReasonFullyBooked, table[10].Reason)
		// Hours outside the committed window still take quantity 2.
		assert.True(t, table[9].Available)
		assert.True(t, table[12].Available)
	})
}

func TestTable_Precedence(t *testing.T) {
	// Past beats closed beats blocked beats fully booked.
	now := at(10).Add(30 * time.Minute)
	in := availability.Input{
		Capacity: 1,
		Date:     testDate,
		Now:      now,
		Entries:  []resource.ScheduleEntry{entry(t, 8, 20)},
		Blocks: []availability.Interval{
			{Start: at(9), End: at(14)},
		},
		Commitments: []availability.Commitment{
			{Start: at(12), End: at(16), Quantity: 1},
		},
	}

	table := availability.Table(in, 1)

	cases := []struct {
		hour   int
		reason availability.Reason
	}{
		{hour: 6, reason: availability.ReasonPast},    // past and closed: past wins
		{hour: 9, reason: availability.ReasonPast},    // past and blocked: past wins
		{hour: 10, reason: availability.ReasonPast},   // the hour containing now is past
		{hour: 12, reason: availability.ReasonBlocked}, // blocked and booked: blocked wins
		{hour: 15, reason: availability.ReasonFullyBooked},
		{hour: 21, reason: availability.ReasonClosed},
	}
	for _, tc := range cases {
		assert.False(t, table[tc.hour].Available, "hour %d", tc.hour)
		assert.Equal(t, tc.reason, table[tc.hour].Reason, "hour %d", tc.hour)
	}

	assert.True(t, table[16].Available)
}

func TestTable_BlockCoexistsWithReservation(t *testing.T) {
	// A block over an already reserved window hides the hours from new
	// bookings but the existing commitment still counts elsewhere.
	in := availability.Input{
		Capacity: 2,
		Date:     testDate,
		Now:      testDate,
		Entries:  []resource.ScheduleEntry{entry(t, 8, 18)},
		Blocks: []availability.Interval{
			{Start: at(9), End: at(11)},
		},
		Commitments: []availability.Commitment{
			{Start: at(9), End: at(13), Quantity: 1},
		},
	}

	table := availability.Table(in, 1)

	assert.Equal(t, availability.ReasonBlocked, table[9].Reason)
	assert.Equal(t, availability.ReasonBlocked, table[10].Reason)
	// Past the block the reservation still consumes one of two units.
	assert.True(t, table[11].Available)
	assert.Equal(t, 1, table[11].AvailableQuantity)
	assert.True(t, table[12].Available)
	assert.Equal(t, 2, table[13].AvailableQuantity)
}

func TestTable_SplitShiftEntries(t *testing.T) {
	in := availability.Input{
		Capacity: 1,
		Date:     testDate,
		Now:      testDate,
		Entries: []resource.ScheduleEntry{
			entry(t, 8, 12),
			entry(t, 14, 18),
		},
	}

	table := availability.Table(in, 1)

	assert.True(t, table[8].Available)
	assert.Equal(t, availability.ReasonClosed, table[12].Reason)
	assert.Equal(t, availability.ReasonClosed, table[13].Reason)
	assert.True(t, table[14].Available)
	assert.True(t, table[17].Available)
	assert.Equal(t, availability.ReasonClosed, table[18].Reason)
}

func TestTable_MinimumQuantityDefaultsToOne(t *testing.T) {
	in := availability.Input{
		Capacity: 1,
		Date:     testDate,
		Now:      testDate,
		Entries:  []resource.ScheduleEntry{entry(t, 8, 10)},
	}

	table := availability.Table(in, 0)
	assert.True(t, table[8].Available)
}

func TestWindowAvailable(t *testing.T) {
	in := availability.Input{
		Capacity: 1,
		Date:     testDate,
		Now:      testDate,
		Entries:  []resource.ScheduleEntry{entry(t, 8, 18)},
		Commitments: []availability.Commitment{
			{Start: at(12), End: at(13), Quantity: 1},
		},
	}
	table := availability.Table(in, 1)

	cases := []struct {
		name  string
		start int
		end   int
		want  bool
	}{
		{name: "fully open window", start: 8, end: 12, want: true},
		{name: "window touching the booked hour fails", start: 11, end: 13, want: false},
		{name: "window after the booked hour", start: 13, end: 18, want: true},
		{name: "window reaching into closed hours fails", start: 16, end: 20, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, availability.WindowAvailable(table, at(tc.start), at(tc.end)))
		})
	}
}

func TestConsecutiveFrom(t *testing.T) {
	in := availability.Input{
		Capacity: 1,
		Date:     testDate,
		Now:      testDate,
		Entries:  []resource.ScheduleEntry{entry(t, 8, 18)},
		Commitments: []availability.Commitment{
			{Start: at(12), End: at(13), Quantity: 1},
		},
	}
	table := availability.Table(in, 1)

	assert.Equal(t, 12, availability.ConsecutiveFrom(table, 8), "run from 08 stops at the booked hour")
	assert.Equal(t, 18, availability.ConsecutiveFrom(table, 13), "run after the gap reaches closing")
	assert.Equal(t, 12, availability.ConsecutiveFrom(table, 12), "unavailable start yields empty run")
	assert.Equal(t, 30, availability.ConsecutiveFrom(table, 30), "out-of-range start is returned unchanged")
}
