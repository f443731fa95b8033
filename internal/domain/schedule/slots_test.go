package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kyiv(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)
	return loc
}

func window(t *testing.T, fromHour, toHour int) *WorkingWindow {
	t.Helper()
	loc := kyiv(t)
	return &WorkingWindow{
		StaffID: 1,
		Date:    "2025-07-18",
		Start:   time.Date(2025, 7, 18, fromHour, 0, 0, 0, loc),
		End:     time.Date(2025, 7, 18, toHour, 0, 0, 0, loc),
	}
}

func TestComputeFreeSlots_NoBookings(t *testing.T) {
	slots := ComputeFreeSlots(window(t, 9, 18), nil, time.Hour)

	require.Len(t, slots, 9)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:00", slots[8])
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i], "slots must be ascending")
	}
}

func TestComputeFreeSlots_PartialOverlapRejectsWholeBlock(t *testing.T) {
	loc := kyiv(t)
	w := window(t, 9, 12)

	// One 30-minute booking at 10:00 kills the whole 10:00-11:00 block.
	bookings := []Booking{{
		Start: time.Date(2025, 7, 18, 10, 0, 0, 0, loc),
		End:   time.Date(2025, 7, 18, 10, 30, 0, 0, loc),
	}}

	slots := ComputeFreeSlots(w, bookings, time.Hour)
	assert.Equal(t, []string{"09:00", "11:00"}, slots)
}

func TestComputeFreeSlots_FullyBooked(t *testing.T) {
	loc := kyiv(t)
	w := window(t, 9, 12)

	bookings := []Booking{
		{Start: time.Date(2025, 7, 18, 9, 0, 0, 0, loc), End: time.Date(2025, 7, 18, 10, 0, 0, 0, loc)},
		{Start: time.Date(2025, 7, 18, 10, 0, 0, 0, loc), End: time.Date(2025, 7, 18, 11, 0, 0, 0, loc)},
		{Start: time.Date(2025, 7, 18, 11, 0, 0, 0, loc), End: time.Date(2025, 7, 18, 12, 0, 0, 0, loc)},
	}

	assert.Empty(t, ComputeFreeSlots(w, bookings, time.Hour))
}

func TestComputeFreeSlots_BookingCrossingWindowBoundary(t *testing.T) {
	loc := kyiv(t)
	w := window(t, 9, 12)

	// Booking starts before the window opens but bleeds into 09:00-10:00.
	bookings := []Booking{{
		Start: time.Date(2025, 7, 18, 8, 30, 0, 0, loc),
		End:   time.Date(2025, 7, 18, 9, 15, 0, 0, loc),
	}}

	slots := ComputeFreeSlots(w, bookings, time.Hour)
	assert.Equal(t, []string{"10:00", "11:00"}, slots)
}

func TestComputeFreeSlots_AbsentWindow(t *testing.T) {
	assert.Empty(t, ComputeFreeSlots(nil, nil, time.Hour))
}

func TestComputeFreeSlots_LastSlotEndsExactlyAtClose(t *testing.T) {
	// 09:00-12:30 with hourly slots: 11:00-12:00 fits, 12:00-13:00 does not.
	loc := kyiv(t)
	w := &WorkingWindow{
		Start: time.Date(2025, 7, 18, 9, 0, 0, 0, loc),
		End:   time.Date(2025, 7, 18, 12, 30, 0, 0, loc),
	}

	slots := ComputeFreeSlots(w, nil, time.Hour)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slots)
}

func TestComputeFreeSlots_DefaultsSeanceLength(t *testing.T) {
	slots := ComputeFreeSlots(window(t, 9, 11), nil, 0)
	assert.Equal(t, []string{"09:00", "10:00"}, slots)
}

func TestComputeFreeSlots_SlotCountMatchesWindow(t *testing.T) {
	// floor((end-start)/d) slots when nothing is booked.
	for _, d := range []time.Duration{30 * time.Minute, time.Hour, 90 * time.Minute} {
		w := window(t, 10, 16)
		want := int(w.End.Sub(w.Start) / d)
		assert.Len(t, ComputeFreeSlots(w, nil, d), want, "duration %s", d)
	}
}
