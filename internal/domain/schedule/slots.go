package schedule

import "time"

// DefaultSeanceLength is the appointment length used when neither the caller
// nor the service configuration specifies one.
const DefaultSeanceLength = time.Hour

// WorkingWindow is a staff member's bookable hours on one calendar date.
// Start and End must carry the business time zone.
type WorkingWindow struct {
	StaffID int64
	Date    string
	Start   time.Time
	End     time.Time
}

// Booking is a committed appointment occupying staff time.
type Booking struct {
	Start time.Time
	End   time.Time
}

// ComputeFreeSlots walks the working window in steps of seanceLength and
// collects every candidate slot that does not overlap an existing booking,
// formatted as "HH:MM" labels in ascending order.
//
// A nil window means the staff member does not work that day and yields an
// empty result. A rejected candidate forfeits its whole block: the cursor
// always advances by seanceLength, there is no finer-grained retry.
func ComputeFreeSlots(window *WorkingWindow, bookings []Booking, seanceLength time.Duration) []string {
	if window == nil {
		return nil
	}
	if seanceLength <= 0 {
		seanceLength = DefaultSeanceLength
	}

	var free []string
	for cur := window.Start; !cur.Add(seanceLength).After(window.End); cur = cur.Add(seanceLength) {
		if !overlapsAny(cur, cur.Add(seanceLength), bookings) {
			free = append(free, cur.Format("15:04"))
		}
	}
	return free
}

func overlapsAny(start, end time.Time, bookings []Booking) bool {
	for _, b := range bookings {
		// Half-open intervals: [start,end) intersects [b.Start,b.End)
		// iff start < b.End && end > b.Start.
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}
