// Package schedule computes bookable time slots for a staff member's day
// and enforces the minimum-notice policy for booking mutations. All
// functions are pure: persistence reads and user interaction stay in the
// booking coordinator.
package schedule

import "time"

// Grid returns the ascending sequence of candidate start times
// window.Start, window.Start+step, ... strictly before window.End.
// Whether a slot's *end* also fits the window is decided by Available,
// which knows the candidate service duration; the grid itself only
// aligns starts. Recomputed fresh on every call, no iterator state.
func Grid(w Window, step time.Duration) []time.Time {
	if step <= 0 || !w.End.After(w.Start) {
		return nil
	}
	var slots []time.Time
	for t := w.Start; t.Before(w.End); t = t.Add(step) {
		slots = append(slots, t)
	}
	return slots
}

// Available filters a grid down to the slots where a booking of length
// duration would fit: the candidate interval [slot, slot+duration) must
// lie within [w.Start, w.End) and must not overlap any busy interval
// other than excludeBookingID (the booking being rescheduled, 0 if none).
// Intervals are half-open, so touching endpoints do not conflict.
// Ordering is preserved; this is a filtering pass, not a re-sort.
func Available(grid []time.Time, w Window, duration time.Duration, busy []Busy, excludeBookingID int64) []time.Time {
	if duration <= 0 {
		return nil
	}
	var out []time.Time
	for _, slot := range grid {
		end := slot.Add(duration)
		if end.After(w.End) {
			continue
		}
		if overlapsAny(slot, end, busy, excludeBookingID) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

func overlapsAny(start, end time.Time, busy []Busy, excludeBookingID int64) bool {
	for _, b := range busy {
		if excludeBookingID != 0 && b.BookingID == excludeBookingID {
			continue
		}
		// [start,end) overlaps [b.Start,b.End) iff start < b.End && b.Start < end.
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
