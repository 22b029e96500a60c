package schedule

import "time"

// DefaultNotice is the minimum lead time required to modify or cancel a
// booking through self-service.
const DefaultNotice = 24 * time.Hour

// CanMutate reports whether a booking starting at startsAt may still be
// modified or cancelled at time now. The comparison is exact timestamp
// subtraction, not calendar-day counting: an appointment at 09:00
// tomorrow queried at 09:01 today is already inside the window.
// Modification and cancellation share this one predicate so the two
// flows can never diverge.
func CanMutate(startsAt, now time.Time, notice time.Duration) bool {
	return startsAt.Sub(now) >= notice
}
