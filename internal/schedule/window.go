package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is a staff member's working window on one concrete date.
type Window struct {
	Start time.Time
	End   time.Time
}

// Busy is an occupied interval on a staff member's day, tagged with the
// booking that owns it so a reschedule can skip its own interval.
type Busy struct {
	BookingID int64
	Start     time.Time
	End       time.Time
}

// WindowOn places an availability rule's wall-clock "HH:MM" strings onto
// a concrete calendar date. This is the only place rule strings are
// parsed; the slot functions below work on time.Time exclusively.
func WindowOn(date time.Time, startHHMM, endHHMM string) (Window, error) {
	start, err := atTimeOfDay(date, startHHMM)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window start: %w", err)
	}
	end, err := atTimeOfDay(date, endHHMM)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window end: %w", err)
	}
	if !end.After(start) {
		return Window{}, fmt.Errorf("window end %s is not after start %s", endHHMM, startHHMM)
	}
	return Window{Start: start, End: end}, nil
}

func atTimeOfDay(date time.Time, hhmm string) (time.Time, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("malformed time of day %q", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("malformed hour in %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("malformed minute in %q", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
