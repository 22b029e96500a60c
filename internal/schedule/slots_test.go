package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// date is an arbitrary fixed day; all slot math is relative to it.
var date = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func labels(slots []time.Time) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Format("15:04")
	}
	return out
}

func TestWindowOn(t *testing.T) {
	testCases := []struct {
		name      string
		start     string
		end       string
		expectErr bool
	}{
		{name: "valid window", start: "09:00", end: "17:00", expectErr: false},
		{name: "end before start", start: "17:00", end: "09:00", expectErr: true},
		{name: "end equals start", start: "09:00", end: "09:00", expectErr: true},
		{name: "missing colon", start: "0900", end: "17:00", expectErr: true},
		{name: "hour out of range", start: "24:00", end: "25:00", expectErr: true},
		{name: "minute out of range", start: "09:60", end: "17:00", expectErr: true},
		{name: "garbage", start: "nine", end: "five", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := WindowOn(date, tc.start, tc.end)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, at(9, 0), w.Start)
			assert.Equal(t, at(17, 0), w.End)
		})
	}
}

func TestGrid(t *testing.T) {
	t.Run("full working day", func(t *testing.T) {
		w, err := WindowOn(date, "09:00", "17:00")
		require.NoError(t, err)

		slots := Grid(w, 15*time.Minute)

		assert.Len(t, slots, 32)
		assert.Equal(t, at(9, 0), slots[0])
		assert.Equal(t, at(16, 45), slots[len(slots)-1])
		for _, s := range slots {
			assert.True(t, s.Before(w.End), "slot %s must start before window end", s.Format("15:04"))
		}
	})

	t.Run("window not a multiple of step", func(t *testing.T) {
		w, err := WindowOn(date, "09:00", "09:40")
		require.NoError(t, err)

		// Grid points align to the start; 09:30 still starts before the
		// end and belongs to the grid even though 09:30+15m overruns.
		slots := Grid(w, 15*time.Minute)
		assert.Equal(t, []string{"09:00", "09:15", "09:30"}, labels(slots))
	})

	t.Run("zero step yields nothing", func(t *testing.T) {
		w, _ := WindowOn(date, "09:00", "17:00")
		assert.Nil(t, Grid(w, 0))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		w, _ := WindowOn(date, "09:00", "17:00")
		assert.Equal(t, Grid(w, 15*time.Minute), Grid(w, 15*time.Minute))
	})
}

func TestAvailable_HalfOpenOverlap(t *testing.T) {
	w, err := WindowOn(date, "09:00", "17:00")
	require.NoError(t, err)
	grid := Grid(w, 15*time.Minute)

	// One existing booking blocking [10:00, 10:30).
	busy := []Busy{{BookingID: 1, Start: at(10, 0), End: at(10, 30)}}

	available := Available(grid, w, 30*time.Minute, busy, 0)
	byLabel := make(map[string]bool, len(available))
	for _, s := range available {
		byLabel[s.Format("15:04")] = true
	}

	// [09:30,10:00) touches the booking's start: no overlap.
	assert.True(t, byLabel["09:30"], "slot ending exactly at a booking's start is free")
	// [09:45,10:15) intersects [10:00,10:30).
	assert.False(t, byLabel["09:45"], "slot crossing into a booking is blocked")
	// [10:00,10:30) is the booking itself.
	assert.False(t, byLabel["10:00"])
	assert.False(t, byLabel["10:15"])
	// [10:30,11:00) touches the booking's end: no overlap.
	assert.True(t, byLabel["10:30"], "slot starting exactly at a booking's end is free")
}

func TestAvailable_SelfExclusionOnEdit(t *testing.T) {
	w, err := WindowOn(date, "09:00", "17:00")
	require.NoError(t, err)
	grid := Grid(w, 15*time.Minute)

	busy := []Busy{
		{BookingID: 7, Start: at(10, 0), End: at(10, 30)},
		{BookingID: 8, Start: at(11, 0), End: at(11, 30)},
	}

	// Editing booking 7: its own interval must not block, booking 8 still does.
	available := Available(grid, w, 30*time.Minute, busy, 7)
	byLabel := make(map[string]bool, len(available))
	for _, s := range available {
		byLabel[s.Format("15:04")] = true
	}

	assert.True(t, byLabel["10:00"], "a booking must not block its own reschedule")
	assert.False(t, byLabel["11:00"], "other bookings still block")
}

func TestAvailable_CandidateMustFitWindow(t *testing.T) {
	// Staff works 09:00-12:00; one booking [10:00,11:00); candidate
	// service is 30 minutes. The last grid point is 11:45 but a 30
	// minute service starting there would overrun the shift, so 11:30
	// is the last available slot.
	w, err := WindowOn(date, "09:00", "12:00")
	require.NoError(t, err)
	grid := Grid(w, 15*time.Minute)

	busy := []Busy{{BookingID: 3, Start: at(10, 0), End: at(11, 0)}}

	available := Available(grid, w, 30*time.Minute, busy, 0)
	assert.Equal(t,
		[]string{"09:00", "09:15", "09:30", "11:00", "11:15", "11:30"},
		labels(available))
}

func TestAvailable_Idempotent(t *testing.T) {
	w, _ := WindowOn(date, "09:00", "17:00")
	grid := Grid(w, 15*time.Minute)
	busy := []Busy{{BookingID: 1, Start: at(13, 0), End: at(14, 0)}}

	first := Available(grid, w, 45*time.Minute, busy, 0)
	second := Available(grid, w, 45*time.Minute, busy, 0)
	assert.Equal(t, first, second)
}

func TestAvailable_PreservesOrdering(t *testing.T) {
	w, _ := WindowOn(date, "09:00", "17:00")
	grid := Grid(w, 15*time.Minute)

	available := Available(grid, w, 15*time.Minute, nil, 0)
	for i := 1; i < len(available); i++ {
		assert.True(t, available[i-1].Before(available[i]))
	}
}
