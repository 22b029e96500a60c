package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"salon-booking-backend/internal/model"
)

// newTestStore opens a fresh in-memory database per test.
func newTestStore(t *testing.T) Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(
		&model.Staff{},
		&model.AvailabilityRule{},
		&model.Service{},
		&model.Booking{},
		&model.PushSubscription{},
	))
	return NewGormStore(gormDB)
}

func TestGetAvailabilityRule(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staff := model.Staff{Name: "Robin"}
	require.NoError(t, s.CreateStaff(ctx, &staff))
	require.NoError(t, s.UpsertAvailabilityRule(ctx, &model.AvailabilityRule{
		StaffID:   staff.ID,
		Weekday:   time.Monday,
		StartTime: "09:00",
		EndTime:   "17:00",
	}))

	t.Run("existing rule", func(t *testing.T) {
		rule, err := s.GetAvailabilityRule(ctx, staff.ID, time.Monday)
		require.NoError(t, err)
		require.NotNil(t, rule)
		assert.Equal(t, "09:00", rule.StartTime)
		assert.Equal(t, "17:00", rule.EndTime)
	})

	t.Run("day off is nil, not an error", func(t *testing.T) {
		rule, err := s.GetAvailabilityRule(ctx, staff.ID, time.Wednesday)
		require.NoError(t, err)
		assert.Nil(t, rule)
	})
}

func TestUpsertAvailabilityRule_ReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staff := model.Staff{Name: "Robin"}
	require.NoError(t, s.CreateStaff(ctx, &staff))

	require.NoError(t, s.UpsertAvailabilityRule(ctx, &model.AvailabilityRule{
		StaffID: staff.ID, Weekday: time.Friday, StartTime: "09:00", EndTime: "17:00",
	}))
	require.NoError(t, s.UpsertAvailabilityRule(ctx, &model.AvailabilityRule{
		StaffID: staff.ID, Weekday: time.Friday, StartTime: "10:00", EndTime: "14:00",
	}))

	rules, err := s.ListAvailabilityRules(ctx, staff.ID)
	require.NoError(t, err)
	require.Len(t, rules, 1, "at most one rule per (staff, weekday)")
	assert.Equal(t, "10:00", rules[0].StartTime)
	assert.Equal(t, "14:00", rules[0].EndTime)
}

func TestGetBookingsForStaffOnDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staff := model.Staff{Name: "Robin"}
	other := model.Staff{Name: "Alex"}
	svc := model.Service{Name: "Cut", DurationMinutes: 30}
	require.NoError(t, s.CreateStaff(ctx, &staff))
	require.NoError(t, s.CreateStaff(ctx, &other))
	require.NoError(t, s.CreateService(ctx, &svc))

	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
	mk := func(st model.Staff, at time.Time) {
		require.NoError(t, s.CreateBooking(ctx, &model.Booking{
			CustomerName:  "c",
			CustomerEmail: "c@example.com",
			StaffID:       st.ID,
			ServiceID:     svc.ID,
			StartsAt:      at,
		}))
	}
	mk(staff, day.Add(10*time.Hour))              // on the day
	mk(staff, day.Add(15*time.Hour))              // on the day
	mk(staff, day.Add(24*time.Hour))              // next day, excluded (half-open range)
	mk(staff, day.Add(-time.Hour))                // previous day, excluded
	mk(other, day.Add(10*time.Hour))              // other staff, excluded

	bookings, err := s.GetBookingsForStaffOnDate(ctx, staff.ID, day)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.True(t, bookings[0].StartsAt.Before(bookings[1].StartsAt), "ordered by start time")
	assert.Equal(t, 30, bookings[0].Service.DurationMinutes, "service preloaded")
}

func TestUpdateBooking(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staff := model.Staff{Name: "Robin"}
	other := model.Staff{Name: "Alex"}
	cut := model.Service{Name: "Cut", DurationMinutes: 30}
	color := model.Service{Name: "Color", DurationMinutes: 60}
	require.NoError(t, s.CreateStaff(ctx, &staff))
	require.NoError(t, s.CreateStaff(ctx, &other))
	require.NoError(t, s.CreateService(ctx, &cut))
	require.NoError(t, s.CreateService(ctx, &color))

	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
	b := model.Booking{
		CustomerName:  "Ines",
		CustomerEmail: "ines@example.com",
		StaffID:       staff.ID,
		ServiceID:     cut.ID,
		StartsAt:      day.Add(10 * time.Hour),
	}
	require.NoError(t, s.CreateBooking(ctx, &b))

	t.Run("replaces time, staff and service together", func(t *testing.T) {
		err := s.UpdateBooking(ctx, b.ID, BookingUpdate{
			StaffID:   other.ID,
			ServiceID: color.ID,
			StartsAt:  day.Add(14 * time.Hour),
		})
		require.NoError(t, err)

		got, err := s.GetBooking(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.StaffID)
		assert.Equal(t, color.ID, got.ServiceID)
		assert.Equal(t, day.Add(14*time.Hour).Unix(), got.StartsAt.Unix())
		assert.Equal(t, "Ines", got.CustomerName, "customer fields untouched")
	})

	t.Run("unknown id", func(t *testing.T) {
		err := s.UpdateBooking(ctx, 99999, BookingUpdate{StaffID: staff.ID, ServiceID: cut.ID, StartsAt: day})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestDeleteBooking(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staff := model.Staff{Name: "Robin"}
	svc := model.Service{Name: "Cut", DurationMinutes: 30}
	require.NoError(t, s.CreateStaff(ctx, &staff))
	require.NoError(t, s.CreateService(ctx, &svc))

	b := model.Booking{
		CustomerName:  "Ines",
		CustomerEmail: "ines@example.com",
		StaffID:       staff.ID,
		ServiceID:     svc.ID,
		StartsAt:      time.Now().Add(48 * time.Hour),
	}
	require.NoError(t, s.CreateBooking(ctx, &b))

	require.NoError(t, s.DeleteBooking(ctx, b.ID))
	assert.ErrorIs(t, s.DeleteBooking(ctx, b.ID), gorm.ErrRecordNotFound)
}

func TestFindBookingsByEmailAndDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staff := model.Staff{Name: "Robin"}
	svc := model.Service{Name: "Cut", DurationMinutes: 30}
	require.NoError(t, s.CreateStaff(ctx, &staff))
	require.NoError(t, s.CreateService(ctx, &svc))

	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
	require.NoError(t, s.CreateBooking(ctx, &model.Booking{
		CustomerName:  "Ines",
		CustomerEmail: "ines@example.com",
		StaffID:       staff.ID,
		ServiceID:     svc.ID,
		StartsAt:      day.Add(10 * time.Hour),
	}))
	require.NoError(t, s.CreateBooking(ctx, &model.Booking{
		CustomerName:  "Ines",
		CustomerEmail: "ines@example.com",
		StaffID:       staff.ID,
		ServiceID:     svc.ID,
		StartsAt:      day.AddDate(0, 0, 7).Add(10 * time.Hour),
	}))

	found, err := s.FindBookingsByEmailAndDate(ctx, "ines@example.com", day)
	require.NoError(t, err)
	require.Len(t, found, 1, "only the requested date")
	assert.Equal(t, "Robin", found[0].Staff.Name)
	assert.Equal(t, "Cut", found[0].Service.Name)
}

func TestDeleteBookingsEndedBefore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staff := model.Staff{Name: "Robin"}
	svc := model.Service{Name: "Cut", DurationMinutes: 30}
	require.NoError(t, s.CreateStaff(ctx, &staff))
	require.NoError(t, s.CreateService(ctx, &svc))

	now := time.Now()
	old := model.Booking{
		CustomerName: "a", CustomerEmail: "a@example.com",
		StaffID: staff.ID, ServiceID: svc.ID,
		StartsAt: now.AddDate(0, 0, -120),
	}
	recent := model.Booking{
		CustomerName: "b", CustomerEmail: "b@example.com",
		StaffID: staff.ID, ServiceID: svc.ID,
		StartsAt: now.AddDate(0, 0, -5),
	}
	require.NoError(t, s.CreateBooking(ctx, &old))
	require.NoError(t, s.CreateBooking(ctx, &recent))

	purged, err := s.DeleteBookingsEndedBefore(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = s.GetBooking(ctx, recent.ID)
	assert.NoError(t, err, "recent booking survives the sweep")
}
