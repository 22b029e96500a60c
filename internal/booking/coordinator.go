// Package booking orchestrates the pure scheduling primitives around
// single persistence writes: create, reschedule and cancel.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"salon-booking-backend/internal/model"
	"salon-booking-backend/internal/schedule"
	"salon-booking-backend/internal/store"
)

// Options tune the coordinator's scheduling policy.
type Options struct {
	// SlotStep is the grid spacing. Defaults to 15 minutes.
	SlotStep time.Duration
	// Notice is the minimum lead time for self-service mutations.
	// Defaults to schedule.DefaultNotice (24h).
	Notice time.Duration
	// Location is the salon's timezone; calendar dates are interpreted
	// in it. Defaults to time.Local.
	Location *time.Location
}

// Coordinator sequences availability computation, the notice-period
// guard and the persistence write for every booking mutation. It holds
// no state between calls; every operation is computed fresh from the
// store.
type Coordinator struct {
	store  store.Store
	step   time.Duration
	notice time.Duration
	loc    *time.Location

	// Now is swappable for tests.
	Now func() time.Time
}

// New creates a coordinator over the given store.
func New(s store.Store, opts Options) *Coordinator {
	if opts.SlotStep <= 0 {
		opts.SlotStep = 15 * time.Minute
	}
	if opts.Notice <= 0 {
		opts.Notice = schedule.DefaultNotice
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Coordinator{
		store:  s,
		step:   opts.SlotStep,
		notice: opts.Notice,
		loc:    opts.Location,
		Now:    time.Now,
	}
}

// Location returns the salon timezone the coordinator operates in.
func (c *Coordinator) Location() *time.Location {
	return c.loc
}

// Availability returns the ascending bookable start times for the staff
// member on the given calendar date for a booking of the given service.
// A staff member without a rule for that weekday yields an empty slice,
// never an error. excludeBookingID (0 for none) lets a reschedule ignore
// the booking being moved.
func (c *Coordinator) Availability(ctx context.Context, staffID int64, date time.Time, serviceID, excludeBookingID int64) ([]time.Time, error) {
	date = c.dayStart(date)

	rule, err := c.store.GetAvailabilityRule(ctx, staffID, date.Weekday())
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, nil
	}

	svc, err := c.store.GetService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service %d: %w", serviceID, err)
	}

	window, err := schedule.WindowOn(date, rule.StartTime, rule.EndTime)
	if err != nil {
		return nil, fmt.Errorf("availability rule %d is malformed: %w", rule.ID, err)
	}

	busy, err := c.busyIntervals(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	grid := schedule.Grid(window, c.step)
	return schedule.Available(grid, window, svc.Duration(), busy, excludeBookingID), nil
}

// busyIntervals assembles the blocked intervals for a staff day. Each
// existing booking blocks with its own service's duration, not the
// duration of the service being newly booked.
func (c *Coordinator) busyIntervals(ctx context.Context, staffID int64, dayStart time.Time) ([]schedule.Busy, error) {
	bookings, err := c.store.GetBookingsForStaffOnDate(ctx, staffID, dayStart)
	if err != nil {
		return nil, err
	}
	busy := make([]schedule.Busy, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, schedule.Busy{
			BookingID: b.ID,
			Start:     b.StartsAt,
			End:       b.EndsAt(),
		})
	}
	return busy, nil
}

// CreateRequest carries the fields of a new booking.
type CreateRequest struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StaffID       int64
	ServiceID     int64
	StartsAt      time.Time
}

// Create validates the requested slot against availability recomputed at
// the moment of submission, then writes the booking. The recomputation
// is the only defense against two customers racing for the same slot; a
// stronger guarantee would need a conditional write at the storage
// layer.
func (c *Coordinator) Create(ctx context.Context, req CreateRequest) (*model.Booking, error) {
	if err := c.ensureAvailable(ctx, req.StaffID, req.ServiceID, req.StartsAt, 0); err != nil {
		return nil, err
	}

	b := &model.Booking{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		StartsAt:      req.StartsAt,
	}
	if err := c.store.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	return c.reload(ctx, b.ID)
}

// RescheduleRequest replaces a booking's start time and optionally its
// staff member and service. Zero values keep the current assignment.
type RescheduleRequest struct {
	StaffID   int64
	ServiceID int64
	StartsAt  time.Time
}

// Reschedule moves an existing booking. The notice-period guard runs
// against the booking's *current* start; on pass, availability is
// recomputed with the booking's own interval excluded so it cannot block
// itself, and the replacement lands in one write.
func (c *Coordinator) Reschedule(ctx context.Context, id int64, req RescheduleRequest) (*model.Booking, error) {
	current, err := c.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !schedule.CanMutate(current.StartsAt, c.Now(), c.notice) {
		return nil, ErrNoticePeriod
	}

	staffID := req.StaffID
	if staffID == 0 {
		staffID = current.StaffID
	}
	serviceID := req.ServiceID
	if serviceID == 0 {
		serviceID = current.ServiceID
	}

	if err := c.ensureAvailable(ctx, staffID, serviceID, req.StartsAt, id); err != nil {
		return nil, err
	}

	err = c.store.UpdateBooking(ctx, id, store.BookingUpdate{
		StaffID:   staffID,
		ServiceID: serviceID,
		StartsAt:  req.StartsAt,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return c.reload(ctx, id)
}

// Cancel removes a booking, subject to the same notice-period guard as
// rescheduling.
func (c *Coordinator) Cancel(ctx context.Context, id int64) (*model.Booking, error) {
	current, err := c.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !schedule.CanMutate(current.StartsAt, c.Now(), c.notice) {
		return nil, ErrNoticePeriod
	}
	if err := c.store.DeleteBooking(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return current, nil
}

// Lookup finds a customer's bookings by email and calendar date, the
// self-service entry point.
func (c *Coordinator) Lookup(ctx context.Context, email string, date time.Time) ([]model.Booking, error) {
	return c.store.FindBookingsByEmailAndDate(ctx, email, c.dayStart(date))
}

// ensureAvailable re-derives the available set and rejects if startsAt
// is not in it. Grid membership doubles as validation that the time is
// aligned and inside the working window.
func (c *Coordinator) ensureAvailable(ctx context.Context, staffID, serviceID int64, startsAt time.Time, excludeBookingID int64) error {
	slots, err := c.Availability(ctx, staffID, startsAt, serviceID, excludeBookingID)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.Equal(startsAt) {
			return nil
		}
	}
	return ErrSlotUnavailable
}

func (c *Coordinator) getBooking(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := c.store.GetBooking(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %d: %w", id, err)
	}
	return b, nil
}

func (c *Coordinator) reload(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := c.store.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", id, err)
	}
	return b, nil
}

// dayStart truncates a timestamp to midnight in the salon's timezone.
func (c *Coordinator) dayStart(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}
