package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"salon-booking-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	// Reads used by the availability engine.
	GetAvailabilityRule(ctx context.Context, staffID int64, weekday time.Weekday) (*model.AvailabilityRule, error)
	GetBookingsForStaffOnDate(ctx context.Context, staffID int64, dayStart time.Time) ([]model.Booking, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)

	// Booking lifecycle.
	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	FindBookingsByEmailAndDate(ctx context.Context, email string, dayStart time.Time) ([]model.Booking, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
	UpdateBooking(ctx context.Context, id int64, fields BookingUpdate) error
	DeleteBooking(ctx context.Context, id int64) error
	DeleteBookingsEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Admin-managed catalog.
	ListServices(ctx context.Context) ([]model.Service, error)
	CreateService(ctx context.Context, s *model.Service) error
	UpdateService(ctx context.Context, s *model.Service) error
	DeleteService(ctx context.Context, id int64) error
	ListStaff(ctx context.Context) ([]model.Staff, error)
	CreateStaff(ctx context.Context, st *model.Staff) error
	DeleteStaff(ctx context.Context, id int64) error
	ListAvailabilityRules(ctx context.Context, staffID int64) ([]model.AvailabilityRule, error)
	UpsertAvailabilityRule(ctx context.Context, rule *model.AvailabilityRule) error
	DeleteAvailabilityRule(ctx context.Context, staffID int64, weekday time.Weekday) error

	DB() *gorm.DB
}

// BookingUpdate carries the replaceable fields of a reschedule. All
// fields are applied in a single write; callers never observe a partial
// application.
type BookingUpdate struct {
	StaffID   int64
	ServiceID int64
	StartsAt  time.Time
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// GetAvailabilityRule returns the rule for (staff, weekday), or nil when
// the staff member does not work that day. Absence is normal, not an
// error.
func (s *gormStore) GetAvailabilityRule(ctx context.Context, staffID int64, weekday time.Weekday) (*model.AvailabilityRule, error) {
	var rule model.AvailabilityRule
	err := s.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability rule for staff %d: %w", staffID, err)
	}
	return &rule, nil
}

// GetBookingsForStaffOnDate returns all bookings for the staff member
// within [dayStart, dayStart+24h), services preloaded so each booking's
// own duration is resolved in one round trip.
func (s *gormStore) GetBookingsForStaffOnDate(ctx context.Context, staffID int64, dayStart time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("staff_id = ? AND starts_at >= ? AND starts_at < ?", staffID, dayStart, dayStart.Add(24*time.Hour)).
		Order("starts_at").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for staff %d: %w", staffID, err)
	}
	return bookings, nil
}

func (s *gormStore) GetService(ctx context.Context, id int64) (*model.Service, error) {
	var svc model.Service
	if err := s.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *gormStore) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).
		Preload("Service").
		Preload("Staff").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindBookingsByEmailAndDate powers the self-service lookup: a customer
// identifies an appointment by the email it was booked under plus its
// calendar date.
func (s *gormStore) FindBookingsByEmailAndDate(ctx context.Context, email string, dayStart time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Preload("Service").
		Preload("Staff").
		Where("customer_email = ? AND starts_at >= ? AND starts_at < ?", email, dayStart, dayStart.Add(24*time.Hour)).
		Order("starts_at").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up bookings for %s: %w", email, err)
	}
	return bookings, nil
}

func (s *gormStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// UpdateBooking replaces start time, staff and service in one write.
func (s *gormStore) UpdateBooking(ctx context.Context, id int64, fields BookingUpdate) error {
	res := s.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"staff_id":   fields.StaffID,
			"service_id": fields.ServiceID,
			"starts_at":  fields.StartsAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update booking %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) DeleteBooking(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Booking{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBookingsEndedBefore removes bookings that started before the
// cutoff. Used by the retention sweeper; start time is a safe proxy for
// end time here because the cutoff is measured in days, not minutes.
func (s *gormStore) DeleteBookingsEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("starts_at < ?", cutoff).
		Delete(&model.Booking{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge old bookings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormStore) ListServices(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := s.db.WithContext(ctx).Order("name").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *gormStore) CreateService(ctx context.Context, svc *model.Service) error {
	return s.db.WithContext(ctx).Create(svc).Error
}

func (s *gormStore) UpdateService(ctx context.Context, svc *model.Service) error {
	res := s.db.WithContext(ctx).
		Model(&model.Service{}).
		Where("id = ?", svc.ID).
		Updates(map[string]any{
			"name":             svc.Name,
			"price":            svc.Price,
			"duration_minutes": svc.DurationMinutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) DeleteService(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.Service{}, id).Error
}

func (s *gormStore) ListStaff(ctx context.Context) ([]model.Staff, error) {
	var staff []model.Staff
	if err := s.db.WithContext(ctx).Order("name").Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (s *gormStore) CreateStaff(ctx context.Context, st *model.Staff) error {
	return s.db.WithContext(ctx).Create(st).Error
}

func (s *gormStore) DeleteStaff(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.Staff{}, id).Error
}

func (s *gormStore) ListAvailabilityRules(ctx context.Context, staffID int64) ([]model.AvailabilityRule, error) {
	var rules []model.AvailabilityRule
	err := s.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("weekday").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules for staff %d: %w", staffID, err)
	}
	return rules, nil
}

// UpsertAvailabilityRule creates or replaces the one rule allowed per
// (staff, weekday) pair.
func (s *gormStore) UpsertAvailabilityRule(ctx context.Context, rule *model.AvailabilityRule) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "staff_id"}, {Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "updated_at"}),
	}).Create(rule).Error
	if err != nil {
		return fmt.Errorf("failed to upsert availability rule: %w", err)
	}
	return nil
}

func (s *gormStore) DeleteAvailabilityRule(ctx context.Context, staffID int64, weekday time.Weekday) error {
	return s.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		Delete(&model.AvailabilityRule{}).Error
}
