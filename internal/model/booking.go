package model

import "time"

// Booking is an appointment for one customer with one staff member.
// No end time is stored; the effective interval is always
// [StartsAt, StartsAt + service duration), half-open, so a booking
// ending exactly when another starts does not overlap it.
type Booking struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	CustomerName  string    `gorm:"size:256;not null" json:"customer_name"`
	CustomerEmail string    `gorm:"size:256;index;not null" json:"customer_email"`
	CustomerPhone string    `gorm:"size:64" json:"customer_phone"`
	StaffID       int64     `gorm:"index;not null" json:"staff_id"`
	ServiceID     int64     `gorm:"not null" json:"service_id"`
	StartsAt      time.Time `gorm:"index;not null" json:"starts_at"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`

	// Associations
	Staff   Staff   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Service Service `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// EndsAt derives the booking's end from its service duration.
func (b Booking) EndsAt() time.Time {
	return b.StartsAt.Add(b.Service.Duration())
}
