package model

import "time"

// Service represents a bookable salon treatment.
// DurationMinutes is authoritative for slot-length computation.
type Service struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:256;not null" json:"name"`
	Price           float64   `gorm:"not null" json:"price"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// Duration returns the service length as a time.Duration.
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
