package model

import "time"

// PushSubscription holds a browser push subscription for a staff
// dashboard that wants to hear about booking changes.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Staff []*Staff `gorm:"many2many:subscription_staff_mapping;"`
}
