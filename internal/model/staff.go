package model

import "time"

// Staff represents a salon employee customers can book with.
type Staff struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Associations
	AvailabilityRules []AvailabilityRule `gorm:"foreignKey:StaffID" json:"-"`
}

// AvailabilityRule is a staff member's working window for one weekday.
// At most one rule per (staff, weekday); absence of a rule means the
// staff member does not work that day. Times are wall-clock "HH:MM"
// strings local to the salon, converted at the engine boundary.
type AvailabilityRule struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	StaffID   int64        `gorm:"uniqueIndex:idx_staff_weekday;not null" json:"staff_id"`
	Weekday   time.Weekday `gorm:"uniqueIndex:idx_staff_weekday;not null" json:"weekday"`
	StartTime string       `gorm:"size:8;not null" json:"start_time"`
	EndTime   string       `gorm:"size:8;not null" json:"end_time"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`

	// Associations
	Staff Staff `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
