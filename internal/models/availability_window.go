package models

import "time"

// AvailabilityWindow is one open (or blocked, when Available is false) stretch
// of a staff member's day. Start and End are "HH:MM" clock times on Date.
// Several windows on the same date model split shifts.
type AvailabilityWindow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffMemberID uint        `gorm:"not null;index:idx_window_staff_date" json:"staff_member_id"`
	StaffMember   StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff_member"`

	Date      time.Time `gorm:"type:date;not null;index:idx_window_staff_date" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	Available bool      `gorm:"default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
