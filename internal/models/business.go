package models

import "time"

const (
	BusinessActive    = "active"
	BusinessSuspended = "suspended"
	BusinessInactive  = "inactive"
)

type Business struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Address      string `gorm:"size:255" json:"address"`
	Phone        string `gorm:"size:20" json:"phone"`
	ContactEmail string `gorm:"size:100" json:"contact_email"`
	Type         string `gorm:"size:50" json:"type"`
	Timezone     string `gorm:"size:50" json:"timezone"`

	Verified bool   `gorm:"default:false" json:"verified"`
	State    string `gorm:"size:20;default:'active'" json:"state"`

	RegisteredAt time.Time `json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
