package models

import "time"

// StaffMember is deactivated, never deleted, while reservations reference it.
type StaffMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"not null" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"business"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Position string  `gorm:"size:100" json:"position"`
	Email    string  `gorm:"size:100" json:"email"`
	Phone    string  `gorm:"size:20" json:"phone"`
	Photo    string  `gorm:"size:255" json:"photo"`
	Bio      string  `gorm:"type:text" json:"bio"`
	Rating   float32 `json:"rating"`
	Active   bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
