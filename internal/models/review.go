package models

import "time"

// Review is a client's opinion of a service they received. It stays hidden
// from the public surface until the business owner approves it.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	ServiceID uint    `gorm:"not null;index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Rating   int    `gorm:"not null" json:"rating"` // 1..5
	Comment  string `gorm:"size:500;not null" json:"comment"`
	Approved bool   `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
