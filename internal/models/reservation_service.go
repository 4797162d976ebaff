package models

import "time"

// ReservationService joins one reservation to one booked service instance.
// The same service may appear more than once in a reservation; Position keeps
// the order the services were requested in.
type ReservationService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint `gorm:"not null;index" json:"reservation_id"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	Position int `gorm:"not null" json:"position"`

	CreatedAt time.Time `json:"created_at"`
}
