package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"not null" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"business"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Image       string  `gorm:"size:255" json:"image"`
	Featured    bool    `gorm:"default:false" json:"featured"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
