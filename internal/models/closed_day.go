package models

import "time"

type ClosedDay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date time.Time `gorm:"type:date;uniqueIndex" json:"date"`

	Type   string `gorm:"size:20;default:'holiday'" json:"type"` // holiday | vacation | special
	Reason string `gorm:"size:255" json:"reason"`

	// Recurring matches the same month+day in every year (e.g. Natale).
	Recurring bool `gorm:"default:false" json:"recurring"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
