package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Snapshot of the contact data as submitted; the Client row is the
	// long-term visit history, the snapshot is what the booking showed.
	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`
	ClientEmail string `gorm:"size:100" json:"client_email"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Duration is copied from the service at creation time and is the
	// value every conflict check uses from then on.
	DurationMin int `json:"duration_min"`

	Date time.Time `gorm:"type:date" json:"date"`
	Time string    `gorm:"size:5" json:"time"` // HH:MM, business-local

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`
	Kind   string `gorm:"size:10;default:'booking'" json:"kind"`

	Notes       string `gorm:"size:255" json:"notes"`
	CancelToken string `gorm:"size:36;uniqueIndex" json:"-"`

	// Walk-in queue fields, meaningful only when Kind is walkin.
	QueuePosition    *int       `json:"queue_position,omitempty"`
	EstimatedWaitMin *int       `json:"estimated_wait_min,omitempty"`
	CheckedInAt      *time.Time `json:"checked_in_at,omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
