package models

import "time"

// OpeningHours: una riga per giorno della settimana (0 = domenica).
type OpeningHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday int  `gorm:"uniqueIndex" json:"weekday"`
	Closed  bool `json:"closed"`

	OpenTime  string `gorm:"size:5" json:"open_time"`  // HH:MM
	CloseTime string `gorm:"size:5" json:"close_time"` // HH:MM

	// Pausa pranzo opzionale; vuoto = nessuna pausa.
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
