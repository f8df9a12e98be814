package models

import (
	"time"
)

// StateRecord is one persisted key of the tracker state (e.g. "shoeWatchlist").
// Payload holds the JSON encoding of the list stored under Key.
type StateRecord struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Payload   string    `json:"payload" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}
