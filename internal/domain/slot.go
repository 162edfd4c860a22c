package domain

import "time"

// Slot is one named record of the local store, holding a serialized
// collection.
type Slot struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
