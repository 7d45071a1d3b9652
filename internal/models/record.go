package models

import "time"

// Record is one named value in the local key/value store.
type Record struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}
