package models

import "time"

// Base contains common columns for all tables. IDs are assigned by the
// store; a zero ID means the record has not been persisted yet.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
