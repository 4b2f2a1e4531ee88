package model

import "time"

// User identifies a person who can belong to spaces and be assigned tasks.
// Records are never deleted; leaving a space removes only the membership row.
type User struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	Avatar    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
