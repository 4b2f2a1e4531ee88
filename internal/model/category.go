package model

import "time"

// Category classifies tasks for display (color and icon are presentation
// tokens the view layer interprets). Categories are never deleted, but a
// task may still reference an unknown id; see CategoryService.Resolve.
type Category struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	Color     string
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
