package models

import (
	"time"
)

// Visit records a single page view reported by the frontend
type Visit struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Path      string    `gorm:"not null;default:/" json:"path"`
	UserAgent string    `gorm:"size:512" json:"userAgent"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
