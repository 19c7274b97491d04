package models

import (
	"time"
)

// AuditLog represents a record of privileged actions for compliance
type AuditLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Actor       string    `gorm:"index" json:"actor"`            // e-mail or id of the caller, empty when anonymous
	Action      string    `gorm:"not null" json:"action"`        // e.g., "replace_settings", "delete_product"
	Resource    string    `gorm:"not null" json:"resource"`      // e.g., "settings:site", "product:123"
	DetailsJSON string    `gorm:"type:text" json:"details_json"` // Additional context in JSON
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
}
