package models

import (
	"time"
)

// SiteSettingsKey is the key of the single site-wide settings document.
const SiteSettingsKey = "site"

// SiteSettings stores the site-wide frontend configuration (hero, features,
// header, footer, ...) as one JSON document. The primary key on Key keeps
// at most one row per key.
type SiteSettings struct {
	Key       string         `gorm:"primarykey;not null" json:"key"`
	Value     map[string]any `gorm:"serializer:jsonnumber;type:text;not null" json:"value"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
