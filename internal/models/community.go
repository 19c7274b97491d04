package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Community is a local producer community products are grouped under
type Community struct {
	ID          uuid.UUID `gorm:"type:text;primary_key" json:"id" yaml:"-"`
	Name        string    `gorm:"not null" json:"name" yaml:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug" yaml:"slug"`
	Description string    `gorm:"type:text" json:"description" yaml:"description"`
	Image       string    `gorm:"type:text" json:"image" yaml:"image"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"-"`
}

// BeforeCreate hook to generate UUID
func (c *Community) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Category groups products and stories by theme
type Category struct {
	ID        uuid.UUID `gorm:"type:text;primary_key" json:"id" yaml:"-"`
	Name      string    `gorm:"not null" json:"name" yaml:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug" yaml:"slug"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
}

// BeforeCreate hook to generate UUID
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
