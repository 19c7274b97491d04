package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents an item listed by a vendor in a community.
// Name, vendor and community together are unique.
type Product struct {
	ID          uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_products_identity" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"type:text" json:"image"`
	Images      []string  `gorm:"serializer:json;type:text" json:"images"`
	Category    string    `gorm:"default:Others" json:"category"`
	Community   string    `gorm:"index;uniqueIndex:idx_products_identity;default:global" json:"community"`
	Vendor      string    `gorm:"uniqueIndex:idx_products_identity" json:"vendor"`
	OwnerID     string    `gorm:"index" json:"userId,omitempty"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate hook to generate UUID
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
