package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a news story shown on the stories page
type Post struct {
	ID        uuid.UUID `gorm:"type:text;primary_key" json:"id" yaml:"-"`
	Title     string    `gorm:"not null" json:"title" yaml:"title"`
	Excerpt   string    `gorm:"type:text" json:"excerpt" yaml:"excerpt"`
	Category  string    `gorm:"index;default:Platform Updates" json:"category" yaml:"category"`
	Image     string    `gorm:"type:text" json:"image" yaml:"image"`
	Author    string    `gorm:"default:Local Roots" json:"author" yaml:"author"`
	Date      string    `json:"date" yaml:"date"` // display date, free text
	Tags      []string  `gorm:"serializer:json;type:text" json:"tags" yaml:"tags"`
	Content   []string  `gorm:"serializer:json;type:text" json:"content" yaml:"content"` // paragraphs
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
}

// BeforeCreate hook to generate UUID
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
