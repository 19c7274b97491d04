package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleBoth   = "both"
)

// ValidRole reports whether role is one of the known marketplace roles.
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller || role == RoleBoth
}

// User represents a marketplace account (buyer and/or artisan seller)
type User struct {
	ID             uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"not null;default:buyer" json:"role"`
	VerifiedSeller bool      `gorm:"not null;default:false" json:"verifiedSeller"`
	Avatar         string    `gorm:"type:text" json:"avatar"` // URL or data URL
	Phone          string    `json:"phone"`
	Community      string    `json:"community"`
	Specialty      string    `json:"specialty"`
	Bio            string    `gorm:"type:text" json:"bio"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
