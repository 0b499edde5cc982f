package models

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FullName       string    `gorm:"size:100" json:"full_name"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	Role           string    `gorm:"size:20;not null;default:'employee'" json:"role"`
	Active         bool      `gorm:"default:true" json:"active"`
	EmailConfirmed bool      `gorm:"default:true" json:"email_confirmed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
