package models

import (
	"time"

	"github.com/google/uuid"
)

type CashTransaction struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Amount  float64 `gorm:"not null" json:"amount"`
	Concept string  `gorm:"size:100;not null" json:"concept"`
	Method  string  `gorm:"size:20;not null" json:"method"`
	Type    string  `gorm:"size:10;not null;index" json:"type"`
	Date    string  `gorm:"size:10;not null;index" json:"date"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
