package models

import "time"

type Barber struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Emoji     string `gorm:"size:16" json:"emoji"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`
	Specialty string `gorm:"size:100" json:"specialty"`
	Active    bool   `gorm:"default:true;index" json:"active"`

	BarberServices []BarberService `json:"barber_services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
