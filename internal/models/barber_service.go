package models

import "time"

// BarberService links a barber to a service they offer. CustomPrice, when
// set, overrides Service.Price for that barber.
type BarberService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"not null;uniqueIndex:idx_barber_service" json:"barber_id"`

	ServiceID uint    `gorm:"not null;uniqueIndex:idx_barber_service" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	CustomPrice *float64 `json:"custom_price"`
	Active      bool     `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (bs BarberService) EffectivePrice() float64 {
	if bs.CustomPrice != nil {
		return *bs.CustomPrice
	}
	return bs.Service.Price
}
