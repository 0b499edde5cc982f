// Package catalog covers barbers, services and the per-barber service
// assignments with their price overrides.
package catalog

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type CreateBarberInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	Emoji     string `json:"emoji" validate:"max=16"`
	Specialty string `json:"specialty" validate:"max=100"`
}

// UpdateBarberInput is a partial update: nil fields are left unchanged.
type UpdateBarberInput struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Emoji     *string `json:"emoji" validate:"omitempty,max=16"`
	Specialty *string `json:"specialty" validate:"omitempty,max=100"`
}

type CreateServiceInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Duration int     `json:"duration" validate:"required,gte=1"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type UpdateServiceInput struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Duration *int     `json:"duration" validate:"omitempty,gte=1"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}

// BarberServiceView is an active assignment with its resolved price.
type BarberServiceView struct {
	ID             uint     `json:"id"`
	BarberID       uint     `json:"barber_id"`
	ServiceID      uint     `json:"service_id"`
	Name           string   `json:"name"`
	Duration       int      `json:"duration"`
	BasePrice      float64  `json:"base_price"`
	CustomPrice    *float64 `json:"custom_price"`
	EffectivePrice float64  `json:"effective_price"`
}

func NewBarberServiceView(bs models.BarberService) BarberServiceView {
	return BarberServiceView{
		ID:             bs.ID,
		BarberID:       bs.BarberID,
		ServiceID:      bs.ServiceID,
		Name:           bs.Service.Name,
		Duration:       bs.Service.DurationMin,
		BasePrice:      bs.Service.Price,
		CustomPrice:    bs.CustomPrice,
		EffectivePrice: bs.EffectivePrice(),
	}
}

type Repository interface {
	// -------- Barbers --------
	ListActiveBarbers(ctx context.Context) ([]models.Barber, error)
	ListBarbersWithServices(ctx context.Context) ([]models.Barber, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	CreateBarber(ctx context.Context, in CreateBarberInput) (*models.Barber, error)
	UpdateBarber(ctx context.Context, id uint, in UpdateBarberInput) (*models.Barber, error)
	SetBarberAvatar(ctx context.Context, id uint, url string) (*models.Barber, error)
	DeactivateBarber(ctx context.Context, id uint) error

	// -------- Services --------
	ListServices(ctx context.Context, onlyActive bool) ([]models.Service, error)
	CreateService(ctx context.Context, in CreateServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, id uint, in UpdateServiceInput) (*models.Service, error)
	DeactivateService(ctx context.Context, id uint) error

	// -------- Barber services --------
	ListBarberServices(ctx context.Context, barberID uint) ([]BarberServiceView, error)
	ListAvailableServices(ctx context.Context, barberID uint) ([]models.Service, error)
	AssignService(ctx context.Context, barberID, serviceID uint, customPrice *float64) (*BarberServiceView, error)
	UnassignService(ctx context.Context, barberID, serviceID uint) error
	UpdateCustomPrice(ctx context.Context, barberID, serviceID uint, customPrice *float64) (*BarberServiceView, error)
}
