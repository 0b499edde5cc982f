package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleEmployee
}

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	Create(ctx context.Context, u *models.UserProfile) error
	ListActive(ctx context.Context) ([]models.UserProfile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
