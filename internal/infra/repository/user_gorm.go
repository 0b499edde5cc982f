package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var u models.UserProfile
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	var u models.UserProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.UserProfile) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("email_already_registered")
	}
	return err
}

func (r *UserGormRepository) ListActive(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserGormRepository) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	return r.updateActive(ctx, id, "role", string(role))
}

func (r *UserGormRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.updateActive(ctx, id, "active", false)
}

func (r *UserGormRepository) updateActive(ctx context.Context, id uuid.UUID, column string, value any) error {
	res := r.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("id = ? AND active = ?", id, true).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("user_not_found")
	}
	return nil
}
