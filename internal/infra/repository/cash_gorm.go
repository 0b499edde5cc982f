package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/cash"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type CashGormRepository struct {
	db *gorm.DB
}

var _ cash.Repository = (*CashGormRepository)(nil)

func NewCashGormRepository(db *gorm.DB) *CashGormRepository {
	return &CashGormRepository{db: db}
}

func (r *CashGormRepository) Create(ctx context.Context, tx *models.CashTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *CashGormRepository) ListRange(ctx context.Context, from, to string) ([]models.CashTransaction, error) {
	q := r.db.WithContext(ctx)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var txs []models.CashTransaction
	if err := q.
		Order("date DESC").
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
