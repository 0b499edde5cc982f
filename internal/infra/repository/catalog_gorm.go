package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *CatalogGormRepository) ListActiveBarbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

// ListBarbersWithServices lists active barbers with their active assignments
// to active services.
func (r *CatalogGormRepository) ListBarbersWithServices(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Preload("BarberServices", func(tx *gorm.DB) *gorm.DB {
			return tx.
				Joins("JOIN services ON services.id = barber_services.service_id AND services.active = ?", true).
				Where("barber_services.active = ?", true).
				Order("barber_services.id ASC")
		}).
		Preload("BarberServices.Service").
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *CatalogGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var b models.Barber
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *CatalogGormRepository) CreateBarber(ctx context.Context, in catalog.CreateBarberInput) (*models.Barber, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	b := models.Barber{
		Name:      in.Name,
		Emoji:     in.Emoji,
		Specialty: in.Specialty,
		Active:    true,
	}
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *CatalogGormRepository) UpdateBarber(ctx context.Context, id uint, in catalog.UpdateBarberInput) (*models.Barber, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Emoji != nil {
		updates["emoji"] = *in.Emoji
	}
	if in.Specialty != nil {
		updates["specialty"] = *in.Specialty
	}

	return r.updateBarber(ctx, id, updates)
}

func (r *CatalogGormRepository) SetBarberAvatar(ctx context.Context, id uint, url string) (*models.Barber, error) {
	return r.updateBarber(ctx, id, map[string]any{"avatar_url": url})
}

func (r *CatalogGormRepository) updateBarber(ctx context.Context, id uint, updates map[string]any) (*models.Barber, error) {
	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		res := r.db.WithContext(ctx).
			Model(&models.Barber{}).
			Where("id = ? AND active = ?", id, true).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
	}
	return r.GetBarber(ctx, id)
}

func (r *CatalogGormRepository) DeactivateBarber(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("barber_not_found")
	}
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(ctx context.Context, onlyActive bool) ([]models.Service, error) {
	q := r.db.WithContext(ctx)
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, in catalog.CreateServiceInput) (*models.Service, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	s := models.Service{
		Name:        in.Name,
		DurationMin: in.Duration,
		Price:       in.Price,
		Active:      true,
	}
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, id uint, in catalog.UpdateServiceInput) (*models.Service, error) {
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Duration != nil {
		updates["duration_min"] = *in.Duration
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		res := r.db.WithContext(ctx).
			Model(&models.Service{}).
			Where("id = ? AND active = ?", id, true).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}

	var s models.Service
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeactivateService hides the service. Its barber assignments are kept but
// drop out of every listing because those require an active service.
func (r *CatalogGormRepository) DeactivateService(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("service_not_found")
	}
	return nil
}

// --------------------------------------------------
// Barber services
// --------------------------------------------------

func (r *CatalogGormRepository) activeAssignments(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN services ON services.id = barber_services.service_id AND services.active = ?", true).
		Preload("Service").
		Where("barber_services.active = ?", true)
}

// ListBarberServices lists what an active barber offers; a deactivated
// barber offers nothing.
func (r *CatalogGormRepository) ListBarberServices(ctx context.Context, barberID uint) ([]catalog.BarberServiceView, error) {
	var rows []models.BarberService
	if err := r.activeAssignments(ctx).
		Joins("JOIN barbers ON barbers.id = barber_services.barber_id AND barbers.active = ?", true).
		Where("barber_services.barber_id = ?", barberID).
		Order("services.name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]catalog.BarberServiceView, 0, len(rows))
	for _, bs := range rows {
		views = append(views, catalog.NewBarberServiceView(bs))
	}
	return views, nil
}

// ListAvailableServices returns active services the barber does not
// currently offer.
func (r *CatalogGormRepository) ListAvailableServices(ctx context.Context, barberID uint) ([]models.Service, error) {
	assigned := r.db.
		Model(&models.BarberService{}).
		Select("service_id").
		Where("barber_id = ? AND active = ?", barberID, true)

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("id NOT IN (?)", assigned).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// AssignService creates the assignment or reactivates an existing one.
func (r *CatalogGormRepository) AssignService(
	ctx context.Context,
	barberID, serviceID uint,
	customPrice *float64,
) (*catalog.BarberServiceView, error) {

	if customPrice != nil && *customPrice < 0 {
		return nil, httperr.ErrBusiness("invalid_price")
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ? AND active = ?", barberID, true).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ? AND active = ?", serviceID, true).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	bs := models.BarberService{
		BarberID:    barberID,
		ServiceID:   serviceID,
		CustomPrice: customPrice,
		Active:      true,
	}
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}, {Name: "service_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"active", "custom_price", "updated_at"}),
		}).
		Create(&bs).Error; err != nil {
		return nil, err
	}

	return r.getAssignment(ctx, barberID, serviceID)
}

func (r *CatalogGormRepository) UnassignService(ctx context.Context, barberID, serviceID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.BarberService{}).
		Where("barber_id = ? AND service_id = ? AND active = ?", barberID, serviceID, true).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("assignment_not_found")
	}
	return nil
}

// UpdateCustomPrice sets the override; nil clears it so the base price applies.
func (r *CatalogGormRepository) UpdateCustomPrice(
	ctx context.Context,
	barberID, serviceID uint,
	customPrice *float64,
) (*catalog.BarberServiceView, error) {

	var value any
	if customPrice != nil {
		if *customPrice < 0 {
			return nil, httperr.ErrBusiness("invalid_price")
		}
		value = *customPrice
	}

	res := r.db.WithContext(ctx).
		Model(&models.BarberService{}).
		Where("barber_id = ? AND service_id = ? AND active = ?", barberID, serviceID, true).
		Update("custom_price", value)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrBusiness("assignment_not_found")
	}

	return r.getAssignment(ctx, barberID, serviceID)
}

func (r *CatalogGormRepository) getAssignment(ctx context.Context, barberID, serviceID uint) (*catalog.BarberServiceView, error) {
	var bs models.BarberService
	err := r.activeAssignments(ctx).
		Where("barber_services.barber_id = ? AND barber_services.service_id = ?", barberID, serviceID).
		First(&bs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("assignment_not_found")
	}
	if err != nil {
		return nil, err
	}

	view := catalog.NewBarberServiceView(bs)
	return &view, nil
}
