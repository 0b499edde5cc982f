package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

// GetActiveBarberService returns the association only when it, its barber
// and its service are all active.
func (r *AppointmentGormRepository) GetActiveBarberService(
	ctx context.Context,
	barberID uint,
	serviceID uint,
) (*models.BarberService, error) {

	var bs models.BarberService
	err := r.db.WithContext(ctx).
		Joins("JOIN barbers ON barbers.id = barber_services.barber_id AND barbers.active = ?", true).
		Joins("JOIN services ON services.id = barber_services.service_id AND services.active = ?", true).
		Preload("Service").
		Where("barber_services.barber_id = ? AND barber_services.service_id = ? AND barber_services.active = ?",
			barberID, serviceID, true).
		First(&bs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_available")
	}
	if err != nil {
		return nil, err
	}
	return &bs, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment relies on the unique_appointment_active index to reject a
// second active booking for the same barber, date and time.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		First(&ap, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Model(ap).
		Select("status", "payment_status", "payment_method", "notes", "cancelled_at", "completed_at").
		Updates(ap).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) BookedTimes(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	times := []string{}
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND date = ? AND status IN ?", barberID, date, bookedStatuses()).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service")

	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.BarberID != 0 {
		q = q.Where("barber_id = ?", f.BarberID)
	}

	var aps []models.Appointment
	if err := q.
		Order("date DESC").
		Order("time ASC").
		Limit(f.EffectiveLimit()).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsInRange(
	ctx context.Context,
	from string,
	to string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var aps []models.Appointment
	if err := q.
		Select("id", "status", "payment_status", "payment_method", "price", "date").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListPaidAppointments(
	ctx context.Context,
	f domain.PaymentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("status = ? AND payment_status = ?", string(domain.StatusCompleted), string(domain.PaymentPaid))

	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", string(f.Method))
	}

	var aps []models.Appointment
	if err := q.
		Order("date DESC").
		Order("time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func bookedStatuses() []string {
	out := make([]string, 0, len(domain.BookedStatuses))
	for _, s := range domain.BookedStatuses {
		out = append(out, string(s))
	}
	return out
}
