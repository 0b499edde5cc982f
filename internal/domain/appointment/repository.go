package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type ListFilter struct {
	Date     string
	Status   Status
	BarberID uint
	Limit    int
}

// EffectiveLimit clamps Limit into 1..MaxListLimit, defaulting to DefaultListLimit.
func (f ListFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

type PaymentFilter struct {
	From   string
	To     string
	Method PaymentMethod
}

type Repository interface {
	// -------- Catalog --------
	GetActiveBarberService(
		ctx context.Context,
		barberID uint,
		serviceID uint,
	) (*models.BarberService, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	BookedTimes(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]string, error)

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)

	ListAppointmentsInRange(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Appointment, error)

	ListPaidAppointments(
		ctx context.Context,
		f PaymentFilter,
	) ([]models.Appointment, error)
}

// CachedTimes is the result of a cache lookup. Generation is bumped by every
// Invalidate; a Set carrying an older generation is discarded, so a fill
// read from the database before a booking cannot outlive that booking.
type CachedTimes struct {
	Times      []string
	Hit        bool
	Generation int64
}

// BookedTimesCache holds the booked times of one barber on one date.
type BookedTimesCache interface {
	Get(ctx context.Context, barberID uint, date string) (CachedTimes, error)
	Set(ctx context.Context, barberID uint, date string, generation int64, times []string) error
	Invalidate(ctx context.Context, barberID uint, date string) error
}
