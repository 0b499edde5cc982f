package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Notifier is told about every new appointment. It must not block.
type Notifier interface {
	AppointmentCreated(ap models.Appointment)
}

type noopNotifier struct{}

func (noopNotifier) AppointmentCreated(models.Appointment) {}

// transitioner loads an appointment, applies one domain action and persists
// it as a single update.
type transitioner struct {
	repo  domain.Repository
	cache domain.BookedTimesCache
	audit *audit.Dispatcher
	log   zerolog.Logger
	tz    string
	now   func() time.Time
}

func newTransitioner(
	repo domain.Repository,
	cache domain.BookedTimesCache,
	dispatcher *audit.Dispatcher,
	log zerolog.Logger,
	tz string,
) transitioner {
	return transitioner{
		repo:  repo,
		cache: cache,
		audit: dispatcher,
		log:   log,
		tz:    tz,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

func (t transitioner) apply(
	ctx context.Context,
	actor *uuid.UUID,
	id uint,
	action string,
	metadata any,
	fn func(ap *models.Appointment, now time.Time) error,
) (*models.Appointment, error) {

	ap, err := t.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(ap, t.now()); err != nil {
		return nil, err
	}

	if err := t.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	invalidate(ctx, t.cache, t.log, ap.BarberID, ap.Date)

	t.audit.Dispatch(audit.Event{
		UserID:   actor,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: metadata,
	})
	metrics.IncTransition(ap.Status)

	return t.repo.GetAppointment(ctx, id)
}

func invalidate(ctx context.Context, cache domain.BookedTimesCache, log zerolog.Logger, barberID uint, date string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, barberID, date); err != nil {
		log.Warn().Err(err).Uint("barber_id", barberID).Str("date", date).Msg("booked times cache invalidation failed")
	}
}
