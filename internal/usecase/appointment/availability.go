package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type GetAvailability struct {
	repo    domain.Repository
	cache   domain.BookedTimesCache
	booking config.Booking
	log     zerolog.Logger
	now     func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	cache domain.BookedTimesCache,
	booking config.Booking,
	log zerolog.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo:    repo,
		cache:   cache,
		booking: booking,
		log:     log,
		now:     func() time.Time { return timezone.NowIn(booking.Timezone) },
	}
}

func (uc *GetAvailability) SetClock(now func() time.Time) {
	uc.now = now
}

// BookedTimes returns the times held by confirmed or pending appointments.
// Cache failures fall back to the database. A fill is stored only when no
// invalidation happened since the lookup.
func (uc *GetAvailability) BookedTimes(ctx context.Context, barberID uint, date string) ([]string, error) {
	if barberID == 0 || !validators.IsDate(date) {
		return nil, httperr.ErrBusiness("invalid_date_or_barber")
	}

	var (
		fill bool
		gen  int64
	)
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, barberID, date)
		if err != nil {
			uc.log.Warn().Err(err).Msg("booked times cache read failed")
		} else if cached.Hit {
			return cached.Times, nil
		} else {
			fill, gen = true, cached.Generation
		}
	}

	times, err := uc.repo.BookedTimes(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	if fill {
		if err := uc.cache.Set(ctx, barberID, date, gen, times); err != nil {
			uc.log.Warn().Err(err).Msg("booked times cache write failed")
		}
	}
	return times, nil
}

func (uc *GetAvailability) Slots(ctx context.Context, barberID uint, date string) ([]domain.Slot, error) {
	booked, err := uc.BookedTimes(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	return domain.BuildSlots(uc.booking.SlotTimes, booked), nil
}

func (uc *GetAvailability) BookingDates() []string {
	return domain.BookingDates(uc.now(), uc.booking.WindowDays)
}
