package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type Channel string

const (
	ChannelPublic Channel = "public"
	ChannelAdmin  Channel = "admin"
)

type CreateAppointmentInput struct {
	BarberID  uint   `json:"barber_id" validate:"required"`
	ServiceID uint   `json:"service_id" validate:"required"`
	Date      string `json:"date" validate:"required,ymd"`
	Time      string `json:"time" validate:"required,hhmm"`

	CustomerName  string `json:"customer_name" validate:"required,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=30"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=100"`
	Notes         string `json:"notes" validate:"max=255"`

	Channel Channel    `json:"-"`
	Actor   *uuid.UUID `json:"-"`
}

func (in *CreateAppointmentInput) normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = validators.NormalizeTime(in.Time)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Channel == "" {
		in.Channel = ChannelPublic
	}
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	cache    domain.BookedTimesCache
	audit    *audit.Dispatcher
	notifier Notifier
	booking  config.Booking
	log      zerolog.Logger
	now      func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	cache domain.BookedTimesCache,
	dispatcher *audit.Dispatcher,
	notifier Notifier,
	booking config.Booking,
	log zerolog.Logger,
) *CreateAppointment {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &CreateAppointment{
		repo:     repo,
		cache:    cache,
		audit:    dispatcher,
		notifier: notifier,
		booking:  booking,
		log:      log,
		now:      func() time.Time { return timezone.NowIn(booking.Timezone) },
	}
}

// SetClock replaces the shop clock used for the booking window.
func (uc *CreateAppointment) SetClock(now func() time.Time) {
	uc.now = now
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books the slot. There is no availability pre-check: the
// unique_appointment_active index decides, and a conflict surfaces as slot_taken.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	in.normalize()
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Public flow is limited to the catalog and window
	// --------------------------------------------------
	if in.Channel == ChannelPublic {
		if !uc.booking.HasSlot(in.Time) {
			return nil, httperr.ErrBusiness("invalid_slot")
		}
		if !domain.InWindow(in.Date, uc.now(), uc.booking.WindowDays) {
			return nil, httperr.ErrBusiness("date_out_of_window")
		}
	}

	// --------------------------------------------------
	// 3. Service offered by the barber, with its price
	// --------------------------------------------------
	bs, err := uc.repo.GetActiveBarberService(ctx, in.BarberID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Insert
	// --------------------------------------------------
	ap := &models.Appointment{
		BarberID:      in.BarberID,
		ServiceID:     in.ServiceID,
		Date:          in.Date,
		Time:          in.Time,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: string(domain.PaymentPending),
		Price:         bs.EffectivePrice(),
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			metrics.IncSlotConflict()
			invalidate(ctx, uc.cache, uc.log, in.BarberID, in.Date)
		}
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.log, ap.BarberID, ap.Date)

	// --------------------------------------------------
	// 5. Side effects
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.Actor,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"channel": in.Channel,
			"date":    ap.Date,
			"time":    ap.Time,
		},
	})
	metrics.IncAppointmentCreated(string(in.Channel))

	created, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	uc.notifier.AppointmentCreated(*created)

	return created, nil
}
