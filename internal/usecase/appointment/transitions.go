package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// Transitions groups the admin status and payment changes.
type Transitions struct {
	t transitioner
}

func NewTransitions(
	repo domain.Repository,
	cache domain.BookedTimesCache,
	dispatcher *audit.Dispatcher,
	log zerolog.Logger,
	tz string,
) *Transitions {
	return &Transitions{t: newTransitioner(repo, cache, dispatcher, log, tz)}
}

func (uc *Transitions) Confirm(ctx context.Context, actor *uuid.UUID, id uint) (*models.Appointment, error) {
	return uc.t.apply(ctx, actor, id, "appointment_confirmed", nil,
		func(ap *models.Appointment, _ time.Time) error {
			return domain.Confirm(ap)
		})
}

// Complete closes the appointment; a nil method leaves payment pending.
func (uc *Transitions) Complete(
	ctx context.Context,
	actor *uuid.UUID,
	id uint,
	method *domain.PaymentMethod,
) (*models.Appointment, error) {

	var meta any
	if method != nil {
		meta = map[string]string{"payment_method": string(*method)}
	}
	return uc.t.apply(ctx, actor, id, "appointment_completed", meta,
		func(ap *models.Appointment, now time.Time) error {
			return domain.Complete(ap, method, now)
		})
}

func (uc *Transitions) RegisterPayment(
	ctx context.Context,
	actor *uuid.UUID,
	id uint,
	method domain.PaymentMethod,
) (*models.Appointment, error) {

	return uc.t.apply(ctx, actor, id, "payment_registered",
		map[string]string{"payment_method": string(method)},
		func(ap *models.Appointment, _ time.Time) error {
			return domain.RegisterPayment(ap, method)
		})
}

func (uc *Transitions) Cancel(
	ctx context.Context,
	actor *uuid.UUID,
	id uint,
	reason string,
) (*models.Appointment, error) {

	reason, err := domain.NormalizeCancelReason(reason)
	if err != nil {
		return nil, err
	}
	return uc.t.apply(ctx, actor, id, "appointment_cancelled",
		map[string]string{"reason": reason},
		func(ap *models.Appointment, now time.Time) error {
			return domain.Cancel(ap, reason, now)
		})
}

func (uc *Transitions) MarkNoShow(ctx context.Context, actor *uuid.UUID, id uint) (*models.Appointment, error) {
	return uc.t.apply(ctx, actor, id, "appointment_no_show", nil,
		func(ap *models.Appointment, _ time.Time) error {
			return domain.MarkNoShow(ap)
		})
}
