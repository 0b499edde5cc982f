package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type Queries struct {
	repo domain.Repository
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{repo: repo}
}

func (uc *Queries) List(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	if f.Date != "" && !validators.IsDate(f.Date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	return uc.repo.ListAppointments(ctx, f)
}

func (uc *Queries) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}

// Stats reduces every appointment in [from, to] in memory.
func (uc *Queries) Stats(ctx context.Context, from, to string) (domain.Stats, error) {
	if err := checkRange(from, to); err != nil {
		return domain.Stats{}, err
	}
	aps, err := uc.repo.ListAppointmentsInRange(ctx, from, to)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(aps), nil
}

type PaymentHistory struct {
	Payments []models.Appointment `json:"payments"`
	Totals   domain.PaymentTotals `json:"totals"`
}

func (uc *Queries) PaymentHistory(ctx context.Context, f domain.PaymentFilter) (*PaymentHistory, error) {
	if err := checkRange(f.From, f.To); err != nil {
		return nil, err
	}
	if f.Method != "" && !f.Method.Valid() {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	aps, err := uc.repo.ListPaidAppointments(ctx, f)
	if err != nil {
		return nil, err
	}
	if aps == nil {
		aps = []models.Appointment{}
	}
	return &PaymentHistory{
		Payments: aps,
		Totals:   domain.ComputePaymentTotals(aps),
	}, nil
}

func checkRange(from, to string) error {
	if (from != "" && !validators.IsDate(from)) || (to != "" && !validators.IsDate(to)) {
		return httperr.ErrBusiness("invalid_date")
	}
	if from != "" && to != "" && from > to {
		return httperr.ErrBusiness("invalid_range")
	}
	return nil
}
