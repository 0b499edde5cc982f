package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// LinkCreator creates a hosted checkout for an appointment and returns its URL.
type LinkCreator interface {
	CreateLink(ctx context.Context, ap models.Appointment) (string, error)
}

type PaymentLink struct {
	repo  domain.Repository
	links LinkCreator
}

func NewPaymentLink(repo domain.Repository, links LinkCreator) *PaymentLink {
	return &PaymentLink{repo: repo, links: links}
}

func (uc *PaymentLink) Enabled() bool {
	return uc.links != nil
}

// Execute returns a checkout URL for a completed appointment that is still unpaid.
func (uc *PaymentLink) Execute(ctx context.Context, id uint) (string, error) {
	if !uc.Enabled() {
		return "", httperr.ErrBusiness("payments_disabled")
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return "", err
	}
	if err := domain.CanRegisterPayment(domain.Status(ap.Status), domain.PaymentStatus(ap.PaymentStatus)); err != nil {
		return "", err
	}

	return uc.links.CreateLink(ctx, *ap)
}
