// Package payments creates MercadoPago checkout links for transfer payments.
package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type PreferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type MercadoPago struct {
	client   PreferenceCreator
	currency string
}

func NewMercadoPago(accessToken, currency string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg), currency: currency}, nil
}

func NewMercadoPagoWithClient(client PreferenceCreator, currency string) *MercadoPago {
	return &MercadoPago{client: client, currency: currency}
}

// CreateLink creates a one-item preference referencing the appointment id.
func (m *MercadoPago) CreateLink(ctx context.Context, ap models.Appointment) (string, error) {
	title := ap.Service.Name
	if title == "" {
		title = "Servicio de barbería"
	}
	if ap.Barber.Name != "" {
		title += " con " + ap.Barber.Name
	}

	res, err := m.client.Create(ctx, preference.Request{
		ExternalReference: fmt.Sprintf("appointment-%d", ap.ID),
		Items: []preference.ItemRequest{{
			ID:         fmt.Sprintf("%d", ap.ServiceID),
			Title:      title,
			Quantity:   1,
			UnitPrice:  ap.Price,
			CurrencyID: m.currency,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}
	return res.InitPoint, nil
}
