package cash

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/cash"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type Register struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	booking config.Booking
	now     func() time.Time
}

func NewRegister(repo domain.Repository, dispatcher *audit.Dispatcher, booking config.Booking) *Register {
	return &Register{
		repo:    repo,
		audit:   dispatcher,
		booking: booking,
		now:     func() time.Time { return timezone.NowIn(booking.Timezone) },
	}
}

func (uc *Register) today() string {
	return uc.now().Format(timezone.DateLayout)
}

// Create records a manual income or expense. Date defaults to today.
func (uc *Register) Create(ctx context.Context, actor *uuid.UUID, in domain.CreateInput) (*models.CashTransaction, error) {
	in.Concept = strings.TrimSpace(in.Concept)
	if in.Date == "" {
		in.Date = uc.today()
	}
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	tx := &models.CashTransaction{
		Amount:    in.Amount,
		Concept:   in.Concept,
		Method:    in.Method,
		Type:      in.Type,
		Date:      in.Date,
		CreatedBy: actor,
	}
	if err := uc.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actor,
		Action:   "cash_" + in.Type,
		Entity:   "cash_transaction",
		EntityID: &tx.ID,
		Metadata: map[string]any{"amount": in.Amount, "method": in.Method},
	})
	return tx, nil
}

func (uc *Register) List(ctx context.Context, from, to string) ([]models.CashTransaction, error) {
	from, to, err := uc.normalizeRange(from, to)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListRange(ctx, from, to)
}

func (uc *Register) Summary(ctx context.Context, from, to string) (domain.Summary, error) {
	from, to, err := uc.normalizeRange(from, to)
	if err != nil {
		return domain.Summary{}, err
	}
	txs, err := uc.repo.ListRange(ctx, from, to)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.ComputeSummary(from, to, txs), nil
}

func (uc *Register) QuickConcepts() config.CashConcepts {
	return uc.booking.CashConcepts
}

// normalizeRange defaults an empty range to today.
func (uc *Register) normalizeRange(from, to string) (string, string, error) {
	if from == "" && to == "" {
		today := uc.today()
		return today, today, nil
	}
	if (from != "" && !validators.IsDate(from)) || (to != "" && !validators.IsDate(to)) {
		return "", "", httperr.ErrBusiness("invalid_date")
	}
	if from != "" && to != "" && from > to {
		return "", "", httperr.ErrBusiness("invalid_range")
	}
	return from, to, nil
}
