package cash

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/db/dbtest"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/cash"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

func newRegister(t *testing.T) *Register {
	t.Helper()
	uc := NewRegister(repository.NewCashGormRepository(dbtest.New(t)), nil, config.DefaultBooking())
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return uc
}

func TestRegister_CreateAndSummary(t *testing.T) {
	uc := newRegister(t)
	ctx := context.Background()
	actor := uuid.New()

	tx, err := uc.Create(ctx, &actor, domain.CreateInput{
		Amount: 2000, Concept: " Servicio extra ", Method: "cash", Type: "income",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", tx.Date)
	assert.Equal(t, "Servicio extra", tx.Concept)

	_, err = uc.Create(ctx, &actor, domain.CreateInput{
		Amount: 500, Concept: "Insumos", Method: "transfer", Type: "expense",
	})
	require.NoError(t, err)

	s, err := uc.Summary(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, s.TotalIncome)
	assert.Equal(t, 500.0, s.ExpenseTransfer)
	assert.Equal(t, 1500.0, s.Net)

	list, err := uc.List(ctx, "2025-06-01", "2025-06-01")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRegister_CreateValidation(t *testing.T) {
	uc := newRegister(t)

	_, err := uc.Create(context.Background(), nil, domain.CreateInput{
		Amount: 0, Concept: "   ", Method: "card", Type: "gift",
	})
	var verr *validators.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")
	assert.Contains(t, verr.Fields, "concept")
	assert.Contains(t, verr.Fields, "method")
	assert.Contains(t, verr.Fields, "type")
}

func TestRegister_RangeChecks(t *testing.T) {
	uc := newRegister(t)

	_, err := uc.List(context.Background(), "2025-06-02", "2025-06-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))

	_, err = uc.Summary(context.Background(), "ayer", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	assert.NotEmpty(t, uc.QuickConcepts().Income)
}
