package appointment

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestAvailability_CachesBookedTimes(t *testing.T) {
	repo := new(mockRepo)
	cache := newMemCache()
	ctx := context.Background()

	repo.On("BookedTimes", ctx, uint(1), "2025-06-01").Return([]string{"10:00"}, nil).Once()

	uc := NewGetAvailability(repo, cache, config.DefaultBooking(), zerolog.Nop())

	slots, err := uc.Slots(ctx, 1, "2025-06-01")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, domain.Slot{Time: "09:00", Available: true}, slots[0])
	assert.Equal(t, domain.Slot{Time: "10:00", Available: false}, slots[2])

	times, err := uc.BookedTimes(ctx, 1, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)
	repo.AssertNumberOfCalls(t, "BookedTimes", 1)

	_, err = uc.BookedTimes(ctx, 1, "junio")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_barber"))
}

func TestAvailability_BookingDuringReadIsNotCachedAway(t *testing.T) {
	repo := new(mockRepo)
	cache := newMemCache()
	ctx := context.Background()

	// a booking commits and invalidates while the first read is in flight
	repo.On("BookedTimes", ctx, uint(1), "2025-06-01").
		Run(func(mock.Arguments) {
			require.NoError(t, cache.Invalidate(ctx, 1, "2025-06-01"))
		}).
		Return([]string{}, nil).Once()
	repo.On("BookedTimes", ctx, uint(1), "2025-06-01").Return([]string{"10:00"}, nil).Once()

	uc := NewGetAvailability(repo, cache, config.DefaultBooking(), zerolog.Nop())

	times, err := uc.BookedTimes(ctx, 1, "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, times)

	times, err = uc.BookedTimes(ctx, 1, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)
	repo.AssertNumberOfCalls(t, "BookedTimes", 2)
}

func TestQueries_Stats(t *testing.T) {
	repo := new(mockRepo)
	ctx := context.Background()

	repo.On("ListAppointmentsInRange", ctx, "2025-06-01", "2025-06-30").Return([]models.Appointment{
		{Status: "completed", PaymentStatus: "paid", Price: 5000},
		{Status: "confirmed", Price: 5000},
	}, nil)

	s, err := NewQueries(repo).Stats(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 5000.0, s.Revenue)
	assert.Equal(t, 1, s.Pending)

	_, err = NewQueries(repo).Stats(ctx, "2025-06-30", "2025-06-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))
}

func TestQueries_ListRejectsUnknownStatus(t *testing.T) {
	_, err := NewQueries(new(mockRepo)).List(context.Background(), domain.ListFilter{Status: "done"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestQueries_PaymentHistoryTotals(t *testing.T) {
	repo := new(mockRepo)
	ctx := context.Background()
	cash := "cash"

	f := domain.PaymentFilter{Method: domain.MethodCash}
	repo.On("ListPaidAppointments", ctx, f).Return([]models.Appointment{
		{Price: 5000, PaymentMethod: &cash},
		{Price: 3000, PaymentMethod: &cash},
	}, nil)

	h, err := NewQueries(repo).PaymentHistory(ctx, f)
	require.NoError(t, err)
	assert.Len(t, h.Payments, 2)
	assert.Equal(t, 8000.0, h.Totals.Total)
	assert.Equal(t, 8000.0, h.Totals.Cash)
}
