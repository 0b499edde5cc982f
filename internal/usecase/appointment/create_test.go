package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

func fixedNow() time.Time {
	return time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)
}

func newCreate(repo *mockRepo, cache *memCache, n Notifier) *CreateAppointment {
	uc := NewCreateAppointment(repo, cache, nil, n, config.DefaultBooking(), zerolog.Nop())
	uc.now = fixedNow
	return uc
}

func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		BarberID:      1,
		ServiceID:     2,
		Date:          "2025-06-01",
		Time:          "10:00:00",
		CustomerName:  " Juan ",
		CustomerPhone: "1122334455",
		CustomerEmail: "Juan@Mail.com",
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	repo := new(mockRepo)
	cache := newMemCache()
	notifier := &recordingNotifier{}
	ctx := context.Background()

	custom := 4500.0
	repo.On("GetActiveBarberService", ctx, uint(1), uint(2)).
		Return(&models.BarberService{CustomPrice: &custom, Service: models.Service{Price: 5000}}, nil)
	repo.On("CreateAppointment", ctx, mock.MatchedBy(func(ap *models.Appointment) bool {
		return ap.Status == "confirmed" &&
			ap.PaymentStatus == "pending" &&
			ap.Price == 4500 &&
			ap.Time == "10:00" &&
			ap.CustomerName == "Juan" &&
			ap.CustomerEmail == "juan@mail.com"
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Appointment).ID = 7 }).
		Return(nil)
	repo.On("GetAppointment", ctx, uint(7)).
		Return(&models.Appointment{ID: 7, BarberID: 1, Date: "2025-06-01", Time: "10:00"}, nil)

	ap, err := newCreate(repo, cache, notifier).Execute(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, uint(7), ap.ID)
	assert.Len(t, notifier.sent, 1)
	assert.Equal(t, []string{cacheKey(1, "2025-06-01")}, cache.invalidated)
	repo.AssertExpectations(t)
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	repo := new(mockRepo)
	cache := newMemCache()
	notifier := &recordingNotifier{}
	ctx := context.Background()

	repo.On("GetActiveBarberService", ctx, uint(1), uint(2)).
		Return(&models.BarberService{Service: models.Service{Price: 5000}}, nil)
	repo.On("CreateAppointment", ctx, mock.Anything).Return(httperr.ErrBusiness("slot_taken"))

	_, err := newCreate(repo, cache, notifier).Execute(ctx, validInput())
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	assert.Empty(t, notifier.sent)
	assert.Equal(t, []string{cacheKey(1, "2025-06-01")}, cache.invalidated, "conflict forces a fresh reload")
	repo.AssertNotCalled(t, "GetAppointment", mock.Anything, mock.Anything)
}

func TestCreateAppointment_PublicRules(t *testing.T) {
	repo := new(mockRepo)
	uc := newCreate(repo, newMemCache(), nil)
	ctx := context.Background()

	in := validInput()
	in.Time = "12:00"
	_, err := uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_slot"))

	in = validInput()
	in.Date = "2025-05-30"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "date_out_of_window"))

	in = validInput()
	in.Date = "2025-06-07"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "date_out_of_window"))

	repo.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
}

func TestCreateAppointment_AdminSkipsCatalogRules(t *testing.T) {
	repo := new(mockRepo)
	ctx := context.Background()

	repo.On("GetActiveBarberService", ctx, uint(1), uint(2)).
		Return(&models.BarberService{Service: models.Service{Price: 5000}}, nil)
	repo.On("CreateAppointment", ctx, mock.Anything).Return(nil)
	repo.On("GetAppointment", ctx, uint(0)).Return(&models.Appointment{}, nil)

	in := validInput()
	in.Date = "2025-07-20"
	in.Time = "12:10"
	in.Channel = ChannelAdmin

	_, err := newCreate(repo, newMemCache(), nil).Execute(ctx, in)
	require.NoError(t, err)
}

func TestCreateAppointment_ValidationErrors(t *testing.T) {
	uc := newCreate(new(mockRepo), newMemCache(), nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{CustomerEmail: "nope"})
	var verr *validators.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"barber_id", "service_id", "date", "time", "customer_name", "customer_phone", "customer_email"} {
		assert.Contains(t, verr.Fields, field)
	}
}
