package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type fixture struct {
	barber  models.Barber
	service models.Service
}

func seedCatalog(t *testing.T, gdb *gorm.DB) fixture {
	t.Helper()

	f := fixture{
		barber:  models.Barber{Name: "Tomás", Emoji: "💈", Active: true},
		service: models.Service{Name: "Corte", DurationMin: 30, Price: 5000, Active: true},
	}
	require.NoError(t, gdb.Create(&f.barber).Error)
	require.NoError(t, gdb.Create(&f.service).Error)
	require.NoError(t, gdb.Create(&models.BarberService{
		BarberID:  f.barber.ID,
		ServiceID: f.service.ID,
		Active:    true,
	}).Error)
	return f
}

func newAppointment(f fixture, date, hm, status string) *models.Appointment {
	return &models.Appointment{
		BarberID:      f.barber.ID,
		ServiceID:     f.service.ID,
		Date:          date,
		Time:          hm,
		CustomerName:  "Juan",
		CustomerPhone: "1122334455",
		Status:        status,
		PaymentStatus: "pending",
		Price:         f.service.Price,
	}
}
