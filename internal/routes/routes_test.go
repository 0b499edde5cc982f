package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/db/dbtest"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type app struct {
	router  *gin.Engine
	db      *gorm.DB
	barber  models.Barber
	service models.Service
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := dbtest.New(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	booking, err := config.LoadBooking("")
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		SessionTTL:         time.Hour,
		BookedCacheTTL:     time.Minute,
		PublicBookingRPS:   100,
		PublicBookingBurst: 100,
		Booking:            booking,
	}

	_, err = db.SeedOwner(gdb, "owner@shop.com", "secret123", "Dueño")
	require.NoError(t, err)

	dispatcher := audit.NewDispatcher(audit.New(gdb), zerolog.Nop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = dispatcher.Close(ctx)
	})

	now, err := timezone.ParseDate(booking.Timezone, "2025-05-30")
	require.NoError(t, err)
	now = now.Add(12 * time.Hour)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:     gdb,
		Redis:  rdb,
		Config: cfg,
		Log:    zerolog.Nop(),
		Audit:  dispatcher,
		Now:    func() time.Time { return now },
	})

	a := &app{
		router:  r,
		db:      gdb,
		barber:  models.Barber{Name: "B1", Active: true},
		service: models.Service{Name: "Corte", DurationMin: 30, Price: 1000, Active: true},
	}
	require.NoError(t, gdb.Create(&a.barber).Error)
	require.NoError(t, gdb.Create(&a.service).Error)

	custom := 1500.0
	require.NoError(t, gdb.Create(&models.BarberService{
		BarberID:    a.barber.ID,
		ServiceID:   a.service.ID,
		CustomPrice: &custom,
		Active:      true,
	}).Error)
	return a
}

func (a *app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) signIn(t *testing.T) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/signin", "", gin.H{
		"email":    "owner@shop.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token
}

func (a *app) booking(hm string) gin.H {
	return gin.H{
		"barber_id":      a.barber.ID,
		"service_id":     a.service.ID,
		"date":           "2025-06-01",
		"time":           hm,
		"customer_name":  "Ana",
		"customer_phone": "1122334455",
	}
}

type slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

func (a *app) slotAvailable(t *testing.T, hm string) bool {
	t.Helper()

	w := a.do(t, http.MethodGet, fmt.Sprintf("/api/public/barbers/%d/slots?date=2025-06-01", a.barber.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data []slot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	for _, s := range res.Data {
		if s.Time == hm {
			return s.Available
		}
	}
	t.Fatalf("slot %s not offered", hm)
	return false
}

// ======================================================
// SCENARIOS
// ======================================================

func TestBookingConflict(t *testing.T) {
	a := newApp(t)

	require.True(t, a.slotAvailable(t, "10:00"))

	w := a.do(t, http.MethodPost, "/api/public/appointments", "", a.booking("10:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, "pending", created.PaymentStatus)
	assert.Equal(t, 1500.0, created.Price)

	w = a.do(t, http.MethodPost, "/api/public/appointments", "", a.booking("10:00"))
	require.Equal(t, http.StatusConflict, w.Code)

	var conflict struct {
		Code    string `json:"error_code"`
		Details struct {
			BookedTimes []string `json:"booked_times"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.Equal(t, "slot_taken", conflict.Code)
	assert.Equal(t, []string{"10:00"}, conflict.Details.BookedTimes)

	assert.False(t, a.slotAvailable(t, "10:00"))

	var count int64
	a.db.Model(&models.Appointment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBookingConflict_PaddedDateReportsBookedTimes(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t)

	w := a.do(t, http.MethodPost, "/api/public/appointments", "", a.booking("10:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, path := range []string{"/api/public/appointments", "/api/appointments"} {
		in := a.booking("10:00")
		in["date"] = " 2025-06-01 "
		w = a.do(t, http.MethodPost, path, token, in)
		require.Equal(t, http.StatusConflict, w.Code, path)

		var conflict struct {
			Details struct {
				BookedTimes []string `json:"booked_times"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
		assert.Equal(t, []string{"10:00"}, conflict.Details.BookedTimes, path)
	}
}

func TestPublicBooking_RejectsOutsideCatalog(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodPost, "/api/public/appointments", "", a.booking("12:00"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_slot")

	in := a.booking("10:00")
	in["date"] = "2025-07-01"
	w = a.do(t, http.MethodPost, "/api/public/appointments", "", in)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date_out_of_window")

	in = a.booking("10:00")
	delete(in, "customer_phone")
	w = a.do(t, http.MethodPost, "/api/public/appointments", "", in)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestAdminWorkflow(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/appointments", "", nil).Code)

	token := a.signIn(t)

	w := a.do(t, http.MethodPost, "/api/public/appointments", "", a.booking("10:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))

	cancelPath := fmt.Sprintf("/api/appointments/%d/cancel", ap.ID)

	w = a.do(t, http.MethodPatch, cancelPath, token, gin.H{"reason": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cancel_reason_required")

	w = a.do(t, http.MethodPatch, cancelPath, token, gin.H{"reason": "Cliente avisó"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)

	// the cancelled booking frees the slot
	assert.True(t, a.slotAvailable(t, "10:00"))

	w = a.do(t, http.MethodPatch, cancelPath, token, gin.H{"reason": "otra vez"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")

	// rebook and complete with a payment method
	w = a.do(t, http.MethodPost, "/api/public/appointments", "", a.booking("10:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))

	w = a.do(t, http.MethodPatch, fmt.Sprintf("/api/appointments/%d/complete", ap.ID), token, gin.H{"payment_method": "cash"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var done models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &done))
	assert.Equal(t, "completed", done.Status)
	assert.Equal(t, "paid", done.PaymentStatus)
	require.NotNil(t, done.PaymentMethod)
	assert.Equal(t, "cash", *done.PaymentMethod)

	w = a.do(t, http.MethodGet, "/api/payments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Totals struct {
			Total float64 `json:"total"`
			Cash  float64 `json:"cash"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, 1500.0, history.Totals.Total)
	assert.Equal(t, 1500.0, history.Totals.Cash)

	w = a.do(t, http.MethodGet, "/api/payments/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Historial_Pagos_")

	w = a.do(t, http.MethodGet, "/api/payments/export?method=transfer", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no_data")

	w = a.do(t, http.MethodPost, fmt.Sprintf("/api/appointments/%d/payment-link", ap.ID), token, nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestAdminBooking_SkipsWindow(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t)

	in := a.booking("12:00")
	in["date"] = "2025-08-15"
	w := a.do(t, http.MethodPost, "/api/appointments", token, in)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestSignOut_RevokesToken(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t)

	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/me", token, nil).Code)
	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodPost, "/api/auth/signout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/me", token, nil).Code)
}

func TestCatalog_SoftDeleteHidesBarber(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t)

	w := a.do(t, http.MethodDelete, fmt.Sprintf("/api/barbers/%d", a.barber.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodGet, "/api/public/barbers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestHistory_SurvivesCatalogDeactivation(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t)

	w := a.do(t, http.MethodPost, "/api/public/appointments", "", a.booking("10:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))

	w = a.do(t, http.MethodPatch, fmt.Sprintf("/api/appointments/%d/complete", ap.ID), token, gin.H{"payment_method": "cash"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, fmt.Sprintf("/api/barbers/%d", a.barber.ID), token, nil).Code)
	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, fmt.Sprintf("/api/services/%d", a.service.ID), token, nil).Code)

	w = a.do(t, http.MethodGet, fmt.Sprintf("/api/appointments/%d", ap.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "B1", got.Barber.Name)
	assert.Equal(t, "Corte", got.Service.Name)

	w = a.do(t, http.MethodGet, "/api/payments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Payments []models.Appointment `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Payments, 1)
	assert.Equal(t, "B1", history.Payments[0].Barber.Name)
	assert.Equal(t, "Corte", history.Payments[0].Service.Name)
}
