package appointment

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type mockRepo struct {
	mock.Mock
}

var _ domain.Repository = (*mockRepo)(nil)

func (m *mockRepo) GetActiveBarberService(ctx context.Context, barberID, serviceID uint) (*models.BarberService, error) {
	args := m.Called(ctx, barberID, serviceID)
	bs, _ := args.Get(0).(*models.BarberService)
	return bs, args.Error(1)
}

func (m *mockRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *mockRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (m *mockRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *mockRepo) BookedTimes(ctx context.Context, barberID uint, date string) ([]string, error) {
	args := m.Called(ctx, barberID, date)
	times, _ := args.Get(0).([]string)
	return times, args.Error(1)
}

func (m *mockRepo) ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, f)
	aps, _ := args.Get(0).([]models.Appointment)
	return aps, args.Error(1)
}

func (m *mockRepo) ListAppointmentsInRange(ctx context.Context, from, to string) ([]models.Appointment, error) {
	args := m.Called(ctx, from, to)
	aps, _ := args.Get(0).([]models.Appointment)
	return aps, args.Error(1)
}

func (m *mockRepo) ListPaidAppointments(ctx context.Context, f domain.PaymentFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, f)
	aps, _ := args.Get(0).([]models.Appointment)
	return aps, args.Error(1)
}

// memCache is an in-process BookedTimesCache.
type memCache struct {
	mu          sync.Mutex
	data        map[string][]string
	gen         map[string]int64
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]string{}, gen: map[string]int64{}}
}

func cacheKey(barberID uint, date string) string {
	return fmt.Sprintf("%d|%s", barberID, date)
}

func (c *memCache) Get(_ context.Context, barberID uint, date string) (domain.CachedTimes, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := cacheKey(barberID, date)
	v, ok := c.data[k]
	return domain.CachedTimes{Times: v, Hit: ok, Generation: c.gen[k]}, nil
}

func (c *memCache) Set(_ context.Context, barberID uint, date string, generation int64, times []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := cacheKey(barberID, date)
	if c.gen[k] != generation {
		return nil
	}
	c.data[k] = times
	return nil
}

func (c *memCache) Invalidate(_ context.Context, barberID uint, date string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := cacheKey(barberID, date)
	delete(c.data, k)
	c.gen[k]++
	c.invalidated = append(c.invalidated, k)
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Appointment
}

func (n *recordingNotifier) AppointmentCreated(ap models.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, ap)
}
