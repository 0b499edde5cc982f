// Package notify emails the shop admin about new bookings. Sending happens
// on a background worker so a slow or failing SMTP server never delays or
// fails a booking.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const queueSize = 100

type Dispatcher struct {
	sender  Sender
	to      string
	subject string
	loc     *time.Location
	log     zerolog.Logger
	queue   chan models.Appointment

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sender Sender, to, subject, tz string, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		to:      to,
		subject: subject,
		loc:     timezone.Location(tz),
		log:     log.With().Str("component", "notify").Logger(),
		queue:   make(chan models.Appointment, queueSize),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ap := range d.queue {
		d.send(ap)
	}
}

func (d *Dispatcher) send(ap models.Appointment) {
	html, text, err := renderAppointment(newAppointmentView(ap, d.loc))
	if err != nil {
		metrics.IncNotification("error")
		d.log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("render notification failed")
		return
	}

	if err := d.sender.Send(d.to, d.subject, html, text); err != nil {
		metrics.IncNotification("error")
		d.log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("send notification failed")
		return
	}

	metrics.IncNotification("sent")
	d.log.Debug().Uint("appointment_id", ap.ID).Msg("notification sent")
}

// AppointmentCreated queues the email; it drops it when the queue is full
// or the dispatcher is closed.
func (d *Dispatcher) AppointmentCreated(ap models.Appointment) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.IncNotification("dropped")
		d.log.Warn().Uint("appointment_id", ap.ID).Msg("notification dispatcher closed, dropping")
		return
	}
	select {
	case d.queue <- ap:
	default:
		metrics.IncNotification("dropped")
		d.log.Warn().Uint("appointment_id", ap.ID).Msg("notification queue full, dropping")
	}
}

// Close stops accepting notifications and waits for pending ones or ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
