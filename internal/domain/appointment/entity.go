package appointment

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const MaxCancelReasonLen = 200

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

// Complete closes the appointment. A nil method leaves the payment pending.
func Complete(ap *models.Appointment, method *PaymentMethod, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	if method != nil && !method.Valid() {
		return httperr.ErrBusiness("invalid_payment_method")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now

	if method != nil {
		m := string(*method)
		ap.PaymentStatus = string(PaymentPaid)
		ap.PaymentMethod = &m
	} else {
		ap.PaymentStatus = string(PaymentPending)
		ap.PaymentMethod = nil
	}
	return nil
}

func RegisterPayment(ap *models.Appointment, method PaymentMethod) error {
	if err := CanRegisterPayment(Status(ap.Status), PaymentStatus(ap.PaymentStatus)); err != nil {
		return err
	}
	if !method.Valid() {
		return httperr.ErrBusiness("invalid_payment_method")
	}

	m := string(method)
	ap.PaymentStatus = string(PaymentPaid)
	ap.PaymentMethod = &m
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	reason, err := NormalizeCancelReason(reason)
	if err != nil {
		return err
	}
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.Notes = reason
	ap.CancelledAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// NormalizeCancelReason trims the reason and enforces 1..200 characters.
func NormalizeCancelReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", httperr.ErrBusiness("cancel_reason_required")
	}
	if utf8.RuneCountInString(reason) > MaxCancelReasonLen {
		return "", httperr.ErrBusiness("cancel_reason_too_long")
	}
	return reason, nil
}
