package appointment

import "github.com/BruksfildServices01/barbershop-booking/internal/models"

type Stats struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	Pending         int     `json:"pending"`
	Cancelled       int     `json:"cancelled"`
	NoShow          int     `json:"no_show"`
	Revenue         float64 `json:"revenue"`
	PendingPayments float64 `json:"pending_payments"`
}

// ComputeStats counts appointments per status. Pending covers both pending
// and confirmed. Revenue sums completed and paid prices, PendingPayments
// completed and unpaid ones.
func ComputeStats(aps []models.Appointment) Stats {
	var s Stats
	s.Total = len(aps)

	for _, ap := range aps {
		switch Status(ap.Status) {
		case StatusCompleted:
			s.Completed++
			if PaymentStatus(ap.PaymentStatus) == PaymentPaid {
				s.Revenue += ap.Price
			} else {
				s.PendingPayments += ap.Price
			}
		case StatusPending, StatusConfirmed:
			s.Pending++
		case StatusCancelled:
			s.Cancelled++
		case StatusNoShow:
			s.NoShow++
		}
	}
	return s
}

type PaymentTotals struct {
	Total    float64 `json:"total"`
	Cash     float64 `json:"cash"`
	Transfer float64 `json:"transfer"`
	Count    int     `json:"count"`
}

func ComputePaymentTotals(aps []models.Appointment) PaymentTotals {
	var t PaymentTotals
	for _, ap := range aps {
		t.Total += ap.Price
		t.Count++
		if ap.PaymentMethod == nil {
			continue
		}
		switch PaymentMethod(*ap.PaymentMethod) {
		case MethodCash:
			t.Cash += ap.Price
		case MethodTransfer:
			t.Transfer += ap.Price
		}
	}
	return t
}
