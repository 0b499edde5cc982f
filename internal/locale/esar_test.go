package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDates(t *testing.T) {
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "domingo, 1 de junio de 2025", LongDate(d))
	assert.Equal(t, "1/6/2025", ShortDate(d))
	assert.Equal(t, "1/6/2025", DateString("2025-06-01", ShortDate))
	assert.Equal(t, "mañana", DateString("mañana", ShortDate))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$12.345", Money(12345))
	assert.Equal(t, "$1.234.567,50", Money(1234567.5))
	assert.Equal(t, "$0", Money(0))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Efectivo", PaymentMethod("cash"))
	assert.Equal(t, "Transferencia", PaymentMethod("transfer"))
	assert.Equal(t, "Pagado", PaymentStatus("paid"))
}
