// Package locale formats dates, money and labels the way the shop shows
// them to Argentine customers and staff.
package locale

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

var weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// LongDate renders "domingo, 1 de junio de 2025".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// ShortDate renders "1/6/2025".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// DateString reformats a YYYY-MM-DD date with f, returning it unchanged
// when it does not parse.
func DateString(date string, f func(time.Time) string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return f(t)
}

// Money renders "$12.345" or "$12.345,50".
func Money(amount float64) string {
	if amount == math.Trunc(amount) {
		return printer.Sprintf("$%d", int64(amount))
	}
	return printer.Sprintf("$%.2f", amount)
}

func PaymentMethod(method string) string {
	switch method {
	case "cash":
		return "Efectivo"
	case "transfer":
		return "Transferencia"
	default:
		return method
	}
}

func PaymentStatus(status string) string {
	if status == "paid" {
		return "Pagado"
	}
	return "Pendiente"
}
