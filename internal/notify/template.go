package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/locale"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type appointmentView struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	BarberName    string
	ServiceName   string
	Price         string
	Duration      int
	Date          string
	Time          string
	CreatedAt     string
}

func newAppointmentView(ap models.Appointment, loc *time.Location) appointmentView {
	email := ap.CustomerEmail
	if email == "" {
		email = "-"
	}
	return appointmentView{
		CustomerName:  ap.CustomerName,
		CustomerPhone: ap.CustomerPhone,
		CustomerEmail: email,
		BarberName:    ap.Barber.Name,
		ServiceName:   ap.Service.Name,
		Price:         locale.Money(ap.Price),
		Duration:      ap.Service.DurationMin,
		Date:          locale.DateString(ap.Date, locale.LongDate),
		Time:          ap.Time,
		CreatedAt:     ap.CreatedAt.In(loc).Format("2/1/2006, 15:04:05"),
	}
}

var htmlTmpl = template.Must(template.New("appointment").Parse(`<h2>Nuevo turno reservado</h2>
<table>
<tr><td><b>Cliente</b></td><td>{{.CustomerName}}</td></tr>
<tr><td><b>Teléfono</b></td><td>{{.CustomerPhone}}</td></tr>
<tr><td><b>Email</b></td><td>{{.CustomerEmail}}</td></tr>
<tr><td><b>Peluquero</b></td><td>{{.BarberName}}</td></tr>
<tr><td><b>Servicio</b></td><td>{{.ServiceName}} ({{.Duration}} min)</td></tr>
<tr><td><b>Precio</b></td><td>{{.Price}}</td></tr>
<tr><td><b>Fecha</b></td><td>{{.Date}}</td></tr>
<tr><td><b>Hora</b></td><td>{{.Time}}</td></tr>
</table>
<p><small>Reservado el {{.CreatedAt}}</small></p>
`))

func renderAppointment(v appointmentView) (string, string, error) {
	var html bytes.Buffer
	if err := htmlTmpl.Execute(&html, v); err != nil {
		return "", "", fmt.Errorf("render notification: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Nuevo turno reservado\n\n")
	fmt.Fprintf(&text, "Cliente: %s\nTeléfono: %s\nEmail: %s\n", v.CustomerName, v.CustomerPhone, v.CustomerEmail)
	fmt.Fprintf(&text, "Peluquero: %s\nServicio: %s (%d min)\nPrecio: %s\n", v.BarberName, v.ServiceName, v.Duration, v.Price)
	fmt.Fprintf(&text, "Fecha: %s\nHora: %s\n\nReservado el %s\n", v.Date, v.Time, v.CreatedAt)

	return html.String(), text.String(), nil
}
