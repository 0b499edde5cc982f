package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/barbershop-booking/internal/locale"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const paymentsSheet = "Historial de Pagos"

var paymentColumns = []struct {
	title string
	width float64
}{
	{"Fecha", 12},
	{"Hora", 8},
	{"Cliente", 20},
	{"Teléfono", 15},
	{"Peluquero", 15},
	{"Servicio", 20},
	{"Monto", 10},
	{"Método de Pago", 15},
	{"Estado", 10},
}

// PaymentsFilename is the download name for an export made on date.
func PaymentsFilename(date string) string {
	return fmt.Sprintf("Historial_Pagos_%s.xlsx", date)
}

// WritePayments renders paid appointments as an xlsx workbook into w.
func WritePayments(w io.Writer, payments []models.Appointment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", paymentsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, col := range paymentColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(paymentsSheet, cell, col.title); err != nil {
			return err
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(paymentsSheet, name, name, col.width); err != nil {
			return err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(paymentColumns), 1)
		_ = f.SetCellStyle(paymentsSheet, "A1", last, style)
	}

	for i, p := range payments {
		method := ""
		if p.PaymentMethod != nil {
			method = locale.PaymentMethod(*p.PaymentMethod)
		}
		row := []any{
			locale.DateString(p.Date, locale.ShortDate),
			p.Time,
			p.CustomerName,
			p.CustomerPhone,
			p.Barber.Name,
			p.Service.Name,
			p.Price,
			method,
			locale.PaymentStatus(p.PaymentStatus),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(paymentsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
