package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/export"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PaymentHandler serves the history of paid appointments.
type PaymentHandler struct {
	queries *ucAppointment.Queries
	tz      string
}

func NewPaymentHandler(queries *ucAppointment.Queries, tz string) *PaymentHandler {
	return &PaymentHandler{queries: queries, tz: tz}
}

func paymentFilter(c *gin.Context) domain.PaymentFilter {
	return domain.PaymentFilter{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Method: domain.PaymentMethod(c.Query("method")),
	}
}

func (h *PaymentHandler) History(c *gin.Context) {
	history, err := h.queries.PaymentHistory(c.Request.Context(), paymentFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, history)
}

func (h *PaymentHandler) Export(c *gin.Context) {
	history, err := h.queries.PaymentHistory(c.Request.Context(), paymentFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(history.Payments) == 0 {
		httperr.NotFound(c, "no_data", "No hay pagos para exportar.")
		return
	}

	var buf bytes.Buffer
	if err := export.WritePayments(&buf, history.Payments); err != nil {
		respondError(c, fmt.Errorf("export payments: %w", err))
		return
	}

	filename := export.PaymentsFilename(timezone.Today(h.tz))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
