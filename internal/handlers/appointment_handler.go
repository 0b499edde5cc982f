package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	queries       *ucAppointment.Queries
	create        *ucAppointment.CreateAppointment
	transitions   *ucAppointment.Transitions
	availability  *ucAppointment.GetAvailability
	paymentLink   *ucAppointment.PaymentLink
	cancelReasons []string
}

func NewAppointmentHandler(
	queries *ucAppointment.Queries,
	create *ucAppointment.CreateAppointment,
	transitions *ucAppointment.Transitions,
	availability *ucAppointment.GetAvailability,
	paymentLink *ucAppointment.PaymentLink,
	cancelReasons []string,
) *AppointmentHandler {
	return &AppointmentHandler{
		queries:       queries,
		create:        create,
		transitions:   transitions,
		availability:  availability,
		paymentLink:   paymentLink,
		cancelReasons: cancelReasons,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CompleteAppointmentRequest struct {
	PaymentMethod *string `json:"payment_method"`
}

type RegisterPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	f := domain.ListFilter{
		Date:   c.Query("date"),
		Status: domain.Status(c.Query("status")),
	}

	if v := c.Query("barber_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber", "Peluquero inválido.")
			return
		}
		f.BarberID = uint(id)
	}
	if v := c.Query("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}

	aps, err := h.queries.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.queries.Stats(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *AppointmentHandler) CancelReasons(c *gin.Context) {
	httpresp.List(c, h.cancelReasons)
}

// ======================================================
// CREATE (manual booking by staff)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var in ucAppointment.CreateAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}
	in.Channel = ucAppointment.ChannelAdmin
	in.Actor = actorID(c)

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			writeSlotTaken(c, h.availability, in.BarberID, in.Date)
			return
		}
		respondError(c, err)
		return
	}
	httpresp.Created(c, ap)
}

// ======================================================
// STATUS WORKFLOW
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.transitions.Confirm(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	// the body is optional: completing without a method leaves payment pending
	var req CompleteAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
	}

	var method *domain.PaymentMethod
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		m := domain.PaymentMethod(*req.PaymentMethod)
		method = &m
	}

	ap, err := h.transitions.Complete(c.Request.Context(), actorID(c), id, method)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) RegisterPayment(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ap, err := h.transitions.RegisterPayment(
		c.Request.Context(),
		actorID(c),
		id,
		domain.PaymentMethod(req.PaymentMethod),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ap, err := h.transitions.Cancel(c.Request.Context(), actorID(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.transitions.MarkNoShow(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// PAYMENT LINK
// ======================================================

func (h *AppointmentHandler) PaymentLink(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	url, err := h.paymentLink.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"url": url})
}
