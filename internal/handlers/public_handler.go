package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the customer booking wizard. No auth.
type PublicHandler struct {
	catalog      catalog.Repository
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	catalogRepo catalog.Repository,
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		catalog:      catalogRepo,
		availability: availability,
		create:       create,
	}
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalog.ListActiveBarbers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *PublicHandler) ListBarberServices(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	services, err := h.catalog.ListBarberServices(c.Request.Context(), barberID)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, services)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) BookingDates(c *gin.Context) {
	httpresp.List(c, h.availability.BookingDates())
}

func (h *PublicHandler) Slots(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	slots, err := h.availability.Slots(c.Request.Context(), barberID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *PublicHandler) BookedTimes(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	times, err := h.availability.BookedTimes(c.Request.Context(), barberID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, times)
}

// ======================================================
// CREATE
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var in ucAppointment.CreateAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}
	in.Channel = ucAppointment.ChannelPublic

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

// writeSlotTaken answers a lost race with the current booked times so the
// client can go back to time selection without another request.
func writeSlotTaken(c *gin.Context, availability *ucAppointment.GetAvailability, barberID uint, date string) {
	info := businessErrors["slot_taken"]

	times, err := availability.BookedTimes(c.Request.Context(), barberID, strings.TrimSpace(date))
	if err != nil {
		_ = c.Error(err)
		times = nil
	}
	if times == nil {
		times = []string{}
	}

	httperr.WriteDetails(c, http.StatusConflict, "slot_taken", info.message, gin.H{
		"booked_times": times,
	})
}
