package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// CatalogHandler manages barbers, services and their assignments.
type CatalogHandler struct {
	repo    catalog.Repository
	avatars *storage.AvatarStore
	audit   *audit.Dispatcher
}

// NewCatalogHandler builds the handler. avatars may be nil when object
// storage is not configured; uploads then answer 501.
func NewCatalogHandler(repo catalog.Repository, avatars *storage.AvatarStore, dispatcher *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{repo: repo, avatars: avatars, audit: dispatcher}
}

type AssignServiceRequest struct {
	ServiceID   uint     `json:"service_id" binding:"required"`
	CustomPrice *float64 `json:"custom_price"`
}

type CustomPriceRequest struct {
	CustomPrice *float64 `json:"custom_price"`
}

func (h *CatalogHandler) record(c *gin.Context, action, entity string, id uint, meta any) {
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   action,
		Entity:   entity,
		EntityID: &id,
		Metadata: meta,
	})
}

// ======================================================
// BARBERS
// ======================================================

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.repo.ListBarbersWithServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	var in catalog.CreateBarberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}
	if err := validators.Struct(in); err != nil {
		respondError(c, err)
		return
	}

	b, err := h.repo.CreateBarber(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "barber_created", "barber", b.ID, gin.H{"name": b.Name})
	httpresp.Created(c, b)
}

func (h *CatalogHandler) UpdateBarber(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var in catalog.UpdateBarberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}
	if err := validators.Struct(in); err != nil {
		respondError(c, err)
		return
	}

	b, err := h.repo.UpdateBarber(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "barber_updated", "barber", b.ID, in)
	httpresp.OK(c, b)
}

func (h *CatalogHandler) DeactivateBarber(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeactivateBarber(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "barber_deactivated", "barber", id, nil)
	c.Status(http.StatusNoContent)
}

// UploadAvatar takes a multipart "file", stores it as WebP and saves its URL.
func (h *CatalogHandler) UploadAvatar(c *gin.Context) {
	if h.avatars == nil {
		httperr.Write(c, http.StatusNotImplemented, "storage_disabled", "El almacenamiento de imágenes no está configurado.")
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.repo.GetBarber(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "Adjuntá una imagen.")
		return
	}
	if fh.Size > storage.MaxUploadBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "La imagen no puede superar los 5 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	url, err := h.avatars.Upload(c.Request.Context(), id, f)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			httperr.BadRequest(c, "invalid_image", "El archivo no es una imagen válida.")
			return
		}
		respondError(c, err)
		return
	}

	b, err := h.repo.SetBarberAvatar(c.Request.Context(), id, url)
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "barber_avatar_updated", "barber", id, gin.H{"avatar_url": url})
	httpresp.OK(c, b)
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	onlyActive := true
	if v := c.Query("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c)
			return
		}
		onlyActive = b
	}

	services, err := h.repo.ListServices(c.Request.Context(), onlyActive)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var in catalog.CreateServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}
	if err := validators.Struct(in); err != nil {
		respondError(c, err)
		return
	}

	s, err := h.repo.CreateService(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "service_created", "service", s.ID, gin.H{"name": s.Name, "price": s.Price})
	httpresp.Created(c, s)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var in catalog.UpdateServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}
	if err := validators.Struct(in); err != nil {
		respondError(c, err)
		return
	}

	s, err := h.repo.UpdateService(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "service_updated", "service", s.ID, in)
	httpresp.OK(c, s)
}

func (h *CatalogHandler) DeactivateService(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeactivateService(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "service_deactivated", "service", id, nil)
	c.Status(http.StatusNoContent)
}

// ======================================================
// BARBER SERVICES
// ======================================================

func (h *CatalogHandler) ListBarberServices(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	views, err := h.repo.ListBarberServices(c.Request.Context(), barberID)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, views)
}

func (h *CatalogHandler) ListAvailableServices(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	services, err := h.repo.ListAvailableServices(c.Request.Context(), barberID)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) AssignService(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req AssignServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	view, err := h.repo.AssignService(c.Request.Context(), barberID, req.ServiceID, req.CustomPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "service_assigned", "barber", barberID, gin.H{
		"service_id":   req.ServiceID,
		"custom_price": req.CustomPrice,
	})
	httpresp.OK(c, view)
}

func (h *CatalogHandler) UnassignService(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintParam(c, "serviceId")
	if !ok {
		return
	}

	if err := h.repo.UnassignService(c.Request.Context(), barberID, serviceID); err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "service_unassigned", "barber", barberID, gin.H{"service_id": serviceID})
	c.Status(http.StatusNoContent)
}

// UpdateCustomPrice sets the barber's price override; null clears it.
func (h *CatalogHandler) UpdateCustomPrice(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintParam(c, "serviceId")
	if !ok {
		return
	}

	var req CustomPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	view, err := h.repo.UpdateCustomPrice(c.Request.Context(), barberID, serviceID, req.CustomPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(c, "custom_price_updated", "barber", barberID, gin.H{
		"service_id":   serviceID,
		"custom_price": req.CustomPrice,
	})
	httpresp.OK(c, view)
}
