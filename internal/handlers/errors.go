package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type errorInfo struct {
	status  int
	message string
}

// businessErrors maps every business code to its HTTP status and the
// message shown to the user.
var businessErrors = map[string]errorInfo{
	// booking
	"invalid_slot":           {http.StatusBadRequest, "El horario elegido no está disponible para reservas."},
	"date_out_of_window":     {http.StatusBadRequest, "La fecha elegida está fuera del período de reservas."},
	"invalid_date_or_barber": {http.StatusBadRequest, "Fecha o peluquero inválidos."},
	"service_not_available":  {http.StatusBadRequest, "El servicio no está disponible con este peluquero."},
	"slot_taken":             {http.StatusConflict, "Ese horario acaba de ser reservado. Por favor elegí otro."},

	// appointments
	"appointment_not_found":  {http.StatusNotFound, "Turno no encontrado."},
	"invalid_state":          {http.StatusConflict, "El turno no admite esta acción en su estado actual."},
	"invalid_payment_method": {http.StatusBadRequest, "Método de pago inválido."},
	"cancel_reason_required": {http.StatusBadRequest, "Indicá el motivo de la cancelación."},
	"cancel_reason_too_long": {http.StatusBadRequest, "El motivo no puede superar los 200 caracteres."},
	"payments_disabled":      {http.StatusNotImplemented, "Los links de pago no están configurados."},

	// filters
	"invalid_date":   {http.StatusBadRequest, "Fecha inválida."},
	"invalid_status": {http.StatusBadRequest, "Estado inválido."},
	"invalid_range":  {http.StatusBadRequest, "La fecha inicial no puede ser posterior a la final."},

	// catalog
	"barber_not_found":     {http.StatusNotFound, "Peluquero no encontrado."},
	"service_not_found":    {http.StatusNotFound, "Servicio no encontrado."},
	"assignment_not_found": {http.StatusNotFound, "El peluquero no tiene asignado ese servicio."},
	"invalid_price":        {http.StatusBadRequest, "Precio inválido."},

	// auth and users
	"invalid_credentials":      {http.StatusUnauthorized, "Email o contraseña incorrectos."},
	"email_not_confirmed":      {http.StatusForbidden, "Confirmá tu email antes de iniciar sesión."},
	"user_inactive":            {http.StatusForbidden, "Tu usuario está desactivado. Contactá al dueño."},
	"invalid_token":            {http.StatusUnauthorized, "Sesión inválida. Iniciá sesión nuevamente."},
	"session_expired":          {http.StatusUnauthorized, "Tu sesión expiró. Iniciá sesión nuevamente."},
	"user_not_found":           {http.StatusNotFound, "Usuario no encontrado."},
	"email_already_registered": {http.StatusConflict, "Ya existe un usuario con ese email."},
	"invalid_email_domain":     {http.StatusBadRequest, "El dominio del email no parece válido."},
	"invalid_role":             {http.StatusBadRequest, "Rol inválido."},
	"cannot_modify_self":       {http.StatusForbidden, "No podés modificar tu propio usuario."},
}

// respondError writes err as JSON. Unknown errors are attached to the gin
// context for the request logger and answered with a generic message.
func respondError(c *gin.Context, err error) {
	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Datos inválidos.", verr.Fields)
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		if info, known := businessErrors[code]; known {
			httperr.Write(c, info.status, code, info.message)
			return
		}
		httperr.BadRequest(c, code, "No se pudo completar la operación.")
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, "internal_error", "Ocurrió un error inesperado. Intentá de nuevo.")
}

func badRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
}

// ======================================================
// PARAMS
// ======================================================

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(v), true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return uuid.Nil, false
	}
	return id, true
}

// actorID is the signed-in user, if any, for audit entries.
func actorID(c *gin.Context) *uuid.UUID {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil
	}
	id := p.UserID
	return &id
}
