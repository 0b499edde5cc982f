package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
)

type AuthHandler struct {
	auth  *auth.Service
	audit *audit.Dispatcher
}

func NewAuthHandler(svc *auth.Service, dispatcher *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{auth: svc, audit: dispatcher}
}

// --------- Requests ---------

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// --------- Session ---------

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	id := res.User.ID
	h.audit.Dispatch(audit.Event{UserID: &id, Action: "sign_in", Entity: "user"})
	httpresp.OK(c, res)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "No autenticado.")
		return
	}

	if err := h.auth.SignOut(c.Request.Context(), p.SessionID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "No autenticado.")
		return
	}

	profile, err := h.auth.Profile(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, profile)
}

// --------- Users (owner) ---------

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, users)
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var in auth.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}

	u, err := h.auth.CreateEmployee(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "user_created",
		Entity:   "user",
		Metadata: gin.H{"user_id": u.ID, "email": u.Email},
	})
	httpresp.Created(c, u)
}

func (h *AuthHandler) ChangeRole(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	u, err := h.auth.ChangeRole(c.Request.Context(), p, id, user.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "user_role_changed",
		Entity:   "user",
		Metadata: gin.H{"user_id": id, "role": req.Role},
	})
	httpresp.OK(c, u)
}

func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.auth.Deactivate(c.Request.Context(), p, id); err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "user_deactivated",
		Entity:   "user",
		Metadata: gin.H{"user_id": id},
	})
	c.Status(http.StatusNoContent)
}
