package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/auth"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
)

type AuthHandler struct {
	svc   *auth.Service
	audit *audit.Dispatcher
}

func NewAuthHandler(svc *auth.Service, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{svc: svc, audit: audit}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password" binding:"required,min=6"`
	IsActive *bool  `json:"isActive"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(res.Staff.ID, "login", "staff", res.Staff.ID, nil)
	httpresp.OK(c, res)
}

func (h *AuthHandler) Register(c *gin.Context) {
	registerStaff(c, h.svc, h.audit)
}

// registerStaff backs both POST /auth/register and POST /staff.
func registerStaff(c *gin.Context, svc *auth.Service, dispatcher *audit.Dispatcher) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := validateContact(req.Phone, ""); err != nil {
		httperr.Respond(c, err)
		return
	}

	st, err := svc.Register(c.Request.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	dispatcher.Record(actorID(c), "staff_created", "staff", st.ID, map[string]string{"role": st.Role})
	httpresp.Created(c, st)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "password_changed", "staff", id, nil)
	httpresp.OK(c, gin.H{"message": "Password updated."})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	st, err := h.svc.Profile(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, st)
}
