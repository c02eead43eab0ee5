package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/auth"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	"github.com/BruksfildServices01/clinic-crm/internal/validators"
)

type StaffHandler struct {
	repo  *repository.StaffRepository
	auth  *auth.Service
	audit *audit.Dispatcher
}

func NewStaffHandler(
	repo *repository.StaffRepository,
	authSvc *auth.Service,
	audit *audit.Dispatcher,
) *StaffHandler {
	return &StaffHandler{repo: repo, auth: authSvc, audit: audit}
}

// --------- Requests ---------

// UpdateStaffRequest carries an optional password. When present it is
// hashed before saving; when absent the stored hash is kept.
type UpdateStaffRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// --------- Queries ---------

func (h *StaffHandler) List(c *gin.Context) {
	scopes := []repository.Scope{
		repository.Search(queryLower(c, "search"), "name", "email"),
	}
	if active, ok := queryBool(c, "active"); ok {
		scopes = append(scopes, repository.Where("is_active = ?", active))
	}

	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c), scopes...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *StaffHandler) ByRole(c *gin.Context) {
	role, err := staff.ParseRole(c.Param("role"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c),
		repository.Where("role = ?", string(role)))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	st, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, st)
}

// --------- Mutations ---------

func (h *StaffHandler) Create(c *gin.Context) {
	registerStaff(c, h.auth, h.audit)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	st, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		st.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		taken, err := h.repo.EmailTaken(ctx, email, st.ID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if taken {
			httperr.Respond(c, httperr.ErrConflict("email_already_exists"))
			return
		}
		st.Email = email
	}
	if req.Phone != nil {
		if !validators.IsPhone(*req.Phone) {
			httperr.Respond(c, httperr.ErrBusiness("invalid_phone"))
			return
		}
		st.Phone = validators.NormalizePhone(*req.Phone)
	}
	if req.Role != nil {
		role, err := staff.ParseRole(*req.Role)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		st.Role = string(role)
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if err := h.auth.ApplyPassword(st, req.Password); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Save(ctx, st); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "staff_updated", "staff", st.ID, map[string]bool{
		"passwordChanged": req.Password != nil && *req.Password != "",
	})
	httpresp.OK(c, st)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if id == actorID(c) {
		httperr.Respond(c, httperr.ErrBusiness("cannot_delete_self"))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "staff_deleted", "staff", id, nil)
	httpresp.Deleted(c)
}
