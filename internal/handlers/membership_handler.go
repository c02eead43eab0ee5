package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/membership"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	ucMembership "github.com/BruksfildServices01/clinic-crm/internal/usecase/membership"
)

type MembershipHandler struct {
	repo  *repository.MembershipRepository
	audit *audit.Dispatcher

	create *ucMembership.CreateMembership
	remove *ucMembership.DeleteMembership
	points *ucMembership.AdjustPoints
}

func NewMembershipHandler(
	repo *repository.MembershipRepository,
	audit *audit.Dispatcher,
	create *ucMembership.CreateMembership,
	remove *ucMembership.DeleteMembership,
	points *ucMembership.AdjustPoints,
) *MembershipHandler {
	return &MembershipHandler{
		repo:   repo,
		audit:  audit,
		create: create,
		remove: remove,
		points: points,
	}
}

// --------- Requests ---------

type CreateMembershipRequest struct {
	CustomerID uint       `json:"customerId" binding:"required"`
	Tier       string     `json:"tier"`
	Points     int        `json:"points" binding:"min=0"`
	Balance    float64    `json:"balance" binding:"min=0"`
	ExpiryDate *time.Time `json:"expiryDate"`
	IsActive   *bool      `json:"isActive"`
}

// UpdateMembershipRequest cannot move a membership to another customer or
// set points; points change through PATCH /:id/points.
type UpdateMembershipRequest struct {
	Tier       *string    `json:"tier,omitempty"`
	Balance    *float64   `json:"balance,omitempty" binding:"omitempty,min=0"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	IsActive   *bool      `json:"isActive,omitempty"`
}

type AdjustPointsRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// --------- Queries ---------

func (h *MembershipHandler) List(c *gin.Context) {
	scopes := []repository.Scope{}
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

func (h *MembershipHandler) ByTier(c *gin.Context) {
	tier, err := domain.ParseTier(c.Param("tier"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c),
		repository.Where("tier = ?", string(tier)))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

// ByCustomer returns the single membership of a customer.
func (h *MembershipHandler) ByCustomer(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}

	m, err := h.repo.FindByCustomer(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MembershipHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	m, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}

// --------- Mutations ---------

func (h *MembershipHandler) Create(c *gin.Context) {
	var req CreateMembershipRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.create.Execute(c.Request.Context(), actorID(c), ucMembership.CreateMembershipInput{
		CustomerID: req.CustomerID,
		Tier:       req.Tier,
		Points:     req.Points,
		Balance:    req.Balance,
		ExpiryDate: req.ExpiryDate,
		IsActive:   req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, m)
}

func (h *MembershipHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateMembershipRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	m, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Tier != nil {
		tier, err := domain.ParseTier(*req.Tier)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		m.Tier = string(tier)
	}
	if req.Balance != nil {
		m.Balance = *req.Balance
	}
	if req.ExpiryDate != nil {
		m.ExpiryDate = req.ExpiryDate
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := h.repo.Save(ctx, m); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "membership_updated", "membership", m.ID, nil)
	httpresp.OK(c, m)
}

func (h *MembershipHandler) AdjustPoints(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AdjustPointsRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.points.Execute(c.Request.Context(), actorID(c), id, req.Delta, req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MembershipHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), actorID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Deleted(c)
}
