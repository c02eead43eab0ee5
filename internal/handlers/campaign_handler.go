package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

type CampaignHandler struct {
	repo  *repository.Repository[models.Campaign]
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCampaignHandler(
	repo *repository.Repository[models.Campaign],
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CampaignHandler {
	return &CampaignHandler{repo: repo, audit: audit, clock: clock}
}

// --------- Requests ---------

// CreateCampaignRequest must carry exactly one of discountPercentage and
// fixedDiscount.
type CreateCampaignRequest struct {
	Name               string    `json:"name" binding:"required,max=100"`
	Description        string    `json:"description"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	TargetCriteria     string    `json:"targetCriteria"`
	DiscountPercentage *float64  `json:"discountPercentage"`
	FixedDiscount      *float64  `json:"fixedDiscount"`
	IsActive           *bool     `json:"isActive"`
}

type UpdateCampaignRequest struct {
	Name               *string    `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description        *string    `json:"description,omitempty"`
	StartDate          *time.Time `json:"startDate,omitempty"`
	EndDate            *time.Time `json:"endDate,omitempty"`
	TargetCriteria     *string    `json:"targetCriteria,omitempty"`
	DiscountPercentage *float64   `json:"discountPercentage,omitempty"`
	FixedDiscount      *float64   `json:"fixedDiscount,omitempty"`
	IsActive           *bool      `json:"isActive,omitempty"`
}

// --------- Queries ---------

func (h *CampaignHandler) list(c *gin.Context, scopes ...repository.Scope) {
	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c), scopes...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *CampaignHandler) List(c *gin.Context) {
	h.list(c)
}

// Active lists campaigns flagged active whose period contains now.
func (h *CampaignHandler) Active(c *gin.Context) {
	now := h.clock.Now()
	h.list(c, repository.Where(
		"is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now,
	))
}

func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	camp, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, camp)
}

// --------- Mutations ---------

func (h *CampaignHandler) Create(c *gin.Context) {
	var req CreateCampaignRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := domain.ValidateDiscount(req.DiscountPercentage, req.FixedDiscount); err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := domain.ValidatePeriod(req.StartDate, req.EndDate); err != nil {
		httperr.Respond(c, err)
		return
	}

	camp := models.Campaign{
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		TargetCriteria:     req.TargetCriteria,
		DiscountPercentage: req.DiscountPercentage,
		FixedDiscount:      req.FixedDiscount,
		IsActive:           true,
	}
	if req.IsActive != nil {
		camp.IsActive = *req.IsActive
	}

	if err := h.repo.Create(c.Request.Context(), &camp); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "campaign_created", "campaign", camp.ID, nil)
	httpresp.Created(c, camp)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateCampaignRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	camp, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		camp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		camp.Description = *req.Description
	}
	if req.StartDate != nil {
		camp.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		camp.EndDate = *req.EndDate
	}
	if req.TargetCriteria != nil {
		camp.TargetCriteria = *req.TargetCriteria
	}
	if req.IsActive != nil {
		camp.IsActive = *req.IsActive
	}

	if err := domain.ApplyDiscount(camp, req.DiscountPercentage, req.FixedDiscount); err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := domain.ValidatePeriod(camp.StartDate, camp.EndDate); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Save(ctx, camp); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "campaign_updated", "campaign", camp.ID, nil)
	httpresp.OK(c, camp)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "campaign_deleted", "campaign", id, nil)
	httpresp.Deleted(c)
}
