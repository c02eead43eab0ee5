package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/project"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
)

type ProjectHandler struct {
	repo  *repository.Repository[models.Project]
	audit *audit.Dispatcher
}

func NewProjectHandler(repo *repository.Repository[models.Project], audit *audit.Dispatcher) *ProjectHandler {
	return &ProjectHandler{repo: repo, audit: audit}
}

// --------- Requests ---------

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	BasePrice   float64 `json:"basePrice" binding:"min=0"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateProjectRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	BasePrice   *float64 `json:"basePrice,omitempty" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// --------- Queries ---------

func (h *ProjectHandler) list(c *gin.Context, scopes ...repository.Scope) {
	scopes = append(scopes, repository.Search(queryLower(c, "search"), "name", "description"))

	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c), scopes...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *ProjectHandler) List(c *gin.Context) {
	h.list(c)
}

func (h *ProjectHandler) ByCategory(c *gin.Context) {
	cat, err := domain.ParseCategory(strings.ToLower(c.Param("category")))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.list(c, repository.Where("category = ?", string(cat)))
}

func (h *ProjectHandler) Active(c *gin.Context) {
	h.list(c, repository.Where("is_active = ?", true))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

// --------- Mutations ---------

func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	cat, err := domain.ParseCategory(strings.ToLower(req.Category))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p := models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    string(cat),
		BasePrice:   req.BasePrice,
		IsActive:    true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.repo.Create(c.Request.Context(), &p); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "project_created", "project", p.ID, nil)
	httpresp.Created(c, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	p, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		cat, err := domain.ParseCategory(strings.ToLower(*req.Category))
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		p.Category = string(cat)
	}
	if req.BasePrice != nil {
		p.BasePrice = *req.BasePrice
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.repo.Save(ctx, p); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "project_updated", "project", p.ID, nil)
	httpresp.OK(c, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "project_deleted", "project", id, nil)
	httpresp.Deleted(c)
}
