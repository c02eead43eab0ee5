package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
)

type ConsultationHandler struct {
	repo  *repository.Repository[models.Consultation]
	audit *audit.Dispatcher
}

func NewConsultationHandler(
	repo *repository.Repository[models.Consultation],
	audit *audit.Dispatcher,
) *ConsultationHandler {
	return &ConsultationHandler{repo: repo, audit: audit}
}

// --------- Requests ---------

type CreateConsultationRequest struct {
	CustomerID   uint `json:"customerId" binding:"required"`
	ConsultantID uint `json:"consultantId" binding:"required"`

	Content            string `json:"content"`
	Diagnosis          string `json:"diagnosis"`
	RecommendedProject string `json:"recommendedProject"`
	PriceQuote         string `json:"priceQuote"`
	ConsentSigned      bool   `json:"consentSigned"`
	Images             string `json:"images"`
	Forms              string `json:"forms"`

	ConsultedAt *time.Time `json:"consultedAt"`
}

type UpdateConsultationRequest struct {
	CustomerID   *uint `json:"customerId,omitempty"`
	ConsultantID *uint `json:"consultantId,omitempty"`

	Content            *string `json:"content,omitempty"`
	Diagnosis          *string `json:"diagnosis,omitempty"`
	RecommendedProject *string `json:"recommendedProject,omitempty"`
	PriceQuote         *string `json:"priceQuote,omitempty"`
	ConsentSigned      *bool   `json:"consentSigned,omitempty"`
	Images             *string `json:"images,omitempty"`
	Forms              *string `json:"forms,omitempty"`

	ConsultedAt *time.Time `json:"consultedAt,omitempty"`
}

// --------- Queries ---------

func (h *ConsultationHandler) list(c *gin.Context, scopes ...repository.Scope) {
	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c), scopes...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *ConsultationHandler) List(c *gin.Context) {
	h.list(c)
}

func (h *ConsultationHandler) ByCustomer(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	h.list(c, repository.Where("customer_id = ?", id))
}

func (h *ConsultationHandler) ByConsultant(c *gin.Context) {
	id, ok := pathID(c, "staffId")
	if !ok {
		return
	}
	h.list(c, repository.Where("consultant_id = ?", id))
}

func (h *ConsultationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cons, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, cons)
}

// --------- Mutations ---------

func (h *ConsultationHandler) Create(c *gin.Context) {
	var req CreateConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	cons := models.Consultation{
		CustomerID:         req.CustomerID,
		ConsultantID:       req.ConsultantID,
		Content:            req.Content,
		Diagnosis:          req.Diagnosis,
		RecommendedProject: req.RecommendedProject,
		PriceQuote:         req.PriceQuote,
		ConsentSigned:      req.ConsentSigned,
		Images:             req.Images,
		Forms:              req.Forms,
		ConsultedAt:        time.Now(),
	}
	if req.ConsultedAt != nil {
		cons.ConsultedAt = *req.ConsultedAt
	}

	if err := h.repo.Create(c.Request.Context(), &cons); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "consultation_created", "consultation", cons.ID, nil)
	httpresp.Created(c, cons)
}

func (h *ConsultationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	cons, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.CustomerID != nil {
		cons.CustomerID = *req.CustomerID
	}
	if req.ConsultantID != nil {
		cons.ConsultantID = *req.ConsultantID
	}
	if req.Content != nil {
		cons.Content = *req.Content
	}
	if req.Diagnosis != nil {
		cons.Diagnosis = *req.Diagnosis
	}
	if req.RecommendedProject != nil {
		cons.RecommendedProject = *req.RecommendedProject
	}
	if req.PriceQuote != nil {
		cons.PriceQuote = *req.PriceQuote
	}
	if req.ConsentSigned != nil {
		cons.ConsentSigned = *req.ConsentSigned
	}
	if req.Images != nil {
		cons.Images = *req.Images
	}
	if req.Forms != nil {
		cons.Forms = *req.Forms
	}
	if req.ConsultedAt != nil {
		cons.ConsultedAt = *req.ConsultedAt
	}

	if err := h.repo.Save(ctx, cons); err != nil {
		httperr.Respond(c, err)
		return
	}

	// relations may point elsewhere after the update
	cons, err = h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "consultation_updated", "consultation", cons.ID, nil)
	httpresp.OK(c, cons)
}

func (h *ConsultationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "consultation_deleted", "consultation", id, nil)
	httpresp.Deleted(c)
}
