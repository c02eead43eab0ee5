package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/order"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
	ucOrder "github.com/BruksfildServices01/clinic-crm/internal/usecase/order"
)

type OrderHandler struct {
	repo   *repository.Repository[models.Order]
	audit  *audit.Dispatcher
	clock  timezone.Clock
	create *ucOrder.CreateOrder
}

func NewOrderHandler(
	repo *repository.Repository[models.Order],
	audit *audit.Dispatcher,
	clock timezone.Clock,
	create *ucOrder.CreateOrder,
) *OrderHandler {
	return &OrderHandler{repo: repo, audit: audit, clock: clock, create: create}
}

// --------- Requests ---------

type CreateOrderRequest struct {
	CustomerID         uint  `json:"customerId" binding:"required"`
	ProjectID          uint  `json:"projectId"`
	ConsultantID       uint  `json:"consultantId"`
	DiscountApproverID *uint `json:"discountApproverId"`

	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`

	Amount         float64  `json:"amount" binding:"min=0"`
	DiscountAmount float64  `json:"discountAmount" binding:"min=0"`
	FinalAmount    *float64 `json:"finalAmount" binding:"omitempty,min=0"`

	PaidAt *time.Time `json:"paidAt"`
}

// UpdateOrderRequest stores amounts as given; finalAmount is derived only
// when an order is created.
type UpdateOrderRequest struct {
	ProjectID          *uint `json:"projectId,omitempty"`
	ConsultantID       *uint `json:"consultantId,omitempty"`
	DiscountApproverID *uint `json:"discountApproverId,omitempty"`

	Status        *string `json:"status,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`

	Amount         *float64 `json:"amount,omitempty" binding:"omitempty,min=0"`
	DiscountAmount *float64 `json:"discountAmount,omitempty" binding:"omitempty,min=0"`
	FinalAmount    *float64 `json:"finalAmount,omitempty" binding:"omitempty,min=0"`

	PaidAt *time.Time `json:"paidAt,omitempty"`
}

// --------- Queries ---------

func (h *OrderHandler) list(c *gin.Context, scopes ...repository.Scope) {
	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c), scopes...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *OrderHandler) List(c *gin.Context) {
	h.list(c)
}

func (h *OrderHandler) ByCustomer(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	h.list(c, repository.Where("customer_id = ?", id))
}

func (h *OrderHandler) ByStatus(c *gin.Context) {
	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.list(c, repository.Where("status = ?", string(status)))
}

// ByDateRange lists orders created in [start, end).
func (h *OrderHandler) ByDateRange(c *gin.Context) {
	start, end, err := h.clock.Range(c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.list(c, repository.Between("created_at", start, end))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, o)
}

// --------- Mutations ---------

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.create.Execute(c.Request.Context(), actorID(c), ucOrder.CreateOrderInput{
		CustomerID:         req.CustomerID,
		ProjectID:          req.ProjectID,
		ConsultantID:       req.ConsultantID,
		DiscountApproverID: req.DiscountApproverID,
		Status:             req.Status,
		PaymentMethod:      req.PaymentMethod,
		Amount:             req.Amount,
		DiscountAmount:     req.DiscountAmount,
		FinalAmount:        req.FinalAmount,
		PaidAt:             req.PaidAt,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, o)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	o, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.ProjectID != nil {
		o.ProjectID = *req.ProjectID
	}
	if req.ConsultantID != nil {
		o.ConsultantID = *req.ConsultantID
	}
	if req.DiscountApproverID != nil {
		o.DiscountApproverID = req.DiscountApproverID
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if status == domain.StatusPaid && o.PaidAt == nil && req.PaidAt == nil {
			now := h.clock.Now()
			o.PaidAt = &now
		}
		o.Status = string(status)
	}
	if req.PaymentMethod != nil {
		if !domain.PaymentMethod(*req.PaymentMethod).Valid() {
			httperr.Respond(c, httperr.ErrBusiness("invalid_payment_method"))
			return
		}
		o.PaymentMethod = *req.PaymentMethod
	}
	if req.Amount != nil {
		o.Amount = *req.Amount
	}
	if req.DiscountAmount != nil {
		o.DiscountAmount = *req.DiscountAmount
	}
	if req.FinalAmount != nil {
		o.FinalAmount = *req.FinalAmount
	}
	if req.PaidAt != nil {
		o.PaidAt = req.PaidAt
	}

	if err := h.repo.Save(ctx, o); err != nil {
		httperr.Respond(c, err)
		return
	}

	o, err = h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "order_updated", "order", o.ID, map[string]string{"status": o.Status})
	httpresp.OK(c, o)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "order_deleted", "order", id, nil)
	httpresp.Deleted(c)
}
