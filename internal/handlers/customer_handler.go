package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/export"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
	"github.com/BruksfildServices01/clinic-crm/internal/validators"
)

type CustomerHandler struct {
	repo  *repository.Repository[models.Customer]
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCustomerHandler(
	repo *repository.Repository[models.Customer],
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CustomerHandler {
	return &CustomerHandler{repo: repo, audit: audit, clock: clock}
}

// --------- Requests ---------

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Gender  string `json:"gender"`
	Age     int    `json:"age" binding:"min=0,max=150"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`

	Source         string `json:"source"`
	ValueTier      string `json:"valueTier"`
	SpendingTier   string `json:"spendingTier"`
	DemandCategory string `json:"demandCategory"`

	AllergyHistory    string `json:"allergyHistory"`
	Contraindications string `json:"contraindications"`

	VisitFrequency    int     `json:"visitFrequency" binding:"min=0"`
	SatisfactionScore float64 `json:"satisfactionScore" binding:"min=0"`

	MembershipID *uint `json:"membershipId"`
	ReferrerID   *uint `json:"referrerId"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Gender  *string `json:"gender,omitempty"`
	Age     *int    `json:"age,omitempty" binding:"omitempty,min=0,max=150"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`

	Source         *string `json:"source,omitempty"`
	ValueTier      *string `json:"valueTier,omitempty"`
	SpendingTier   *string `json:"spendingTier,omitempty"`
	DemandCategory *string `json:"demandCategory,omitempty"`

	AllergyHistory    *string `json:"allergyHistory,omitempty"`
	Contraindications *string `json:"contraindications,omitempty"`

	VisitFrequency    *int     `json:"visitFrequency,omitempty" binding:"omitempty,min=0"`
	SatisfactionScore *float64 `json:"satisfactionScore,omitempty" binding:"omitempty,min=0"`

	MembershipID *uint `json:"membershipId,omitempty"`
	ReferrerID   *uint `json:"referrerId,omitempty"`
}

func validateContact(phone, email string) error {
	if !validators.IsPhone(phone) {
		return httperr.ErrBusiness("invalid_phone")
	}
	if email != "" && !validators.IsEmail(email) {
		return httperr.ErrBusiness("invalid_email")
	}
	return nil
}

// --------- Queries ---------

func (h *CustomerHandler) filters(c *gin.Context) []repository.Scope {
	return []repository.Scope{
		repository.Search(queryLower(c, "search"), "name", "phone", "email"),
		repository.Eq("source", strings.TrimSpace(c.Query("source"))),
		repository.Eq("value_tier", strings.TrimSpace(c.Query("valueTier"))),
	}
}

func (h *CustomerHandler) List(c *gin.Context) {
	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c), h.filters(c)...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cust, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, cust)
}

// Referrals lists the customers referred by :id.
func (h *CustomerHandler) Referrals(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c),
		repository.Where("referrer_id = ?", id))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

// Export streams every customer matching the list filters as xlsx.
func (h *CustomerHandler) Export(c *gin.Context) {
	customers, err := h.repo.Find(c.Request.Context(), h.filters(c)...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Customers(&buf, customers, h.clock.Location()); err != nil {
		httperr.Respond(c, err)
		return
	}

	filename := fmt.Sprintf("customers-%s.xlsx", h.clock.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())

	h.audit.Record(actorID(c), "customers_exported", "customer", 0, map[string]int{"rows": len(customers)})
}

// --------- Mutations ---------

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	cust := models.Customer{
		Name:              strings.TrimSpace(req.Name),
		Gender:            req.Gender,
		Age:               req.Age,
		Phone:             validators.NormalizePhone(req.Phone),
		Email:             validators.NormalizeEmail(req.Email),
		Address:           req.Address,
		Source:            req.Source,
		ValueTier:         req.ValueTier,
		SpendingTier:      req.SpendingTier,
		DemandCategory:    req.DemandCategory,
		AllergyHistory:    req.AllergyHistory,
		Contraindications: req.Contraindications,
		VisitFrequency:    req.VisitFrequency,
		SatisfactionScore: req.SatisfactionScore,
		MembershipID:      req.MembershipID,
		ReferrerID:        req.ReferrerID,
	}

	if err := validateContact(cust.Phone, cust.Email); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Create(c.Request.Context(), &cust); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "customer_created", "customer", cust.ID, nil)
	httpresp.Created(c, cust)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	cust, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		cust.Name = strings.TrimSpace(*req.Name)
	}
	if req.Gender != nil {
		cust.Gender = *req.Gender
	}
	if req.Age != nil {
		cust.Age = *req.Age
	}
	if req.Phone != nil {
		cust.Phone = validators.NormalizePhone(*req.Phone)
	}
	if req.Email != nil {
		cust.Email = validators.NormalizeEmail(*req.Email)
	}
	if req.Address != nil {
		cust.Address = *req.Address
	}
	if req.Source != nil {
		cust.Source = *req.Source
	}
	if req.ValueTier != nil {
		cust.ValueTier = *req.ValueTier
	}
	if req.SpendingTier != nil {
		cust.SpendingTier = *req.SpendingTier
	}
	if req.DemandCategory != nil {
		cust.DemandCategory = *req.DemandCategory
	}
	if req.AllergyHistory != nil {
		cust.AllergyHistory = *req.AllergyHistory
	}
	if req.Contraindications != nil {
		cust.Contraindications = *req.Contraindications
	}
	if req.VisitFrequency != nil {
		cust.VisitFrequency = *req.VisitFrequency
	}
	if req.SatisfactionScore != nil {
		cust.SatisfactionScore = *req.SatisfactionScore
	}
	if req.MembershipID != nil {
		cust.MembershipID = req.MembershipID
	}
	if req.ReferrerID != nil {
		if *req.ReferrerID == cust.ID {
			httperr.Respond(c, httperr.ErrBusiness("invalid_referrer"))
			return
		}
		cust.ReferrerID = req.ReferrerID
	}

	if err := validateContact(cust.Phone, cust.Email); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Save(ctx, cust); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "customer_updated", "customer", cust.ID, nil)
	httpresp.OK(c, cust)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "customer_deleted", "customer", id, nil)
	httpresp.Deleted(c)
}
