package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

const (
	defaultUpcomingDays = 7
	maxUpcomingDays     = 365
)

type TreatmentHandler struct {
	repo  *repository.Repository[models.Treatment]
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewTreatmentHandler(
	repo *repository.Repository[models.Treatment],
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *TreatmentHandler {
	return &TreatmentHandler{repo: repo, audit: audit, clock: clock}
}

// --------- Requests ---------

type CreateTreatmentRequest struct {
	CustomerID     uint `json:"customerId" binding:"required"`
	ConsultationID uint `json:"consultationId"`
	DoctorID       uint `json:"doctorId"`
	NurseID        uint `json:"nurseId"`
	ProjectID      uint `json:"projectId"`

	ProductName   string     `json:"productName" binding:"max=100"`
	Dosage        string     `json:"dosage" binding:"max=50"`
	TreatedAt     *time.Time `json:"treatedAt"`
	RecoveryNotes string     `json:"recoveryNotes"`
	RednessLevel  float64    `json:"rednessLevel" binding:"min=0"`

	Sequence        int        `json:"sequence" binding:"omitempty,min=1"`
	TotalSessions   int        `json:"totalSessions" binding:"omitempty,min=1"`
	NextTreatmentAt *time.Time `json:"nextTreatmentAt"`
}

type UpdateTreatmentRequest struct {
	CustomerID     *uint `json:"customerId,omitempty"`
	ConsultationID *uint `json:"consultationId,omitempty"`
	DoctorID       *uint `json:"doctorId,omitempty"`
	NurseID        *uint `json:"nurseId,omitempty"`
	ProjectID      *uint `json:"projectId,omitempty"`

	ProductName   *string    `json:"productName,omitempty" binding:"omitempty,max=100"`
	Dosage        *string    `json:"dosage,omitempty" binding:"omitempty,max=50"`
	TreatedAt     *time.Time `json:"treatedAt,omitempty"`
	RecoveryNotes *string    `json:"recoveryNotes,omitempty"`
	RednessLevel  *float64   `json:"rednessLevel,omitempty" binding:"omitempty,min=0"`

	Sequence        *int       `json:"sequence,omitempty" binding:"omitempty,min=1"`
	TotalSessions   *int       `json:"totalSessions,omitempty" binding:"omitempty,min=1"`
	NextTreatmentAt *time.Time `json:"nextTreatmentAt,omitempty"`
}

func validateSessions(t *models.Treatment) error {
	if t.Sequence > t.TotalSessions {
		return httperr.ErrBusiness("invalid_session_sequence")
	}
	return nil
}

// --------- Queries ---------

func (h *TreatmentHandler) list(c *gin.Context, scopes ...repository.Scope) {
	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c), scopes...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *TreatmentHandler) List(c *gin.Context) {
	h.list(c)
}

func (h *TreatmentHandler) ByCustomer(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	h.list(c, repository.Where("customer_id = ?", id))
}

func (h *TreatmentHandler) ByConsultation(c *gin.Context) {
	id, ok := pathID(c, "consultationId")
	if !ok {
		return
	}
	h.list(c, repository.Where("consultation_id = ?", id))
}

// Upcoming lists treatments whose next session is due within ?days=
// (default 7), soonest first.
func (h *TreatmentHandler) Upcoming(c *gin.Context) {
	days := defaultUpcomingDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httperr.Respond(c, httperr.ErrBusiness("invalid_days"))
			return
		}
		days = min(n, maxUpcomingDays)
	}

	now := h.clock.Now()
	page, err := h.repo.
		WithOrder("next_treatment_at ASC, id ASC").
		List(c.Request.Context(), pagination.FromQuery(c),
			repository.Between("next_treatment_at", now, now.AddDate(0, 0, days)))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *TreatmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	t, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, t)
}

// --------- Mutations ---------

func (h *TreatmentHandler) Create(c *gin.Context) {
	var req CreateTreatmentRequest
	if !bindJSON(c, &req) {
		return
	}

	t := models.Treatment{
		CustomerID:      req.CustomerID,
		ConsultationID:  req.ConsultationID,
		DoctorID:        req.DoctorID,
		NurseID:         req.NurseID,
		ProjectID:       req.ProjectID,
		ProductName:     req.ProductName,
		Dosage:          req.Dosage,
		TreatedAt:       h.clock.Now(),
		RecoveryNotes:   req.RecoveryNotes,
		RednessLevel:    req.RednessLevel,
		Sequence:        max(req.Sequence, 1),
		TotalSessions:   max(req.TotalSessions, 1),
		NextTreatmentAt: req.NextTreatmentAt,
	}
	if req.TreatedAt != nil {
		t.TreatedAt = *req.TreatedAt
	}

	if err := validateSessions(&t); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Create(c.Request.Context(), &t); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "treatment_created", "treatment", t.ID, nil)
	httpresp.Created(c, t)
}

func (h *TreatmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTreatmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	t, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.CustomerID != nil {
		t.CustomerID = *req.CustomerID
	}
	if req.ConsultationID != nil {
		t.ConsultationID = *req.ConsultationID
	}
	if req.DoctorID != nil {
		t.DoctorID = *req.DoctorID
	}
	if req.NurseID != nil {
		t.NurseID = *req.NurseID
	}
	if req.ProjectID != nil {
		t.ProjectID = *req.ProjectID
	}
	if req.ProductName != nil {
		t.ProductName = *req.ProductName
	}
	if req.Dosage != nil {
		t.Dosage = *req.Dosage
	}
	if req.TreatedAt != nil {
		t.TreatedAt = *req.TreatedAt
	}
	if req.RecoveryNotes != nil {
		t.RecoveryNotes = *req.RecoveryNotes
	}
	if req.RednessLevel != nil {
		t.RednessLevel = *req.RednessLevel
	}
	if req.Sequence != nil {
		t.Sequence = *req.Sequence
	}
	if req.TotalSessions != nil {
		t.TotalSessions = *req.TotalSessions
	}
	if req.NextTreatmentAt != nil {
		t.NextTreatmentAt = req.NextTreatmentAt
	}

	if err := validateSessions(t); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.Save(ctx, t); err != nil {
		httperr.Respond(c, err)
		return
	}

	t, err = h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "treatment_updated", "treatment", t.ID, nil)
	httpresp.OK(c, t)
}

func (h *TreatmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "treatment_deleted", "treatment", id, nil)
	httpresp.Deleted(c)
}
