package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-crm/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type transitionUseCase interface {
	Execute(ctx context.Context, staffID, appointmentID uint) (*models.Appointment, error)
}

type AppointmentHandler struct {
	repo  *repository.AppointmentRepository
	audit *audit.Dispatcher
	clock timezone.Clock

	create   *ucAppointment.CreateAppointment
	confirm  transitionUseCase
	complete transitionUseCase
	cancel   transitionUseCase
}

func NewAppointmentHandler(
	repo *repository.AppointmentRepository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	create *ucAppointment.CreateAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:     repo,
		audit:    audit,
		clock:    clock,
		create:   create,
		confirm:  confirm,
		complete: complete,
		cancel:   cancel,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerID  uint      `json:"customerId" binding:"required"`
	StaffID     uint      `json:"staffId" binding:"required"`
	ProjectID   uint      `json:"projectId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes" binding:"max=255"`
}

// UpdateAppointmentRequest has no status; status only moves through the
// confirm, complete and cancel actions.
type UpdateAppointmentRequest struct {
	CustomerID  *uint      `json:"customerId,omitempty"`
	StaffID     *uint      `json:"staffId,omitempty"`
	ProjectID   *uint      `json:"projectId,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Notes       *string    `json:"notes,omitempty" binding:"omitempty,max=255"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) list(c *gin.Context, scopes ...repository.Scope) {
	page, err := h.repo.ListRows(c.Request.Context(), pagination.FromQuery(c), scopes...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	h.list(c)
}

func (h *AppointmentHandler) ByCustomer(c *gin.Context) {
	id, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	h.list(c, repository.Where("appointments.customer_id = ?", id))
}

func (h *AppointmentHandler) ByStaff(c *gin.Context) {
	id, ok := pathID(c, "staffId")
	if !ok {
		return
	}
	h.list(c, repository.Where("appointments.staff_id = ?", id))
}

func (h *AppointmentHandler) ByStatus(c *gin.Context) {
	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.list(c, repository.Where("appointments.status = ?", string(status)))
}

// ByDateRange lists appointments scheduled in [start, end). Bare dates are
// read in the clinic timezone.
func (h *AppointmentHandler) ByDateRange(c *gin.Context) {
	start, end, err := h.clock.Range(c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.list(c, repository.Between("appointments.scheduled_at", start, end))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), actorID(c), ucAppointment.CreateAppointmentInput{
		CustomerID:  req.CustomerID,
		StaffID:     req.StaffID,
		ProjectID:   req.ProjectID,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	ap, err := h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.CustomerID != nil {
		ap.CustomerID = *req.CustomerID
	}
	if req.StaffID != nil {
		ap.StaffID = *req.StaffID
	}
	if req.ProjectID != nil {
		ap.ProjectID = *req.ProjectID
	}
	if req.ScheduledAt != nil {
		ap.ScheduledAt = *req.ScheduledAt
	}
	if req.Notes != nil {
		ap.Notes = *req.Notes
	}

	if err := h.repo.Save(ctx, ap); err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err = h.repo.Get(ctx, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "appointment_updated", "appointment", ap.ID, nil)
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) runTransition(c *gin.Context, uc transitionUseCase) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := uc.Execute(c.Request.Context(), actorID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.runTransition(c, h.confirm)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.runTransition(c, h.complete)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.runTransition(c, h.cancel)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Record(actorID(c), "appointment_deleted", "appointment", id, nil)
	httpresp.Deleted(c)
}
