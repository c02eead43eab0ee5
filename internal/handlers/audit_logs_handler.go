package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/httpresp"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	repo  *repository.Repository[models.AuditLog]
	clock timezone.Clock
}

func NewAuditLogsHandler(repo *repository.Repository[models.AuditLog], clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo, clock: clock}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	scopes := []repository.Scope{
		repository.Eq("action", strings.TrimSpace(c.Query("action"))),
		repository.Eq("entity", strings.TrimSpace(c.Query("entity"))),
	}

	if staffID := strings.TrimSpace(c.Query("staffId")); staffID != "" {
		scopes = append(scopes, repository.Where("staff_id = ?", staffID))
	}

	// --------------------------------------------------
	// Optional period
	// --------------------------------------------------

	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		start, end, err := h.clock.Range(from, to)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		scopes = append(scopes, repository.Between("created_at", start, end))
	}

	page, err := h.repo.List(c.Request.Context(), pagination.FromQuery(c), scopes...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page)
}
