package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID  uint
	StaffID     uint
	ProjectID   uint
	ScheduledAt time.Time
	Status      string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  Store
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo Store,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actorID uint,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ScheduledAt.IsZero() {
		return nil, httperr.ErrBusiness("invalid_scheduled_at")
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	ap := &models.Appointment{
		CustomerID:  in.CustomerID,
		StaffID:     in.StaffID,
		ProjectID:   in.ProjectID,
		ScheduledAt: in.ScheduledAt,
		Status:      string(status),
		Notes:       in.Notes,
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Record(actorID, "appointment_created", "appointment", ap.ID, nil)

	return ap, nil
}
