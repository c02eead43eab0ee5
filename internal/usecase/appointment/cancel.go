package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type CancelAppointment struct {
	repo  Store
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo Store,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return transition(ctx, uc.repo, uc.audit, staffID, appointmentID, domain.Cancel, "appointment_cancelled")
}
