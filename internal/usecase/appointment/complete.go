package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type CompleteAppointment struct {
	repo  Store
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo Store,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return transition(ctx, uc.repo, uc.audit, staffID, appointmentID, domain.Complete, "appointment_completed")
}
