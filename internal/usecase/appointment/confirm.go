package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type ConfirmAppointment struct {
	repo  Store
	audit *audit.Dispatcher
}

func NewConfirmAppointment(
	repo Store,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return transition(ctx, uc.repo, uc.audit, staffID, appointmentID, domain.Confirm, "appointment_confirmed")
}
