package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type Store interface {
	Get(ctx context.Context, id uint) (*models.Appointment, error)
	Create(ctx context.Context, ap *models.Appointment) error
	Save(ctx context.Context, ap *models.Appointment) error
}

// transition loads an appointment, applies a domain action, persists it and
// records the audit event.
func transition(
	ctx context.Context,
	repo Store,
	dispatcher *audit.Dispatcher,
	staffID uint,
	appointmentID uint,
	apply func(*models.Appointment) error,
	action string,
) (*models.Appointment, error) {

	ap, err := repo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := apply(ap); err != nil {
		return nil, err
	}

	if err := repo.Save(ctx, ap); err != nil {
		return nil, err
	}

	dispatcher.Record(staffID, action, "appointment", ap.ID, map[string]string{
		"from": from,
		"to":   ap.Status,
	})

	return ap, nil
}
