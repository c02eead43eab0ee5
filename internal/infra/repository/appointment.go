package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-crm/internal/dto"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
)

type AppointmentRepository struct {
	*Repository[models.Appointment]
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	base := New[models.Appointment](db, "appointment").
		WithOrder("scheduled_at DESC, id DESC").
		WithPreload("Customer", "Staff", "Project")
	return &AppointmentRepository{Repository: base}
}

const appointmentListColumns = `
	appointments.id,
	appointments.customer_id,
	COALESCE(customers.name, '') AS customer_name,
	appointments.staff_id,
	COALESCE(staff.name, '') AS staff_name,
	appointments.project_id,
	COALESCE(projects.name, '') AS project_name,
	appointments.scheduled_at,
	appointments.status,
	appointments.notes,
	appointments.created_at,
	appointments.updated_at`

// ListRows pages appointments joined with customer, staff and project
// names. Scopes must qualify columns with the appointments table.
func (r *AppointmentRepository) ListRows(
	ctx context.Context,
	p pagination.Params,
	scopes ...Scope,
) (pagination.Page[dto.AppointmentListItem], error) {

	var total int64
	if err := r.DB(ctx).
		Model(&models.Appointment{}).
		Scopes(scopes...).
		Count(&total).Error; err != nil {
		return pagination.Page[dto.AppointmentListItem]{}, err
	}

	var rows []dto.AppointmentListItem
	if err := r.DB(ctx).
		Table("appointments").
		Select(appointmentListColumns).
		Joins("LEFT JOIN customers ON customers.id = appointments.customer_id").
		Joins("LEFT JOIN staff ON staff.id = appointments.staff_id").
		Joins("LEFT JOIN projects ON projects.id = appointments.project_id").
		Scopes(scopes...).
		Order("appointments.scheduled_at DESC, appointments.id DESC").
		Scopes(pagination.Scope(p)).
		Scan(&rows).Error; err != nil {
		return pagination.Page[dto.AppointmentListItem]{}, err
	}

	return pagination.New(rows, total, p), nil
}
