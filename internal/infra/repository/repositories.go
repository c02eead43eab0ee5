package repository

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

// Repositories bundles one repository per table.
type Repositories struct {
	Customers     *Repository[models.Customer]
	Staff         *StaffRepository
	Consultations *Repository[models.Consultation]
	Appointments  *AppointmentRepository
	Treatments    *Repository[models.Treatment]
	Memberships   *MembershipRepository
	Projects      *Repository[models.Project]
	Orders        *Repository[models.Order]
	Campaigns     *Repository[models.Campaign]
	AuditLogs     *Repository[models.AuditLog]
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customers:     New[models.Customer](db, "customer"),
		Staff:         NewStaffRepository(db),
		Consultations: New[models.Consultation](db, "consultation").WithPreload("Customer", "Consultant"),
		Appointments:  NewAppointmentRepository(db),
		Treatments: New[models.Treatment](db, "treatment").
			WithPreload("Customer", "Doctor", "Nurse", "Project"),
		Memberships: NewMembershipRepository(db),
		Projects:    New[models.Project](db, "project"),
		Orders: New[models.Order](db, "order").
			WithPreload("Customer", "Project", "Consultant"),
		Campaigns: New[models.Campaign](db, "campaign"),
		AuditLogs: New[models.AuditLog](db, "audit_log"),
	}
}
