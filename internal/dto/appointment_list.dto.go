package dto

import "time"

// AppointmentListItem is an appointment row joined with the names the
// dashboard shows in its calendar and tables.
type AppointmentListItem struct {
	ID           uint      `json:"id"`
	CustomerID   uint      `json:"customerId"`
	CustomerName string    `json:"customerName"`
	StaffID      uint      `json:"staffId"`
	StaffName    string    `json:"staffName"`
	ProjectID    uint      `json:"projectId"`
	ProjectName  string    `json:"projectName"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
