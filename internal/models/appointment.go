package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint      `gorm:"index" json:"customerId"`
	Customer   *Customer `json:"customer,omitempty"`

	StaffID uint   `gorm:"index" json:"staffId"`
	Staff   *Staff `json:"staff,omitempty"`

	ProjectID uint     `gorm:"index" json:"projectId"`
	Project   *Project `json:"project,omitempty"`

	ScheduledAt time.Time `gorm:"index" json:"scheduledAt"`
	Status      string    `gorm:"size:20;default:'pending'" json:"status"`
	Notes       string    `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
