package models

import "time"

type Treatment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint      `gorm:"index" json:"customerId"`
	Customer   *Customer `json:"customer,omitempty"`

	ConsultationID uint `gorm:"index" json:"consultationId"`

	DoctorID uint   `gorm:"index" json:"doctorId"`
	Doctor   *Staff `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`

	NurseID uint   `gorm:"index" json:"nurseId"`
	Nurse   *Staff `gorm:"foreignKey:NurseID" json:"nurse,omitempty"`

	ProjectID uint     `gorm:"index" json:"projectId"`
	Project   *Project `json:"project,omitempty"`

	ProductName   string    `gorm:"size:100" json:"productName"`
	Dosage        string    `gorm:"size:50" json:"dosage"`
	TreatedAt     time.Time `json:"treatedAt"`
	RecoveryNotes string    `gorm:"type:text" json:"recoveryNotes"`
	RednessLevel  float64   `gorm:"default:0" json:"rednessLevel"`

	Sequence        int        `gorm:"default:1" json:"sequence"`
	TotalSessions   int        `gorm:"default:1" json:"totalSessions"`
	NextTreatmentAt *time.Time `gorm:"index" json:"nextTreatmentAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
