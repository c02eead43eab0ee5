package models

import "time"

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint      `gorm:"index" json:"customerId"`
	Customer   *Customer `json:"customer,omitempty"`

	ProjectID uint     `gorm:"index" json:"projectId"`
	Project   *Project `json:"project,omitempty"`

	ConsultantID uint   `gorm:"index" json:"consultantId"`
	Consultant   *Staff `gorm:"foreignKey:ConsultantID" json:"consultant,omitempty"`

	DiscountApproverID *uint `json:"discountApproverId"`

	Status        string `gorm:"size:20;default:'pending_payment';index" json:"status"`
	PaymentMethod string `gorm:"size:20" json:"paymentMethod"`

	Amount         float64 `json:"amount"`
	DiscountAmount float64 `gorm:"default:0" json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`

	PaidAt *time.Time `json:"paidAt"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
