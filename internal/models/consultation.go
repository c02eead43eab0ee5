package models

import "time"

type Consultation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint      `gorm:"index" json:"customerId"`
	Customer   *Customer `json:"customer,omitempty"`

	ConsultantID uint   `gorm:"index" json:"consultantId"`
	Consultant   *Staff `gorm:"foreignKey:ConsultantID" json:"consultant,omitempty"`

	Content            string `gorm:"type:text" json:"content"`
	Diagnosis          string `gorm:"type:text" json:"diagnosis"`
	RecommendedProject string `gorm:"size:255" json:"recommendedProject"`
	PriceQuote         string `gorm:"size:100" json:"priceQuote"`
	ConsentSigned      bool   `gorm:"default:false" json:"consentSigned"`

	// Opaque paths, never dereferenced by the server.
	Images string `gorm:"type:text" json:"images"`
	Forms  string `gorm:"type:text" json:"forms"`

	ConsultedAt time.Time `json:"consultedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
