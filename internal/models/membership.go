package models

import "time"

type Membership struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint      `gorm:"uniqueIndex" json:"customerId"`
	Customer   *Customer `json:"customer,omitempty"`

	Tier       string     `gorm:"size:20;default:'normal'" json:"tier"`
	Points     int        `gorm:"default:0" json:"points"`
	Balance    float64    `gorm:"default:0" json:"balance"`
	ExpiryDate *time.Time `json:"expiryDate"`
	IsActive   bool       `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
