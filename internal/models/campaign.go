package models

import "time"

type Campaign struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`

	// Stored and returned as-is.
	TargetCriteria string `gorm:"type:text" json:"targetCriteria"`

	DiscountPercentage *float64 `json:"discountPercentage"`
	FixedDiscount      *float64 `json:"fixedDiscount"`

	IsActive bool `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
