package models

import "time"

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Gender  string `gorm:"size:10" json:"gender"`
	Age     int    `json:"age"`
	Phone   string `gorm:"size:20;index" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:255" json:"address"`

	Source         string `gorm:"size:50" json:"source"`
	ValueTier      string `gorm:"size:20" json:"valueTier"`
	SpendingTier   string `gorm:"size:20" json:"spendingTier"`
	DemandCategory string `gorm:"size:50" json:"demandCategory"`

	AllergyHistory    string `gorm:"type:text" json:"allergyHistory"`
	Contraindications string `gorm:"type:text" json:"contraindications"`

	VisitFrequency    int     `gorm:"default:0" json:"visitFrequency"`
	SatisfactionScore float64 `gorm:"default:0" json:"satisfactionScore"`

	MembershipID *uint `gorm:"index" json:"membershipId"`
	ReferrerID   *uint `gorm:"index" json:"referrerId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
