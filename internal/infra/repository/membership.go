package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type MembershipRepository struct {
	*Repository[models.Membership]
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{
		Repository: New[models.Membership](db, "membership").WithPreload("Customer"),
	}
}

// CreateForCustomer inserts m and points the customer at it, atomically.
func (r *MembershipRepository) CreateForCustomer(ctx context.Context, m *models.Membership) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Customer{}).
			Where("id = ?", m.CustomerID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return httperr.ErrNotFound("customer_not_found")
		}

		if err := tx.Model(&models.Membership{}).
			Where("customer_id = ?", m.CustomerID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return httperr.ErrConflict("membership_already_exists")
		}

		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}

		return tx.Model(&models.Customer{}).
			Where("id = ?", m.CustomerID).
			Update("membership_id", m.ID).Error
	})
}

// DeleteAndDetach removes membership id and clears the customer reference.
func (r *MembershipRepository) DeleteAndDetach(ctx context.Context, id uint) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Membership{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.NotFound()
		}

		return tx.Model(&models.Customer{}).
			Where("membership_id = ?", id).
			Update("membership_id", nil).Error
	})
}

// AddPoints applies delta in one statement guarded so the balance never
// drops below zero.
func (r *MembershipRepository) AddPoints(ctx context.Context, id uint, delta int) (*models.Membership, error) {
	res := r.DB(ctx).
		Model(&models.Membership{}).
		Where("id = ? AND points + ? >= 0", id, delta).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, httperr.ErrBusiness("insufficient_points")
	}
	return r.Get(ctx, id)
}

func (r *MembershipRepository) FindByCustomer(ctx context.Context, customerID uint) (*models.Membership, error) {
	var m models.Membership
	err := r.read(ctx).Where("customer_id = ?", customerID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.NotFound()
		}
		return nil, err
	}
	return &m, nil
}
