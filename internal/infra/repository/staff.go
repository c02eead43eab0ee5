package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type StaffRepository struct {
	*Repository[models.Staff]
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{Repository: New[models.Staff](db, "staff")}
}

// FindActiveByEmail returns the active staff member with the given
// normalized email, or a not-found error.
func (r *StaffRepository) FindActiveByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var s models.Staff
	err := r.DB(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.NotFound()
		}
		return nil, err
	}
	return &s, nil
}

// EmailTaken reports whether another staff record uses email.
func (r *StaffRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return r.Exists(ctx, func(db *gorm.DB) *gorm.DB {
		q := db.Where("email = ?", email)
		if exceptID != 0 {
			q = q.Where("id <> ?", exceptID)
		}
		return q
	})
}

func (r *StaffRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.DB(ctx).
		Model(&models.Staff{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.NotFound()
	}
	return nil
}

func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(&models.Staff{}).Count(&n).Error
	return n, err
}
