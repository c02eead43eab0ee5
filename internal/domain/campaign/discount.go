package campaign

import (
	"time"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

// ValidateDiscount enforces that exactly one of percentage and fixed amount
// is set.
func ValidateDiscount(percentage, fixed *float64) error {
	switch {
	case percentage != nil && fixed != nil:
		return httperr.ErrBusiness("discount_both_set")
	case percentage == nil && fixed == nil:
		return httperr.ErrBusiness("discount_missing")
	case percentage != nil && (*percentage <= 0 || *percentage > 100):
		return httperr.ErrBusiness("invalid_discount_percentage")
	case fixed != nil && *fixed <= 0:
		return httperr.ErrBusiness("invalid_fixed_discount")
	}
	return nil
}

// ApplyDiscount updates the discount of c. Setting one kind clears the
// other; setting both is rejected.
func ApplyDiscount(c *models.Campaign, percentage, fixed *float64) error {
	if percentage != nil && fixed != nil {
		return httperr.ErrBusiness("discount_both_set")
	}
	if percentage != nil {
		c.DiscountPercentage = percentage
		c.FixedDiscount = nil
	}
	if fixed != nil {
		c.FixedDiscount = fixed
		c.DiscountPercentage = nil
	}
	return ValidateDiscount(c.DiscountPercentage, c.FixedDiscount)
}

func ValidatePeriod(start, end time.Time) error {
	if end.Before(start) {
		return httperr.ErrBusiness("invalid_period")
	}
	return nil
}
