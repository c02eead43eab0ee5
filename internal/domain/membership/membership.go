package membership

import (
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type Tier string

const (
	TierNormal   Tier = "normal"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

func (t Tier) Valid() bool {
	switch t {
	case TierNormal, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

func ParseTier(v string) (Tier, error) {
	t := Tier(v)
	if !t.Valid() {
		return "", httperr.ErrBusiness("invalid_tier")
	}
	return t, nil
}

// AdjustPoints adds delta to the balance of points; the result may not go
// below zero.
func AdjustPoints(m *models.Membership, delta int) error {
	if m.Points+delta < 0 {
		return httperr.ErrBusiness("insufficient_points")
	}
	m.Points += delta
	return nil
}
