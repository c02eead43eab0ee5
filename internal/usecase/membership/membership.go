package membership

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	domain "github.com/BruksfildServices01/clinic-crm/internal/domain/membership"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

type Store interface {
	CreateForCustomer(ctx context.Context, m *models.Membership) error
	DeleteAndDetach(ctx context.Context, id uint) error
	AddPoints(ctx context.Context, id uint, delta int) (*models.Membership, error)
}

// ======================================================
// CREATE
// ======================================================

type CreateMembershipInput struct {
	CustomerID uint
	Tier       string
	Points     int
	Balance    float64
	ExpiryDate *time.Time
	IsActive   *bool
}

type CreateMembership struct {
	repo  Store
	audit *audit.Dispatcher
}

func NewCreateMembership(repo Store, audit *audit.Dispatcher) *CreateMembership {
	return &CreateMembership{repo: repo, audit: audit}
}

func (uc *CreateMembership) Execute(
	ctx context.Context,
	actorID uint,
	in CreateMembershipInput,
) (*models.Membership, error) {

	tier := domain.TierNormal
	if in.Tier != "" {
		t, err := domain.ParseTier(in.Tier)
		if err != nil {
			return nil, err
		}
		tier = t
	}

	m := &models.Membership{
		CustomerID: in.CustomerID,
		Tier:       string(tier),
		Balance:    in.Balance,
		ExpiryDate: in.ExpiryDate,
		IsActive:   true,
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if err := domain.AdjustPoints(m, in.Points); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateForCustomer(ctx, m); err != nil {
		return nil, err
	}

	uc.audit.Record(actorID, "membership_created", "membership", m.ID, map[string]any{
		"customerId": m.CustomerID,
		"tier":       m.Tier,
	})

	return m, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteMembership struct {
	repo  Store
	audit *audit.Dispatcher
}

func NewDeleteMembership(repo Store, audit *audit.Dispatcher) *DeleteMembership {
	return &DeleteMembership{repo: repo, audit: audit}
}

func (uc *DeleteMembership) Execute(ctx context.Context, actorID, id uint) error {
	if err := uc.repo.DeleteAndDetach(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(actorID, "membership_deleted", "membership", id, nil)
	return nil
}

// ======================================================
// POINTS
// ======================================================

type AdjustPoints struct {
	repo  Store
	audit *audit.Dispatcher
}

func NewAdjustPoints(repo Store, audit *audit.Dispatcher) *AdjustPoints {
	return &AdjustPoints{repo: repo, audit: audit}
}

func (uc *AdjustPoints) Execute(
	ctx context.Context,
	actorID, id uint,
	delta int,
	reason string,
) (*models.Membership, error) {

	m, err := uc.repo.AddPoints(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	uc.audit.Record(actorID, "membership_points_adjusted", "membership", id, map[string]any{
		"delta":  delta,
		"reason": reason,
		"points": m.Points,
	})

	return m, nil
}
