package membership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/testutil"
)

func TestCreateAdjustDelete(t *testing.T) {
	repos := repository.NewRepositories(testutil.NewDB(t))
	ctx := context.Background()

	cust := models.Customer{Name: "Liu"}
	require.NoError(t, repos.Customers.Create(ctx, &cust))

	m, err := NewCreateMembership(repos.Memberships, nil).Execute(ctx, 1, CreateMembershipInput{
		CustomerID: cust.ID,
		Points:     20,
	})
	require.NoError(t, err)
	assert.Equal(t, "normal", m.Tier)
	assert.True(t, m.IsActive)

	_, err = NewCreateMembership(repos.Memberships, nil).Execute(ctx, 1, CreateMembershipInput{CustomerID: cust.ID})
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindConflict, kind)

	adjust := NewAdjustPoints(repos.Memberships, nil)
	m, err = adjust.Execute(ctx, 1, m.ID, -5, "redeemed")
	require.NoError(t, err)
	assert.Equal(t, 15, m.Points)

	_, err = adjust.Execute(ctx, 1, m.ID, -16, "redeemed")
	assert.True(t, httperr.IsBusiness(err, "insufficient_points"))

	require.NoError(t, NewDeleteMembership(repos.Memberships, nil).Execute(ctx, 1, m.ID))
	err = NewDeleteMembership(repos.Memberships, nil).Execute(ctx, 1, m.ID)
	assert.True(t, httperr.IsBusiness(err, "membership_not_found"))
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	repos := repository.NewRepositories(testutil.NewDB(t))
	uc := NewCreateMembership(repos.Memberships, nil)

	_, err := uc.Execute(context.Background(), 1, CreateMembershipInput{CustomerID: 1, Tier: "diamond"})
	assert.True(t, httperr.IsBusiness(err, "invalid_tier"))

	_, err = uc.Execute(context.Background(), 1, CreateMembershipInput{CustomerID: 1, Points: -1})
	assert.True(t, httperr.IsBusiness(err, "insufficient_points"))
}
