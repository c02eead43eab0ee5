package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/pagination"
	"github.com/BruksfildServices01/clinic-crm/internal/testutil"
)

func seedCustomers(t *testing.T, repo *Repository[models.Customer], n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		c := models.Customer{
			Name:   fmt.Sprintf("Customer %02d", i),
			Phone:  fmt.Sprintf("1380000%04d", i),
			Source: map[bool]string{true: "referral", false: "walk_in"}[i%2 == 0],
		}
		require.NoError(t, repo.Create(context.Background(), &c))
	}
}

func TestListLastPage(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	seedCustomers(t, repos.Customers, 25)

	page, err := repos.Customers.List(context.Background(), pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, page.Data, 5)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestListIsStable(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	seedCustomers(t, repos.Customers, 12)
	ctx := context.Background()

	first, err := repos.Customers.List(ctx, pagination.Params{Page: 2, Limit: 5})
	require.NoError(t, err)
	second, err := repos.Customers.List(ctx, pagination.Params{Page: 2, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListWithScopes(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	seedCustomers(t, repos.Customers, 10)
	ctx := context.Background()

	page, err := repos.Customers.List(ctx, pagination.Default(), Eq("source", "referral"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)

	page, err = repos.Customers.List(ctx, pagination.Default(), Search("customer 0", "name"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), page.Total)

	page, err = repos.Customers.List(ctx, pagination.Default(), Eq("source", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(10), page.Total)
}

func TestGetAndDeleteNotFound(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	ctx := context.Background()

	_, err := repos.Orders.Get(ctx, 404)
	assert.True(t, httperr.IsBusiness(err, "order_not_found"))

	err = repos.Campaigns.Delete(ctx, 404)
	assert.True(t, httperr.IsBusiness(err, "campaign_not_found"))
}

func TestSaveDoesNotWriteRelations(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	ctx := context.Background()

	o := models.Order{
		CustomerID: 1,
		Customer:   &models.Customer{Name: "should not be inserted"},
		Amount:     100,
	}
	require.NoError(t, repos.Orders.Create(ctx, &o))

	var n int64
	require.NoError(t, repos.Customers.DB(ctx).Model(&models.Customer{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMembershipLifecycle(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	ctx := context.Background()

	cust := models.Customer{Name: "Wang"}
	require.NoError(t, repos.Customers.Create(ctx, &cust))

	m := models.Membership{CustomerID: cust.ID, Tier: "gold", Points: 10, IsActive: true}
	require.NoError(t, repos.Memberships.CreateForCustomer(ctx, &m))

	reloaded, err := repos.Customers.Get(ctx, cust.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.MembershipID)
	assert.Equal(t, m.ID, *reloaded.MembershipID)

	dup := models.Membership{CustomerID: cust.ID}
	kind, _ := httperr.KindOf(repos.Memberships.CreateForCustomer(ctx, &dup))
	assert.Equal(t, httperr.KindConflict, kind)

	orphan := models.Membership{CustomerID: 999}
	assert.True(t, httperr.IsBusiness(repos.Memberships.CreateForCustomer(ctx, &orphan), "customer_not_found"))

	got, err := repos.Memberships.AddPoints(ctx, m.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Points)

	_, err = repos.Memberships.AddPoints(ctx, m.ID, -26)
	assert.True(t, httperr.IsBusiness(err, "insufficient_points"))

	_, err = repos.Memberships.AddPoints(ctx, 999, 1)
	assert.True(t, httperr.IsBusiness(err, "membership_not_found"))

	require.NoError(t, repos.Memberships.DeleteAndDetach(ctx, m.ID))
	reloaded, err = repos.Customers.Get(ctx, cust.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.MembershipID)
}

func TestAppointmentRowsCarryNames(t *testing.T) {
	db := testutil.NewDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	cust := models.Customer{Name: "Chen"}
	require.NoError(t, repos.Customers.Create(ctx, &cust))
	doc := models.Staff{Name: "Dr. Li", Email: "li@clinic.test", PasswordHash: "x", Role: "doctor", IsActive: true}
	require.NoError(t, repos.Staff.Create(ctx, &doc))

	at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ap := models.Appointment{
			CustomerID:  cust.ID,
			StaffID:     doc.ID,
			ProjectID:   77,
			ScheduledAt: at.Add(time.Duration(i) * time.Hour),
			Status:      "pending",
		}
		require.NoError(t, repos.Appointments.Create(ctx, &ap))
	}

	page, err := repos.Appointments.ListRows(ctx, pagination.Params{Page: 1, Limit: 2},
		Where("appointments.staff_id = ?", doc.ID))
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Chen", page.Data[0].CustomerName)
	assert.Equal(t, "Dr. Li", page.Data[0].StaffName)
	assert.Equal(t, "", page.Data[0].ProjectName)
	assert.True(t, page.Data[0].ScheduledAt.After(page.Data[1].ScheduledAt))
}

func TestStaffLookups(t *testing.T) {
	repos := NewRepositories(testutil.NewDB(t))
	ctx := context.Background()

	s := models.Staff{Name: "A", Email: "a@clinic.test", PasswordHash: "h", Role: "admin", IsActive: true}
	require.NoError(t, repos.Staff.Create(ctx, &s))

	taken, err := repos.Staff.EmailTaken(ctx, "a@clinic.test", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.Staff.EmailTaken(ctx, "a@clinic.test", s.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, repos.Staff.UpdatePassword(ctx, s.ID, "h2"))
	got, err := repos.Staff.FindActiveByEmail(ctx, "a@clinic.test")
	require.NoError(t, err)
	assert.Equal(t, "h2", got.PasswordHash)

	assert.True(t, httperr.IsBusiness(repos.Staff.UpdatePassword(ctx, 99, "h"), "staff_not_found"))
}
