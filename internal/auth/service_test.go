package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-crm/internal/auth"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/testutil"
)

func newService(t *testing.T) (*auth.Service, *repository.StaffRepository) {
	t.Helper()
	repo := repository.NewStaffRepository(testutil.NewDB(t))
	tokens := auth.NewTokenManager(auth.Config{Secret: "svc-secret", TokenTTL: time.Hour})
	return auth.NewService(repo, tokens, auth.NewHasher(bcrypt.MinCost)), repo
}

func register(t *testing.T, svc *auth.Service, email, role string) *models.Staff {
	t.Helper()
	st, err := svc.Register(context.Background(), auth.RegisterInput{
		Name:     "Staff " + role,
		Email:    email,
		Role:     role,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	return st
}

func TestRegisterHashesAndNormalizes(t *testing.T) {
	svc, _ := newService(t)

	st := register(t, svc, "  Lin@Clinic.Test ", "doctor")

	assert.Equal(t, "lin@clinic.test", st.Email)
	assert.Equal(t, "doctor", st.Role)
	assert.True(t, st.IsActive)
	assert.NotEqual(t, "s3cret-pass", st.PasswordHash)
	assert.True(t, svc.Hasher().Matches(st.PasswordHash, "s3cret-pass"))
}

func TestRegisterRejects(t *testing.T) {
	svc, _ := newService(t)
	register(t, svc, "dup@clinic.test", "")

	_, err := svc.Register(context.Background(), auth.RegisterInput{Name: "x", Email: "DUP@clinic.test", Password: "p"})
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindConflict, kind)

	_, err = svc.Register(context.Background(), auth.RegisterInput{Name: "x", Email: "r@clinic.test", Role: "owner", Password: "p"})
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))

	_, err = svc.Register(context.Background(), auth.RegisterInput{Name: "x", Email: "nope", Password: "p"})
	assert.True(t, httperr.IsBusiness(err, "invalid_email"))
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	st := register(t, svc, "mei@clinic.test", "nurse")

	res, err := svc.Login(context.Background(), "MEI@clinic.test", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, auth.StaffSummary{ID: st.ID, Name: st.Name, Email: st.Email, Role: "nurse"}, res.Staff)

	_, err = svc.Login(context.Background(), "mei@clinic.test", "wrong")
	assert.ErrorIs(t, err, httperr.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@clinic.test", "s3cret-pass")
	assert.ErrorIs(t, err, httperr.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveStaff(t *testing.T) {
	svc, repo := newService(t)
	st := register(t, svc, "old@clinic.test", "consultant")

	st.IsActive = false
	require.NoError(t, repo.Save(context.Background(), st))

	_, err := svc.Login(context.Background(), "old@clinic.test", "s3cret-pass")
	assert.ErrorIs(t, err, httperr.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService(t)
	st := register(t, svc, "zhou@clinic.test", "admin")
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, st.ID, "bad", "new-pass"), httperr.ErrUnauthenticated)
	assert.ErrorIs(t, svc.ChangePassword(ctx, 999, "s3cret-pass", "new-pass"), httperr.ErrUnauthenticated)

	require.NoError(t, svc.ChangePassword(ctx, st.ID, "s3cret-pass", "new-pass"))

	_, err := svc.Login(ctx, "zhou@clinic.test", "s3cret-pass")
	assert.Error(t, err)
	_, err = svc.Login(ctx, "zhou@clinic.test", "new-pass")
	assert.NoError(t, err)
}

func TestApplyPasswordIsConditional(t *testing.T) {
	svc, _ := newService(t)
	st := &models.Staff{PasswordHash: "stored"}

	require.NoError(t, svc.ApplyPassword(st, nil))
	assert.Equal(t, "stored", st.PasswordHash)

	empty := ""
	require.NoError(t, svc.ApplyPassword(st, &empty))
	assert.Equal(t, "stored", st.PasswordHash)

	pw := "brand-new"
	require.NoError(t, svc.ApplyPassword(st, &pw))
	assert.NotEqual(t, "stored", st.PasswordHash)
	assert.True(t, svc.Hasher().Matches(st.PasswordHash, pw))
}

func TestProfileNotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Profile(context.Background(), 42)
	assert.True(t, httperr.IsBusiness(err, "staff_not_found"))
}
