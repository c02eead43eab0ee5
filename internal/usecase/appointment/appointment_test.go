package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
	"github.com/BruksfildServices01/clinic-crm/internal/testutil"
)

func TestLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAppointmentRepository(db)
	logger, _ := test.NewNullLogger()
	dispatcher := audit.NewDispatcher(audit.New(db), logger)
	ctx := context.Background()

	ap, err := NewCreateAppointment(repo, dispatcher).Execute(ctx, 1, CreateAppointmentInput{
		CustomerID:  3,
		StaffID:     4,
		ProjectID:   5,
		ScheduledAt: time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", ap.Status)

	_, err = NewCompleteAppointment(repo, dispatcher).Execute(ctx, 1, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	ap, err = NewConfirmAppointment(repo, dispatcher).Execute(ctx, 1, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)

	ap, err = NewCompleteAppointment(repo, dispatcher).Execute(ctx, 1, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", ap.Status)

	_, err = NewCancelAppointment(repo, dispatcher).Execute(ctx, 1, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	stored, err := repo.Get(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", stored.Status)

	require.NoError(t, dispatcher.Close(ctx))
	var actions []string
	require.NoError(t, db.Model(&models.AuditLog{}).Order("id").Pluck("action", &actions).Error)
	assert.Equal(t, []string{"appointment_created", "appointment_confirmed", "appointment_completed"}, actions)
}

func TestCreateRejects(t *testing.T) {
	repo := repository.NewAppointmentRepository(testutil.NewDB(t))
	uc := NewCreateAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), 1, CreateAppointmentInput{CustomerID: 1})
	assert.True(t, httperr.IsBusiness(err, "invalid_scheduled_at"))

	_, err = uc.Execute(context.Background(), 1, CreateAppointmentInput{
		ScheduledAt: time.Now(),
		Status:      "done",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestTransitionNotFound(t *testing.T) {
	repo := repository.NewAppointmentRepository(testutil.NewDB(t))
	_, err := NewCancelAppointment(repo, nil).Execute(context.Background(), 1, 42)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
