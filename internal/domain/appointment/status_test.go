package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

func TestTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		action  func(*models.Appointment) error
		want    Status
		wantErr bool
	}{
		{"confirm pending", StatusPending, Confirm, StatusConfirmed, false},
		{"confirm confirmed", StatusConfirmed, Confirm, StatusConfirmed, true},
		{"complete confirmed", StatusConfirmed, Complete, StatusCompleted, false},
		{"complete pending", StatusPending, Complete, StatusPending, true},
		{"cancel pending", StatusPending, Cancel, StatusCancelled, false},
		{"cancel confirmed", StatusConfirmed, Cancel, StatusCancelled, false},
		{"cancel completed", StatusCompleted, Cancel, StatusCompleted, true},
		{"cancel cancelled", StatusCancelled, Cancel, StatusCancelled, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ap := &models.Appointment{Status: string(tc.from)}
			err := tc.action(ap)
			if tc.wantErr {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, string(tc.want), ap.Status)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}
