package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.NotNil(t, Location("Mars/Olympus"))
	assert.False(t, IsValid(""))
}

func TestRangeWholeDays(t *testing.T) {
	c := NewClock("UTC")

	start, end, err := c.Range("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestRangeTimestamps(t *testing.T) {
	c := NewClock("UTC")

	start, end, err := c.Range("2026-03-01T08:00:00Z", "2026-03-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, end.Sub(start))
}

func TestRangeRejects(t *testing.T) {
	c := NewClock("UTC")

	_, _, err := c.Range("", "2026-03-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))

	_, _, err = c.Range("2026-03-05", "2026-03-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))

	_, _, err = c.Range("yesterday", "2026-03-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestNowUsesClinicZone(t *testing.T) {
	fixed := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	c := NewClock("UTC").WithNow(func() time.Time { return fixed })
	assert.True(t, fixed.Equal(c.Now()))
	assert.Equal(t, time.UTC, c.Now().Location())
}
