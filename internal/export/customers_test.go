package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

func TestCustomersWorkbook(t *testing.T) {
	referrer := uint(1)
	customers := []models.Customer{
		{ID: 1, Name: "Zhang Wei", Phone: "13800000001", Source: "walk_in", CreatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)},
		{ID: 2, Name: "Li Na", Age: 31, ReferrerID: &referrer, CreatedAt: time.Date(2026, 1, 3, 3, 4, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, Customers(&buf, customers, time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(CustomersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, customerHeaders, rows[0])
	assert.Equal(t, "Zhang Wei", rows[1][1])
	assert.Equal(t, "2026-01-02 03:04", rows[1][15])
	assert.Equal(t, "31", rows[2][3])
	assert.Equal(t, "1", rows[2][14])
}

func TestCustomersEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Customers(&buf, nil, time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(CustomersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
