package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

func TestFinalAmountComputed(t *testing.T) {
	got, err := FinalAmount(1000, 150, nil)
	require.NoError(t, err)
	assert.Equal(t, 850.0, got)
}

func TestFinalAmountRoundsToCents(t *testing.T) {
	got, err := FinalAmount(99.99, 33.33, nil)
	require.NoError(t, err)
	assert.Equal(t, 66.66, got)
}

func TestFinalAmountExplicitWins(t *testing.T) {
	explicit := 800.0
	got, err := FinalAmount(1000, 150, &explicit)
	require.NoError(t, err)
	assert.Equal(t, 800.0, got)
}

func TestFinalAmountRejectsBadInput(t *testing.T) {
	_, err := FinalAmount(100, 150, nil)
	assert.True(t, httperr.IsBusiness(err, "discount_exceeds_amount"))

	_, err = FinalAmount(-1, 0, nil)
	assert.True(t, httperr.IsBusiness(err, "negative_amount"))
}

func TestEnums(t *testing.T) {
	assert.True(t, PaymentAlipay.Valid())
	assert.False(t, PaymentMethod("paypal").Valid())

	_, err := ParseStatus("shipped")
	assert.Error(t, err)
	s, err := ParseStatus("refunded")
	assert.NoError(t, err)
	assert.Equal(t, StatusRefunded, s)
}
