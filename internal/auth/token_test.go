package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

var issuedAt = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTokens() *TokenManager {
	return NewTokenManager(Config{Secret: "test-secret", TokenTTL: time.Hour}).
		WithClock(fixedClock(issuedAt))
}

func TestIssueThenValidate(t *testing.T) {
	tm := newTokens()

	raw, err := tm.Issue(Identity{StaffID: 7, Email: "ana@clinic.test", Role: "doctor"})
	require.NoError(t, err)

	id, err := tm.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, Identity{StaffID: 7, Email: "ana@clinic.test", Role: "doctor"}, id)
}

func TestValidateAfterExpiry(t *testing.T) {
	tm := newTokens()
	raw, err := tm.Issue(Identity{StaffID: 7, Role: "admin"})
	require.NoError(t, err)

	_, err = tm.WithClock(fixedClock(issuedAt.Add(59 * time.Minute))).Validate(raw)
	assert.NoError(t, err)

	_, err = tm.WithClock(fixedClock(issuedAt.Add(2 * time.Hour))).Validate(raw)
	assert.ErrorIs(t, err, httperr.ErrUnauthenticated)
}

func TestPayloadCarriesOnlyIdentity(t *testing.T) {
	raw, err := newTokens().Issue(Identity{StaffID: 3, Email: "x@clinic.test", Role: "nurse"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"sub", "email", "role", "iat", "exp"}, keys)
	assert.Equal(t, float64(3), claims["sub"])
}

func TestValidateRejects(t *testing.T) {
	tm := newTokens()
	good, err := tm.Issue(Identity{StaffID: 1, Role: "admin"})
	require.NoError(t, err)

	other := NewTokenManager(Config{Secret: "another-secret"}).WithClock(fixedClock(issuedAt))
	forged, err := other.Issue(Identity{StaffID: 1, Role: "admin"})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		StaffID:   1,
		Role:      "admin",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 1, "role": "admin"})
	withoutExpiry, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not.a.token",
		"wrong secret":   forged,
		"alg none":       unsigned,
		"no expiry":      withoutExpiry,
		"tampered":       good[:strings.LastIndex(good, ".")] + ".AAAA",
		"string subject": signMap(t, jwt.MapClaims{"sub": "1", "exp": issuedAt.Add(time.Hour).Unix()}),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Validate(raw)
			assert.ErrorIs(t, err, httperr.ErrUnauthenticated)
		})
	}
}

func signMap(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, NewTokenManager(Config{Secret: "s"}).TTL())
}
