package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

// Identity is what a token asserts about its bearer.
type Identity struct {
	StaffID uint   `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// Claims is the token payload: sub, email, role, iat and exp, nothing else.
type Claims struct {
	StaffID   uint             `json:"sub"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	IssuedAt  *jwt.NumericDate `json:"iat"`
	ExpiresAt *jwt.NumericDate `json:"exp"`
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return c.IssuedAt, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c Claims) GetIssuer() (string, error)                   { return "", nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

func (c Claims) GetSubject() (string, error) {
	return strconv.FormatUint(uint64(c.StaffID), 10), nil
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(cfg Config) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.ttl(),
		now:    time.Now,
	}
}

// WithClock returns a copy of m that reads time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(id Identity) (string, error) {
	issuedAt := m.now()

	claims := Claims{
		StaffID:   id.StaffID,
		Email:     id.Email,
		Role:      id.Role,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate checks signature, algorithm and expiry. Every failure is
// reported as ErrUnauthenticated.
func (m *TokenManager) Validate(raw string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.StaffID == 0 {
		return Identity{}, httperr.ErrUnauthenticated
	}

	return Identity{
		StaffID: claims.StaffID,
		Email:   claims.Email,
		Role:    claims.Role,
	}, nil
}
