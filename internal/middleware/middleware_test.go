package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-crm/internal/auth"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tokens() *auth.TokenManager {
	return auth.NewTokenManager(auth.Config{Secret: "mw-secret", TokenTTL: time.Hour})
}

func bearer(t *testing.T, tm *auth.TokenManager, id uint, role string) string {
	t.Helper()
	raw, err := tm.Issue(auth.Identity{StaffID: id, Email: "s@clinic.test", Role: role})
	require.NoError(t, err)
	return "Bearer " + raw
}

func serve(r *gin.Engine, method, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	tm := tokens()
	r := gin.New()
	r.GET("/me", Authenticate(tm), func(c *gin.Context) {
		id, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, id)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/me", "Bearer nope").Code)

	w := serve(r, "GET", "/me", bearer(t, tm, 5, "doctor"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"email":"s@clinic.test","role":"doctor"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	tm := tokens()
	r := gin.New()
	r.GET("/admin", Authenticate(tm), RequireRole(staff.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/clinical", Authenticate(tm), RequireRole(staff.RoleDoctor, staff.RoleNurse), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/bare", RequireRole(staff.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusForbidden, serve(r, "GET", "/admin", bearer(t, tm, 1, "doctor")).Code)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/admin", bearer(t, tm, 1, "admin")).Code)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/clinical", bearer(t, tm, 1, "nurse")).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "GET", "/clinical", bearer(t, tm, 1, "admin")).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "GET", "/bare", "").Code)
}

func TestSelfOrAdmin(t *testing.T) {
	tm := tokens()
	r := gin.New()
	r.POST("/pw/:id", Authenticate(tm), SelfOrAdmin("id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, "POST", "/pw/4", bearer(t, tm, 4, "consultant")).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "POST", "/pw/5", bearer(t, tm, 4, "consultant")).Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "POST", "/pw/x", bearer(t, tm, 4, "consultant")).Code)
	assert.Equal(t, http.StatusOK, serve(r, "POST", "/pw/5", bearer(t, tm, 1, "admin")).Code)
}

func throttled(counter ratelimit.Counter, status *int) *gin.Engine {
	r := gin.New()
	r.POST("/login", LoginThrottle(counter, 3, time.Minute), func(c *gin.Context) {
		c.Status(*status)
	})
	return r
}

func TestLoginThrottle(t *testing.T) {
	status := http.StatusUnauthorized
	r := throttled(ratelimit.NewMemoryCounter(), &status)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, serve(r, "POST", "/login", "").Code)
	}
	w := serve(r, "POST", "/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "too_many_attempts")
}

func TestLoginThrottleResetsOnSuccess(t *testing.T) {
	status := http.StatusUnauthorized
	r := throttled(ratelimit.NewMemoryCounter(), &status)

	serve(r, "POST", "/login", "")
	serve(r, "POST", "/login", "")

	status = http.StatusOK
	assert.Equal(t, http.StatusOK, serve(r, "POST", "/login", "").Code)

	status = http.StatusUnauthorized
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, serve(r, "POST", "/login", "").Code)
	}
}

type brokenCounter struct{}

func (brokenCounter) Count(context.Context, string) (int64, error) {
	return 0, errors.New("redis down")
}
func (brokenCounter) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis down")
}
func (brokenCounter) Reset(context.Context, string) error { return errors.New("redis down") }

func TestLoginThrottleFailsOpen(t *testing.T) {
	status := http.StatusUnauthorized
	r := throttled(brokenCounter{}, &status)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusUnauthorized, serve(r, "POST", "/login", "").Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://dashboard.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://dashboard.test")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://dashboard.test", w.Header().Get("Access-Control-Allow-Origin"))
}
