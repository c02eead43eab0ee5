package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/ratelimit"
	"github.com/BruksfildServices01/clinic-crm/internal/logging"
)

// LoginThrottle rejects a client once it has failed maxFailures logins inside
// window. A successful login clears the count. Counter errors let the
// request through.
func LoginThrottle(counter ratelimit.Counter, maxFailures int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxFailures <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := c.ClientIP()
		log := logging.FromContext(c).WithField("client_ip", key)

		n, err := counter.Count(ctx, key)
		if err != nil {
			log.WithError(err).Warn("login throttle unavailable")
		} else if n >= int64(maxFailures) {
			c.Header("Retry-After", retryAfter(window))
			abortWith(c, httperr.ErrTooManyAttempts)
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			if _, err := counter.Incr(ctx, key, window); err != nil {
				log.WithError(err).Warn("login throttle unavailable")
			}
		case http.StatusOK:
			if err := counter.Reset(ctx, key); err != nil {
				log.WithError(err).Warn("login throttle unavailable")
			}
		}
	}
}

func retryAfter(window time.Duration) string {
	secs := int(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
