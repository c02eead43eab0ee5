package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	ContextLogger   = "logger"

	slowRequest = 500 * time.Millisecond
)

func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "logrus parse level %q: %s\n", level, err.Error())
		} else {
			logger.SetLevel(lvl)
		}
	}
	return logger
}

// Gorm routes gorm's SQL logging through logrus. Record-not-found is
// expected on every 404 path and is not logged.
func Gorm(logger *logrus.Logger) gormlogger.Interface {
	return gormlogger.New(logger, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// RequestLogger tags every request with an id and logs method, path,
// status and latency once the handler chain returns.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, requestID)

		entry := logger.WithField("request_id", requestID)
		c.Set(ContextLogger, entry)

		c.Next()

		latency := time.Since(start)
		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": latency.String(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case c.Writer.Status() >= 500:
			entry.WithFields(fields).Error("request failed")
		case latency > slowRequest:
			entry.WithFields(fields).Warn("slow request")
		default:
			entry.WithFields(fields).Info("request")
		}
	}
}

// FromContext returns the request-scoped entry set by RequestLogger, or the
// standard logger when the middleware is not installed.
func FromContext(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(ContextLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
