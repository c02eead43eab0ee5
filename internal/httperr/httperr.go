package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/logging"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// messages holds the user-visible text for known codes. Login failures share
// one message whatever the cause.
var messages = map[string]string{
	"invalid_credentials": "Invalid email or password.",
	"unauthenticated":     "Authentication required.",
	"forbidden":           "You do not have permission to perform this action.",
	"invalid_id":          "The id must be a positive integer.",
	"invalid_request":     "Invalid request body.",
	"too_many_attempts":   "Too many attempts, try again later.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindInvalidCredentials, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

// Respond maps err onto the error taxonomy. Anything that is not a
// BusinessError is a persistence or programming failure: it is logged and
// surfaced as a generic 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusOf(be.Kind), be.Code, MessageFor(be.Code))
		return
	}

	_ = c.Error(err)
	logging.FromContext(c).WithError(err).WithField("path", c.FullPath()).Error("request failed")
	Internal(c, "internal_error", "Internal server error.")
}
