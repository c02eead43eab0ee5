package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
)

// pathID parses a positive integer path parameter. On failure it writes a
// 400 and returns false.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.ErrInvalidID)
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// actorID is the authenticated staff id, or 0 on public routes.
func actorID(c *gin.Context) uint {
	if id, ok := middleware.IdentityFrom(c); ok {
		return id.StaffID
	}
	return 0
}

// queryBool reads "true"/"false"; anything else is treated as absent.
func queryBool(c *gin.Context, key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

func queryLower(c *gin.Context, key string) string {
	return strings.ToLower(strings.TrimSpace(c.Query(key)))
}
