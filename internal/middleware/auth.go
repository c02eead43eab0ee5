package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-crm/internal/auth"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-crm/internal/httperr"
)

const ContextIdentity = "identity"

type TokenValidator interface {
	Validate(raw string) (auth.Identity, error)
}

// Authenticate requires an "Authorization: Bearer <token>" header and
// attaches the token's identity to the request.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, httperr.ErrUnauthenticated)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWith(c, httperr.ErrUnauthenticated)
			return
		}

		id, err := tokens.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			abortWith(c, httperr.ErrUnauthenticated)
			return
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

// RequireRole admits identities whose role is one of roles. Roles are
// matched exactly; admin is not implied.
func RequireRole(roles ...staff.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}

	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abortWith(c, httperr.ErrUnauthenticated)
			return
		}
		if _, ok := allowed[id.Role]; !ok {
			abortWith(c, httperr.ErrForbidden)
			return
		}
		c.Next()
	}
}

// SelfOrAdmin admits the staff member named by the :param path value, or
// any admin.
func SelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abortWith(c, httperr.ErrUnauthenticated)
			return
		}
		if id.Role == string(staff.RoleAdmin) {
			c.Next()
			return
		}

		target, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || uint(target) != id.StaffID {
			abortWith(c, httperr.ErrForbidden)
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func abortWith(c *gin.Context, err httperr.BusinessError) {
	httperr.Abort(c, httperr.StatusOf(err.Kind), err.Code, httperr.MessageFor(err.Code))
}
