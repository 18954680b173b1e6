package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"subaudit/internal/entity"
	"subaudit/internal/usecase"
)

const userKey = "currentUser"

// Identity resolves the X-User-ID header (set by the gateway in front of
// this service) to a stored account and puts it on the request context.
// Requests without a resolvable identity get 401.
func Identity(ur usecase.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user id"})
			return
		}
		u, err := ur.GetUserByID(c.Request.Context(), strfmt.UUID(id.String()))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the resolved user is an administrator
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || u.Role != entity.RoleAdministrator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator role required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by Identity, nil when absent
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
