package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/invento/backend/internal/domain/identity"
	"github.com/invento/backend/internal/interfaces/http/dto"
)

// RequireRole enforces role-based access: read-only methods are open to any
// authenticated role, writes require admin.
func RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetJWTRole(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required.")
			return
		}

		if !identity.CanAccess(identity.Role(role), identity.IsSafeMethod(c.Request.Method)) {
			abortForbidden(c, "You do not have permission to perform this action.")
			return
		}

		c.Next()
	}
}

// RequireAdmin restricts an endpoint to admin users regardless of method
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetJWTRole(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required.")
			return
		}

		if identity.Role(role) != identity.RoleAdmin {
			abortForbidden(c, "Admin access required.")
			return
		}

		c.Next()
	}
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, message, GetRequestID(c)))
}
