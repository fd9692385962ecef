package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/api/internal/models"
	"storefront/api/internal/security"
)

// RequireRole gates a route on the role hierarchy via the authorization
// predicate. It must run after Auth.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		if err := security.Authorize(user.Role, required); err != nil {
			if errors.Is(err, security.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
