package middleware

import (
	"net/http"

	"slotbook/models"

	"github.com/gin-gonic/gin"
)

// RoleContextKey is where the declared role is stored on the gin context.
const RoleContextKey = "scheduleRole"

// RequireRole reads the declared role from the X-Schedule-Role header and
// rejects anything other than owner or colleague. This is a declaration, not
// authentication.
func RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(c.GetHeader("X-Schedule-Role"))

		switch role {
		case models.RoleOwner, models.RoleColleague:
			c.Set(RoleContextKey, role)
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid or missing 'X-Schedule-Role' header. Expected 'owner' or 'colleague'.",
			})
		}
	}
}

// ActingRole returns the role set by RequireRole.
func ActingRole(c *gin.Context) models.Role {
	return c.MustGet(RoleContextKey).(models.Role)
}
