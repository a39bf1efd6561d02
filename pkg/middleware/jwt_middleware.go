package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"pottypal/pkg/utils"
)

func JWTAuthMiddleware() gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Pass user information to the next handler
		c.Set("user_id", claims.UserID)
		c.Set("Role", claims.Role)
		c.Set("caregiver_child_id", claims.ChildID)
		c.Next()
	}
}

// CaregiverMiddleware guards routes that resolve requests or manage the
// catalog. It requires a caregiver-mode token scoped to the child in the
// route, so a verified passcode for one child grants nothing on another.
func CaregiverMiddleware() gin.HandlerFunc {

	return func(c *gin.Context) {
		if c.GetString("Role") != utils.RoleCaregiver {
			utils.RespondError(c, http.StatusForbidden, "Caregiver mode required")
			c.Abort()
			return
		}

		if childID := c.Param("childId"); childID != "" && childID != c.GetString("caregiver_child_id") {
			utils.RespondError(c, http.StatusForbidden, "Caregiver mode is scoped to another child")
			c.Abort()
			return
		}

		c.Next()
	}
}
