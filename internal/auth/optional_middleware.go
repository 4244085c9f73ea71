package auth

import (
	"strings"

	"pawhome/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware inspects for a token and sets the userID and role
// if present and valid, but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := jwt.ParseToken(parts[1]); err == nil {
					c.Set("userID", claims.UserID)
					c.Set("role", claims.Role)
				}
			}
		}
		c.Next()
	}
}
