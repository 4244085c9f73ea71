package auth

import (
	"net/http"

	"pawhome/backend/internal/database"
	"pawhome/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// StaffMiddleware creates a gin middleware to check for a privileged role
// (admin or shelter_staff). It must be used AFTER the standard AuthMiddleware.
// The role is re-read from the database so that a demoted account cannot
// keep acting on a previously issued token.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "Authenticated user not found"})
			return
		}

		if !user.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Staff access required"})
			return
		}

		c.Next()
	}
}
