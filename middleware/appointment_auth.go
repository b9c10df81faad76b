package middleware

import (
	"net/http"
	"strings"

	"careflow/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentAuthMiddleware guards the post-payment appointment endpoints.
// The bearer token is the access token minted at checkout completion; its
// subject must match the appointment being accessed.
func AppointmentAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		appointmentID, err := utils.ExtractAppointmentID(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if appointmentID != c.Param("appointmentID") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not grant access to this appointment"})
			return
		}

		c.Set("appointmentID", appointmentID)
		c.Next()
	}
}
