package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserAuth requires a valid user token and injects the userId into the
// context.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := UserIDFromBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if userID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		c.Set("userId", *userID)
		c.Next()
	}
}
