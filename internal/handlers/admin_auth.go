package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"spiceshop/internal/models"
)

// AdminLogin authenticates against the customers collection but only
// accepts accounts carrying the admin role.
func AdminLogin(db *mongo.Database, jwtSecret string, accessTTL, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Customer
		if err := db.Collection("customers").FindOne(ctx, bson.M{
			"email": email,
			"role":  "admin",
		}).Decode(&admin); err != nil {
			if err != mongo.ErrNoDocuments {
				log.Println("[ADMIN_AUTH] [ERROR] login lookup failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if !admin.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "user is inactive"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		tokens, err := issueTokens(c, db, admin.ID, admin.Email, "admin", jwtSecret, accessTTL, refreshTTL)
		if err != nil {
			return
		}

		log.Println("[ADMIN_AUTH] [INFO] admin login succeeded:", admin.Email)
		c.JSON(http.StatusOK, gin.H{
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
			"expiresIn":    tokens.ExpiresIn,
			"user": loginResponseUser{
				ID:    admin.ID.Hex(),
				Name:  admin.Name,
				Email: admin.Email,
			},
		})
	}
}
