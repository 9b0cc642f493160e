package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spiceshop/internal/models"
)

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Pincode *string `json:"pincode"`
}

// GetMe returns the authenticated customer's profile. The userId is
// set by the UserAuth middleware.
func GetMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userId").(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var customer models.Customer
		if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": userID}).Decode(&customer); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			log.Println("[PROFILE] [ERROR] fetch failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": customer})
	}
}

// UpdateProfile patches the checkout prefill fields. Email and role are
// not editable through this endpoint.
func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userId").(primitive.ObjectID)

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			update["name"] = name
		}
		if req.Phone != nil {
			update["phone"] = strings.TrimSpace(*req.Phone)
		}
		if req.Address != nil {
			update["address"] = strings.TrimSpace(*req.Address)
		}
		if req.Pincode != nil {
			update["pincode"] = strings.TrimSpace(*req.Pincode)
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		update["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("customers").UpdateByID(ctx, userID, bson.M{"$set": update})
		if err != nil {
			log.Println("[PROFILE] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		var customer models.Customer
		if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": userID}).Decode(&customer); err != nil {
			log.Println("[PROFILE] [ERROR] reload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": customer})
	}
}
