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
	"go.mongodb.org/mongo-driver/mongo/options"

	"spiceshop/internal/models"
)

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// GetProductReviews lists reviews for a product, newest first.
func GetProductReviews(db *mongo.Database) gin.HandlerFunc {
	const route = "GET /products/:id/reviews"

	return func(c *gin.Context) {
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("reviews").Find(ctx, bson.M{"productId": productID}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		reviews := []models.Review{}
		if err := cursor.All(ctx, &reviews); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}

// CreateProductReview stores a review by the authenticated customer.
func CreateProductReview(db *mongo.Database) gin.HandlerFunc {
	const route = "POST /products/:id/reviews"

	return func(c *gin.Context) {
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "rating must be between 1 and 5")
			return
		}

		userID := c.MustGet("userId").(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("products").CountDocuments(ctx, bson.M{
			"_id":       productID,
			"isDeleted": bson.M{"$ne": true},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		var customer models.Customer
		author := "Customer"
		if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": userID}).Decode(&customer); err == nil {
			if name := strings.TrimSpace(customer.Name); name != "" {
				author = name
			}
		} else if err != mongo.ErrNoDocuments {
			log.Printf("[%s] [ERROR] author lookup failed: %v", route, err)
		}

		review := models.Review{
			ProductID: productID,
			UserID:    &userID,
			Author:    author,
			Rating:    req.Rating,
			Comment:   strings.TrimSpace(req.Comment),
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("reviews").InsertOne(ctx, review)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		review.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}
