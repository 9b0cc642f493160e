package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spiceshop/internal/models"
	"spiceshop/internal/retry"
)

type findOrdersRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Pincode string `json:"pincode"`
	Start   int64  `json:"start"`
	Limit   int64  `json:"limit"`
}

// FindOrders looks up orders by contact email, newest first. It serves
// shoppers who checked out without an account and therefore have no
// authenticated history.
func FindOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/find"
		defer handlePanic(c, route)

		var req findOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		start, limit := sanitizeRange(req.Start, req.Limit)

		filter := bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))}
		if pincode := strings.TrimSpace(req.Pincode); pincode != "" {
			filter["pincode"] = pincode
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip(start).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders := make([]models.Order, 0)
		err := retry.Do(ctx, func() error {
			cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
			if err != nil {
				return err
			}
			defer cursor.Close(ctx)

			orders = orders[:0]
			return cursor.All(ctx, &orders)
		}, retry.Always)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not fetch orders, please try again")
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
