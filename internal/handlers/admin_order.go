package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spiceshop/internal/models"
)

func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			if !models.ValidStatus(status) {
				respondWithError(c, http.StatusBadRequest, route, "invalid status filter")
				return
			}
			filter["status"] = status
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			findOptions.SetSkip((page - 1) * limit).SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through its lifecycle. Item pricing is
// immutable once persisted; status is the only mutable field, and only
// along a valid transition.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "status is required")
			return
		}
		if !models.ValidStatus(req.Status) {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !models.CanTransition(order.Status, req.Status) {
			respondWithError(c, http.StatusBadRequest, route,
				"invalid status transition: "+order.Status+" -> "+req.Status)
			return
		}

		// last write wins between concurrent admin edits; the single-admin
		// console makes an optimistic lock unnecessary here
		_, err = db.Collection("orders").UpdateByID(ctx, orderID, bson.M{
			"$set": bson.M{"status": req.Status},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		order.Status = req.Status
		c.JSON(http.StatusOK, order)
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
