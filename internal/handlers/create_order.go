package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spiceshop/internal/checkout"
	"spiceshop/internal/middleware"
	"spiceshop/internal/pricing"
)

type createOrderItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// createOrderRequest is the unpriced order intent. Price-shaped fields sent
// by older clients are ignored during binding; coupon_applied is bound but
// recomputed server-side.
type createOrderRequest struct {
	CustomerName          string                   `json:"customer_name" binding:"required"`
	Phone                 string                   `json:"phone" binding:"required"`
	Email                 string                   `json:"email" binding:"required,email"`
	Address               string                   `json:"address" binding:"required"`
	Pincode               string                   `json:"pincode" binding:"required"`
	Items                 []createOrderItemRequest `json:"items" binding:"required"`
	PaymentMethod         string                   `json:"payment_method"`
	UserID                string                   `json:"user_id"`
	FreeDeliveryFor50Plus bool                     `json:"freeDeliveryFor50Plus"`
	CouponCode            string                   `json:"coupon_code"`
	CouponApplied         bool                     `json:"coupon_applied"`
}

func CreateOrder(assembler *checkout.Assembler, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		userID, err := middleware.UserIDFromBearer(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			log.Printf("[%s] token validation failed: %v", route, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if userID == nil && strings.TrimSpace(req.UserID) != "" {
			// guest request carrying a remembered id; accepted as-is only
			// because no credential was presented
			if parsed, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.UserID)); err == nil {
				userID = &parsed
			}
		}

		paymentMethod := strings.TrimSpace(req.PaymentMethod)
		if paymentMethod == "" {
			paymentMethod = "cod"
		}

		items := make([]checkout.IntentItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, checkout.IntentItem{
				ProductID: strings.TrimSpace(item.ID),
				Size:      strings.TrimSpace(item.Size),
				Quantity:  item.Quantity,
			})
		}

		intent := checkout.OrderIntent{
			CustomerName:          strings.TrimSpace(req.CustomerName),
			Phone:                 strings.TrimSpace(req.Phone),
			Email:                 strings.TrimSpace(req.Email),
			Address:               strings.TrimSpace(req.Address),
			Pincode:               strings.TrimSpace(req.Pincode),
			Items:                 items,
			PaymentMethod:         paymentMethod,
			UserID:                userID,
			FreeDeliveryRequested: req.FreeDeliveryFor50Plus,
			CouponCode:            strings.TrimSpace(req.CouponCode),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		order, err := assembler.Create(ctx, intent)
		if err != nil {
			var invalid checkout.InvalidOrderError
			if errors.As(err, &invalid) {
				respondWithError(c, http.StatusBadRequest, route, invalid.Reason)
				return
			}
			var notFound pricing.ProductNotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "Product not found",
					"productId": notFound.ProductID.Hex(),
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "could not create order, please try again")
			return
		}

		if order.UserID != nil {
			log.Printf("[%s] order %s created for user %s", route, order.ID.Hex(), order.UserID.Hex())
		} else {
			log.Printf("[%s] guest order %s created", route, order.ID.Hex())
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order":   order,
		})
	}
}
