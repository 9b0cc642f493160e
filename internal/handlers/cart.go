package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"spiceshop/internal/cart"
)

type addCartItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Size      string  `json:"size"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func cartSession(c *gin.Context) (string, bool) {
	session := strings.TrimSpace(c.GetHeader("X-Session-ID"))
	if session == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return "", false
	}
	return session, true
}

func cartJSON(c *gin.Context, current cart.Cart) {
	c.JSON(http.StatusOK, gin.H{
		"items": current.Items,
		"total": current.Total(),
	})
}

func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		session, ok := cartSession(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		current, err := store.Get(ctx, session)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}
		cartJSON(c, current)
	}
}

func AddCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		session, ok := cartSession(c)
		if !ok {
			return
		}

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		current, err := store.AddItem(ctx, session, cart.Line{
			ProductID: strings.TrimSpace(req.ProductID),
			Size:      strings.TrimSpace(req.Size),
			Name:      strings.TrimSpace(req.Name),
			UnitPrice: req.UnitPrice,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}
		cartJSON(c, current)
	}
}

func UpdateCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart/items/:key"
		defer handlePanic(c, route)

		session, ok := cartSession(c)
		if !ok {
			return
		}

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		current, err := store.UpdateQuantity(ctx, session, c.Param("key"), req.Quantity)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}
		cartJSON(c, current)
	}
}

func RemoveCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:key"
		defer handlePanic(c, route)

		session, ok := cartSession(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		current, err := store.RemoveItem(ctx, session, c.Param("key"))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}
		cartJSON(c, current)
	}
}

// ClearCart empties the session's cart, called by the client after a
// successful order submission.
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		session, ok := cartSession(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := store.Clear(ctx, session); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
