package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spiceshop/internal/pricing"
)

type validatePromoRequest struct {
	Code string `json:"code"`
}

// ValidatePromo is the standalone promo check the checkout form calls
// before submission. The order pipeline re-validates independently.
func ValidatePromo(validator pricing.PromoValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /promo/validate"
		defer handlePanic(c, route)

		var req validatePromoRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "Code is required"})
			return
		}

		valid, err := validator.Validate(req.Code)
		if err != nil {
			if errors.Is(err, pricing.ErrPromoNotConfigured) {
				log.Printf("[%s] PROMO_CODE is not configured", route)
			} else {
				log.Printf("[%s] validation failed: %v", route, err)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "message": "Promo validation unavailable"})
			return
		}

		message := "Promo invalid"
		if valid {
			message = "Promo valid"
		}
		c.JSON(http.StatusOK, gin.H{"valid": valid, "message": message})
	}
}
