package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"spiceshop/internal/notify"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// SendContactMessage relays the contact form to the admin inbox and sends
// the shopper an acknowledgement. Unlike order notification this endpoint
// depends entirely on the mail provider, so a missing key fails the call
// outright.
func SendContactMessage(mailer notify.Mailer, adminEmail, shopName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /contact"
		defer handlePanic(c, route)

		if mailer == nil {
			log.Printf("[%s] RESEND_API_KEY is not configured", route)
			respondWithError(c, http.StatusInternalServerError, route, "email provider not configured")
			return
		}

		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "name, email and message are required")
			return
		}

		name := strings.TrimSpace(req.Name)
		email := strings.TrimSpace(req.Email)
		body := notify.ContactMessageHTML(name, email, strings.TrimSpace(req.Phone), req.Message)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		var failures int
		if adminEmail != "" {
			err := mailer.Send(ctx, notify.Message{
				To:      []string{adminEmail},
				Subject: fmt.Sprintf("New contact form: %s", name),
				HTML:    body,
			})
			if err != nil {
				log.Printf("[%s] admin notification failed: %v", route, err)
				failures++
			}
		} else {
			log.Printf("[%s] ADMIN_EMAIL not configured, skipping admin notification", route)
		}

		err := mailer.Send(ctx, notify.Message{
			To:      []string{email},
			Subject: fmt.Sprintf("Thanks for contacting %s, %s", shopName, name),
			HTML:    fmt.Sprintf("<p>Hi %s,</p><p>Thanks for reaching out. We've received your message and will get back to you soon.</p><hr />%s", name, body),
		})
		if err != nil {
			log.Printf("[%s] acknowledgement failed: %v", route, err)
			failures++
		}

		if failures > 0 && (adminEmail == "" || failures == 2) {
			respondWithError(c, http.StatusInternalServerError, route, "could not send message, please try again")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
