// Package notify handles outbound email: a Resend-backed mailer guarded by
// a circuit breaker, and a fire-and-forget dispatcher that keeps delivery
// failures away from the order-creation path.
package notify

import (
	"context"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/sony/gobreaker/v2"
)

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers a single message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ResendMailer sends through the Resend API. The breaker opens after a few
// consecutive provider failures so a down provider stops consuming the
// dispatcher worker.
type ResendMailer struct {
	client  *resend.Client
	from    string
	breaker *gobreaker.CircuitBreaker[*resend.SendEmailResponse]
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	breaker := gobreaker.NewCircuitBreaker[*resend.SendEmailResponse](gobreaker.Settings{
		Name:        "resend",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &ResendMailer{
		client:  resend.NewClient(apiKey),
		from:    from,
		breaker: breaker,
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	_, err := m.breaker.Execute(func() (*resend.SendEmailResponse, error) {
		return m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
			From:    m.from,
			To:      msg.To,
			Subject: msg.Subject,
			Html:    msg.HTML,
		})
	})
	return err
}
