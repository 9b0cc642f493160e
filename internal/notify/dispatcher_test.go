package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spiceshop/internal/models"
)

type mockMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockMailer) messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

func testOrder() models.Order {
	id := primitive.NewObjectID()
	return models.Order{
		ID:           id,
		CustomerName: "Asha",
		Email:        "asha@example.com",
		Address:      "12 Spice Lane",
		Pincode:      "560001",
		Items: []models.OrderItem{
			{Name: "Saffron", Size: "10g", UnitPrice: 140, Quantity: 2},
		},
		DeliveryFee:   100,
		TotalPrice:    380,
		PaymentMethod: "cod",
		Status:        models.StatusPending,
	}
}

func TestDispatcherDeliversQueuedMessages(t *testing.T) {
	mailer := &mockMailer{}
	d := NewDispatcher(mailer, 8)
	d.Start()

	d.Enqueue(Message{To: []string{"a@example.com"}, Subject: "one"})
	d.Enqueue(Message{To: []string{"b@example.com"}, Subject: "two"})
	d.Close()

	msgs := mailer.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "one", msgs[0].Subject)
	assert.Equal(t, "two", msgs[1].Subject)
}

func TestDispatcherSwallowsSendFailures(t *testing.T) {
	mailer := &mockMailer{err: errors.New("provider down")}
	d := NewDispatcher(mailer, 8)
	d.Start()

	// must not panic or surface the error anywhere
	d.Enqueue(Message{To: []string{"a@example.com"}, Subject: "doomed"})
	d.Close()

	assert.Empty(t, mailer.messages())
}

func TestDispatcherWithoutMailerDropsQuietly(t *testing.T) {
	d := NewDispatcher(nil, 2)
	d.Start()
	d.Enqueue(Message{Subject: "nowhere to go"})
	d.Close()
}

func TestDispatcherEnqueueAfterCloseDropsQuietly(t *testing.T) {
	mailer := &mockMailer{}
	d := NewDispatcher(mailer, 2)
	d.Start()
	d.Close()

	d.Enqueue(Message{To: []string{"a@example.com"}, Subject: "late"})
	d.Close()

	assert.Empty(t, mailer.messages())
}

func TestOrderNotifierQueuesCustomerAndAdminMail(t *testing.T) {
	mailer := &mockMailer{}
	d := NewDispatcher(mailer, 8)
	d.Start()

	n := &OrderNotifier{Dispatcher: d, AdminEmail: "admin@example.com"}
	n.OrderCreated(testOrder())
	d.Close()

	msgs := mailer.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{"asha@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"admin@example.com"}, msgs[1].To)
	assert.Contains(t, msgs[0].HTML, "Saffron")
	assert.Contains(t, msgs[0].HTML, "380.00")
}

func TestOrderNotifierSkipsAdminWhenUnconfigured(t *testing.T) {
	mailer := &mockMailer{}
	d := NewDispatcher(mailer, 8)
	d.Start()

	n := &OrderNotifier{Dispatcher: d}
	n.OrderCreated(testOrder())
	d.Close()

	require.Len(t, mailer.messages(), 1)
}
