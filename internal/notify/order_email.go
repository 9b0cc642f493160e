package notify

import (
	"fmt"
	"strings"

	"spiceshop/internal/models"
)

// OrderNotifier turns a freshly persisted order into a customer
// confirmation and an optional admin alert, both queued best-effort.
type OrderNotifier struct {
	Dispatcher *Dispatcher
	AdminEmail string
}

func (n *OrderNotifier) OrderCreated(order models.Order) {
	if n.Dispatcher == nil {
		return
	}

	if order.Email != "" {
		n.Dispatcher.Enqueue(Message{
			To:      []string{order.Email},
			Subject: fmt.Sprintf("Order Confirmation - %s", order.ID.Hex()),
			HTML:    customerConfirmationHTML(order),
		})
	}

	if n.AdminEmail != "" {
		n.Dispatcher.Enqueue(Message{
			To:      []string{n.AdminEmail},
			Subject: fmt.Sprintf("New order from %s", order.CustomerName),
			HTML:    adminAlertHTML(order),
		})
	}
}

func itemRowsHTML(items []models.OrderItem) string {
	var b strings.Builder
	for _, item := range items {
		lineTotal := item.UnitPrice * float64(item.Quantity)
		fmt.Fprintf(&b, `<tr><td>%s %s</td><td align="center">%d</td><td align="right">₹%.2f</td><td align="right">₹%.2f</td></tr>`,
			item.Name, item.Size, item.Quantity, item.UnitPrice, lineTotal)
	}
	return b.String()
}

func customerConfirmationHTML(order models.Order) string {
	payment := "Online Payment"
	if order.PaymentMethod == "cod" {
		payment = "Cash on Delivery"
	}

	return fmt.Sprintf(`<h2>Thank you for your order, %s!</h2>
<p><strong>Order ID:</strong> %s<br/><strong>Payment Method:</strong> %s</p>
<table width="100%%" cellpadding="6">
<tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
%s
<tr><td colspan="3" align="right"><strong>Delivery:</strong></td><td align="right">₹%.2f</td></tr>
<tr><td colspan="3" align="right"><strong>Total:</strong></td><td align="right">₹%.2f</td></tr>
</table>
<p>Shipping to: %s, %s</p>`,
		order.CustomerName, order.ID.Hex(), payment,
		itemRowsHTML(order.Items), order.DeliveryFee, order.TotalPrice,
		order.Address, order.Pincode)
}

func adminAlertHTML(order models.Order) string {
	return fmt.Sprintf(`<h2>New order %s</h2>
<p><strong>Customer:</strong> %s (%s, %s)</p>
<p><strong>Address:</strong> %s, %s</p>
<table width="100%%" cellpadding="6">
<tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
%s
<tr><td colspan="3" align="right"><strong>Total:</strong></td><td align="right">₹%.2f</td></tr>
</table>
<p>Payment method: %s</p>`,
		order.ID.Hex(), order.CustomerName, order.Phone, order.Email,
		order.Address, order.Pincode,
		itemRowsHTML(order.Items), order.TotalPrice, order.PaymentMethod)
}

// ContactMessageHTML renders a contact form submission for the admin inbox.
func ContactMessageHTML(name, email, phone, message string) string {
	if phone == "" {
		phone = "-"
	}
	return fmt.Sprintf(`<h2>New contact form submission</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`, name, email, phone, strings.ReplaceAll(message, "\n", "<br />"))
}
