// Package checkout converts a client-submitted order intent into a
// persisted, server-priced order. The client never supplies authoritative
// pricing; every line is resolved against the catalog before the single
// insert, so a failed resolution leaves nothing behind.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"spiceshop/internal/models"
	"spiceshop/internal/pricing"
)

// IntentItem is one unpriced order line as the client sent it.
type IntentItem struct {
	ProductID string
	Size      string
	Quantity  int
}

// OrderIntent is the minimal client description of a purchase: ids,
// quantities and contact details. No price fields.
type OrderIntent struct {
	CustomerName          string
	Phone                 string
	Email                 string
	Address               string
	Pincode               string
	Items                 []IntentItem
	PaymentMethod         string
	UserID                *primitive.ObjectID
	FreeDeliveryRequested bool
	CouponCode            string
}

// InvalidOrderError is caller-fixable: the intent never reaches the
// catalog or the database.
type InvalidOrderError struct {
	Reason string
}

func (e InvalidOrderError) Error() string { return e.Reason }

// Catalog answers authoritative price lookups per line.
type Catalog interface {
	Resolve(ctx context.Context, productID primitive.ObjectID, size string) (pricing.ResolvedPrice, error)
}

// OrderStore persists the assembled order and returns its id.
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (primitive.ObjectID, error)
}

// Notifier receives the persisted order for best-effort notification.
type Notifier interface {
	OrderCreated(order models.Order)
}

// Assembler orchestrates resolver, fee engine and promo validation into an
// immutable order record.
type Assembler struct {
	Catalog     Catalog
	Orders      OrderStore
	Promo       pricing.PromoValidator
	DeliveryFee float64
	Notifier    Notifier
}

// Create runs the checkout pipeline: validate the intent shape, resolve
// every line against the catalog, re-validate the coupon server-side,
// compute totals, persist once with status pending, and hand off to the
// notifier. Any resolution failure aborts atomically.
func (a *Assembler) Create(ctx context.Context, intent OrderIntent) (models.Order, error) {
	lines, err := validateIntent(intent)
	if err != nil {
		return models.Order{}, err
	}

	// The client may send a coupon_applied flag; it is never trusted.
	promoApplied := false
	if intent.CouponCode != "" {
		valid, err := a.Promo.Validate(intent.CouponCode)
		if err != nil {
			log.Println("[CHECKOUT] promo validation unavailable:", err)
		}
		promoApplied = valid
	}

	items := make([]models.OrderItem, 0, len(lines))
	var subtotal float64
	for _, line := range lines {
		resolved, err := a.Catalog.Resolve(ctx, line.productID, line.size)
		if err != nil {
			return models.Order{}, err
		}
		items = append(items, models.OrderItem{
			ProductID: line.productID,
			Name:      resolved.Name,
			Size:      line.size,
			UnitPrice: resolved.UnitPrice,
			Quantity:  line.quantity,
		})
		subtotal += resolved.UnitPrice * float64(line.quantity)
	}

	fee := pricing.DeliveryFee(items, intent.FreeDeliveryRequested, promoApplied, a.DeliveryFee)

	// stored lowercased so the guest order lookup, which normalizes its
	// filter the same way, finds the record regardless of typed casing
	email := strings.ToLower(strings.TrimSpace(intent.Email))

	order := models.Order{
		UserID:        intent.UserID,
		CustomerName:  intent.CustomerName,
		Phone:         intent.Phone,
		Email:         email,
		Address:       intent.Address,
		Pincode:       intent.Pincode,
		Items:         items,
		DeliveryFee:   fee,
		TotalPrice:    subtotal + fee,
		PaymentMethod: intent.PaymentMethod,
		Status:        models.StatusPending,
		CreatedAt:     time.Now(),
	}

	id, err := a.Orders.Insert(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	order.ID = id

	if a.Notifier != nil {
		a.Notifier.OrderCreated(order)
	}

	return order, nil
}

type validatedLine struct {
	productID primitive.ObjectID
	size      string
	quantity  int
}

func validateIntent(intent OrderIntent) ([]validatedLine, error) {
	if len(intent.Items) == 0 {
		return nil, InvalidOrderError{Reason: "at least one item is required"}
	}

	switch intent.PaymentMethod {
	case "cod", "online":
	default:
		return nil, InvalidOrderError{Reason: "invalid payment method"}
	}

	lines := make([]validatedLine, 0, len(intent.Items))
	for _, item := range intent.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, InvalidOrderError{Reason: fmt.Sprintf("invalid productId: %s", item.ProductID)}
		}
		if item.Quantity <= 0 {
			return nil, InvalidOrderError{Reason: "quantity must be greater than zero"}
		}
		lines = append(lines, validatedLine{
			productID: productID,
			size:      item.Size,
			quantity:  item.Quantity,
		})
	}

	return lines, nil
}
