package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Transitions are enforced by CanTransition.
const (
	StatusPending   = "pending"
	StatusPacked    = "packed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderItem represents a single priced line within an order. Prices are
// resolved server-side at creation time and never change afterwards.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order defines the persisted order document. TotalPrice always equals the
// sum of item unit prices times quantities plus DeliveryFee.
type Order struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        *primitive.ObjectID `bson:"userId" json:"userId"`
	CustomerName  string              `bson:"customerName" json:"customerName"`
	Phone         string              `bson:"phone" json:"phone"`
	Email         string              `bson:"email" json:"email"`
	Address       string              `bson:"address" json:"address"`
	Pincode       string              `bson:"pincode" json:"pincode"`
	Items         []OrderItem         `bson:"items" json:"items"`
	DeliveryFee   float64             `bson:"deliveryFee" json:"deliveryFee"`
	TotalPrice    float64             `bson:"totalPrice" json:"totalPrice"`
	PaymentMethod string              `bson:"paymentMethod" json:"paymentMethod"`
	Status        string              `bson:"status" json:"status"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}

// ValidStatus reports whether s is one of the known order status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPacked, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another. Orders only move forward; cancellation is allowed until the
// order ships.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusPacked || to == StatusCancelled
	case StatusPacked:
		return to == StatusShipped || to == StatusCancelled
	case StatusShipped:
		return to == StatusDelivered
	}
	return false
}
