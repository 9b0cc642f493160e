package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a registered shopper account. Admins are customers with
// role "admin". The shipping fields pre-fill the checkout form.
type Customer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Pincode      string             `bson:"pincode,omitempty" json:"pincode,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
