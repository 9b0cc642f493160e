package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a storefront navigation group (whole spices, blends, and so
// on). Products reference categories by name, so renames do not cascade.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
