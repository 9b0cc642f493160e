package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    StringList         `bson:"category" json:"category"`
	ImagePath   string             `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	IsFeatured  bool               `bson:"isFeatured" json:"isFeatured"`
	IsDeleted   bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt   *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProductVariant is a purchasable size option of a product. The variant
// table is the authoritative pricing source at order time; client-side
// copies are display-only.
type ProductVariant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Size      string             `bson:"size" json:"size"`
	Price     float64            `bson:"price" json:"price"`
}
