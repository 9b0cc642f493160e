package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID  `bson:"productId" json:"productId"`
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Author    string              `bson:"author" json:"author"`
	Rating    int                 `bson:"rating" json:"rating"`
	Comment   string              `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}
